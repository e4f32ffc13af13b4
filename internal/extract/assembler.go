package extract

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/dom"
)

// Assembler builds one Article per news row. No field failure aborts
// assembly; the result is always a best-effort Article with defaults for
// whatever would not render.
type Assembler struct {
	ex  *Extractor
	log *slog.Logger
}

func NewAssembler(retries int, backoff time.Duration, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{ex: NewExtractor(retries, backoff, log), log: log}
}

// Items enumerates the currently rendered news rows.
func (a *Assembler) Items(ctx context.Context, scope dom.Scope) ([]dom.Scope, error) {
	return scope.All(ctx, SelItem)
}

// Assemble extracts one Article from an item scope.
func (a *Assembler) Assemble(ctx context.Context, item dom.Scope) cache.Article {
	article := cache.Article{
		Title:      a.ex.Fetch(ctx, item, fieldTitle),
		CapturedAt: a.ex.Fetch(ctx, item, fieldCapturedAt),
		Source:     a.ex.Fetch(ctx, item, fieldSource),
		SourceURL:  a.ex.Fetch(ctx, item, fieldSourceURL),
		SourceType: a.sourceType(ctx, item),
		Currencies: a.currencies(ctx, item),
		Votes:      a.votes(ctx, item),
	}
	return article
}

// sourceType detects twitter and youtube posts by their icon; anything
// else is a plain link.
func (a *Assembler) sourceType(ctx context.Context, item dom.Scope) string {
	if ok, _ := item.Has(ctx, selIconTwitter); ok {
		return "twitter"
	}
	if ok, _ := item.Has(ctx, selIconYouTube); ok {
		return "youtube"
	}
	return "link"
}

func (a *Assembler) currencies(ctx context.Context, item dom.Scope) []string {
	tags, err := item.All(ctx, selCurrency)
	if err != nil {
		a.log.Warn("enumerating currency tags failed", "err", err)
		return []string{}
	}
	currencies := make([]string, 0, len(tags))
	for _, tag := range tags {
		text, err := tag.OwnText(ctx)
		if err != nil || text == "" {
			continue
		}
		currencies = append(currencies, text)
	}
	return currencies
}

func (a *Assembler) votes(ctx context.Context, item dom.Scope) map[string]int {
	votes := map[string]int{}
	elems, err := item.All(ctx, selVote)
	if err != nil {
		a.log.Warn("enumerating votes failed", "err", err)
		return votes
	}
	for _, elem := range elems {
		title, err := elem.OwnAttr(ctx, "title")
		if err != nil {
			continue
		}
		category, count, ok := parseVote(title)
		if !ok {
			a.log.Warn("skipping unparsable vote entry", "title", title)
			continue
		}
		votes[category] = count
	}
	return votes
}

// parseVote splits a vote tooltip like "12 votes Bullish" or
// "Bullish 12" into category and count.
func parseVote(s string) (string, int, bool) {
	words := strings.Fields(s)
	if len(words) < 2 {
		return "", 0, false
	}
	if n, err := strconv.Atoi(words[0]); err == nil {
		category := voteCategory(words[1:])
		return category, n, category != ""
	}
	if n, err := strconv.Atoi(words[len(words)-1]); err == nil {
		category := voteCategory(words[:len(words)-1])
		return category, n, category != ""
	}
	return "", 0, false
}

func voteCategory(words []string) string {
	var kept []string
	for _, w := range words {
		switch strings.ToLower(w) {
		case "vote", "votes":
			continue
		}
		kept = append(kept, w)
	}
	return strings.ToLower(strings.Join(kept, " "))
}
