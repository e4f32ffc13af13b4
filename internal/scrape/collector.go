package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/dom"
	"github.com/matheuskafuri/panicfeed/internal/extract"
	"github.com/matheuskafuri/panicfeed/internal/sentiment"
)

// DefaultMaxStalls bounds consecutive reveal attempts that surface no
// new items before the collector gives up on the page.
const DefaultMaxStalls = 2

// DefaultRevealWait is how long the collector lets new content attach
// after a reveal before re-enumerating.
const DefaultRevealWait = 2 * time.Second

// Collector drives the collect/reveal loop: enumerate the rendered news
// rows, assemble and classify the ones not yet seen this run, then try
// to reveal more until the limit is met or the page runs dry.
type Collector struct {
	asm        *extract.Assembler
	cls        *sentiment.Classifier
	log        *slog.Logger
	maxStalls  int
	revealWait time.Duration
}

func NewCollector(asm *extract.Assembler, cls *sentiment.Classifier, maxStalls int, revealWait time.Duration, log *slog.Logger) *Collector {
	if maxStalls <= 0 {
		maxStalls = DefaultMaxStalls
	}
	if revealWait <= 0 {
		revealWait = DefaultRevealWait
	}
	if log == nil {
		log = slog.Default()
	}
	return &Collector{asm: asm, cls: cls, log: log, maxStalls: maxStalls, revealWait: revealWait}
}

// Collect gathers up to limit articles from the page. It never returns
// more than limit; a limit of zero returns immediately without touching
// the page. Extraction trouble inside a single item never ends the loop.
func (c *Collector) Collect(ctx context.Context, page dom.Page, limit int) ([]cache.Article, error) {
	if limit <= 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var collected []cache.Article
	stalls := 0

	for {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		items, err := c.asm.Items(ctx, page)
		if err != nil {
			c.log.Warn("enumerating news rows failed", "err", err)
			items = nil
		}

		added := 0
		for _, item := range items {
			if len(collected) >= limit {
				break
			}
			article := c.asm.Assemble(ctx, item)
			key := article.Key()
			if seen[key] {
				continue
			}
			seen[key] = true

			label, conf := c.cls.Classify(article.Title)
			article.Sentiment = string(label)
			article.Confidence = conf
			collected = append(collected, article)
			added++
			c.log.Info("collected article",
				"title", article.Title, "sentiment", article.Sentiment, "confidence", article.Confidence)
		}

		if len(collected) >= limit {
			break
		}
		if added == 0 {
			stalls++
			if stalls >= c.maxStalls {
				c.log.Info("no new content after reveals, stopping", "collected", len(collected))
				break
			}
		} else {
			stalls = 0
		}

		c.reveal(ctx, page)
	}

	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// reveal asks the page for more content: the explicit load-more control
// when present, a scroll to the bottom otherwise. Then it waits a beat
// for new rows to attach. Failures here are not errors; the stall guard
// decides when to stop.
func (c *Collector) reveal(ctx context.Context, page dom.Page) {
	if ok, _ := page.Has(ctx, extract.SelLoadMore); ok {
		if err := page.Click(ctx, extract.SelLoadMore); err != nil {
			c.log.Warn("load-more click failed, falling back to scroll", "err", err)
			if err := page.ScrollBottom(ctx); err != nil {
				c.log.Warn("scroll failed", "err", err)
			}
		}
	} else if err := page.ScrollBottom(ctx); err != nil {
		c.log.Warn("scroll failed", "err", err)
	}

	wait(ctx, c.revealWait)
}

func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
