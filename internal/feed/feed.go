// Package feed pulls the site's RSS feed as a browserless fallback
// source. RSS items carry no vote or currency data, so those fields stay
// at their defaults and the dedup key still lines up with scraped rows
// only when title and timestamp match.
package feed

import (
	"context"
	"fmt"
	"net/url"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/sentiment"
	"github.com/mmcdole/gofeed"
)

type Fetcher struct {
	parser *gofeed.Parser
	cls    *sentiment.Classifier
}

func NewFetcher(cls *sentiment.Classifier) *Fetcher {
	return &Fetcher{parser: gofeed.NewParser(), cls: cls}
}

// Fetch maps up to limit feed items onto articles, classified the same
// way scraped rows are.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, limit int) ([]cache.Article, error) {
	if limit <= 0 {
		return nil, nil
	}
	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	articles := make([]cache.Article, 0, min(limit, len(parsed.Items)))
	for _, item := range parsed.Items {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, f.fromItem(item))
	}
	return articles, nil
}

// FromFeed converts an already-parsed feed; split out for tests.
func (f *Fetcher) FromFeed(parsed *gofeed.Feed, limit int) []cache.Article {
	articles := make([]cache.Article, 0, min(limit, len(parsed.Items)))
	for _, item := range parsed.Items {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, f.fromItem(item))
	}
	return articles
}

func (f *Fetcher) fromItem(item *gofeed.Item) cache.Article {
	label, conf := f.cls.Classify(item.Title)
	return cache.Article{
		// the feed's published string stays opaque, same as the page's
		// datetime attribute
		CapturedAt: item.Published,
		Title:      item.Title,
		Currencies: []string{},
		Votes:      map[string]int{},
		Source:     sourceHost(item.Link),
		SourceURL:  item.Link,
		SourceType: "link",
		Sentiment:  string(label),
		Confidence: conf,
	}
}

func sourceHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Host
}
