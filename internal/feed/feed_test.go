package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/matheuskafuri/panicfeed/internal/sentiment"
	"github.com/mmcdole/gofeed"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>CryptoPanic News</title>
  <item>
    <title>BTC rallies past resistance</title>
    <link>https://example.com/btc-rallies</link>
    <pubDate>Fri, 28 Aug 2026 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Exchange hack triggers panic selling</title>
    <link>https://news.example.org/hack</link>
    <pubDate>Fri, 28 Aug 2026 11:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Stablecoin issuer publishes reserves</title>
    <link>https://example.com/reserves</link>
    <pubDate>Fri, 28 Aug 2026 12:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

func parseFixture(t *testing.T) *gofeed.Feed {
	t.Helper()
	parsed, err := gofeed.NewParser().ParseString(feedXML)
	if err != nil {
		t.Fatalf("parsing fixture feed: %v", err)
	}
	return parsed
}

func TestFromFeedMapsItems(t *testing.T) {
	f := NewFetcher(sentiment.NewVADER())
	articles := f.FromFeed(parseFixture(t), 10)
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "BTC rallies past resistance" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Source != "example.com" {
		t.Errorf("source should be the link host, got %q", first.Source)
	}
	if first.SourceURL != "https://example.com/btc-rallies" {
		t.Errorf("unexpected source url %q", first.SourceURL)
	}
	if first.SourceType != "link" {
		t.Errorf("feed items are plain links, got %q", first.SourceType)
	}
	if first.CapturedAt == "" {
		t.Error("published timestamp should carry over")
	}
	if first.Currencies == nil || first.Votes == nil {
		t.Error("currencies and votes must be empty, not nil")
	}
	if len(first.Currencies) != 0 || len(first.Votes) != 0 {
		t.Error("feed items carry no currencies or votes")
	}
}

func TestFromFeedClassifies(t *testing.T) {
	f := NewFetcher(sentiment.NewVADER())
	articles := f.FromFeed(parseFixture(t), 10)

	if s := articles[0].Sentiment; !strings.Contains(s, "bullish") {
		t.Errorf("rally headline should lean bullish, got %q", s)
	}
	if s := articles[1].Sentiment; !strings.Contains(s, "bearish") {
		t.Errorf("hack headline should lean bearish, got %q", s)
	}
}

func TestFromFeedHonorsLimit(t *testing.T) {
	f := NewFetcher(sentiment.NewVADER())
	if got := len(f.FromFeed(parseFixture(t), 2)); got != 2 {
		t.Errorf("limit 2 should yield 2 articles, got %d", got)
	}
	if got := len(f.FromFeed(parseFixture(t), 0)); got != 0 {
		t.Errorf("limit 0 should yield nothing, got %d", got)
	}
}

func TestFetchZeroLimitSkipsNetwork(t *testing.T) {
	f := NewFetcher(sentiment.NewVADER())
	articles, err := f.Fetch(context.Background(), "http://127.0.0.1:0/unreachable", 0)
	if err != nil {
		t.Fatalf("zero limit must not touch the network: %v", err)
	}
	if articles != nil {
		t.Errorf("expected no articles, got %d", len(articles))
	}
}
