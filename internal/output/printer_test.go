package output

import (
	"strings"
	"testing"

	"github.com/matheuskafuri/panicfeed/internal/cache"
)

func sample(title, captured, sentiment string) cache.Article {
	return cache.Article{
		Title:      title,
		CapturedAt: captured,
		Sentiment:  sentiment,
		Confidence: 42,
		Source:     "example.com",
	}
}

func TestSummary(t *testing.T) {
	collected := []cache.Article{sample("BTC rallies", "2026-08-28T10:00:00Z", "bullish")}
	out := Summary(collected, 7, true)
	if !strings.Contains(out, "1 new, 7 cached") {
		t.Errorf("missing counts in %q", out)
	}
	if !strings.Contains(out, "BTC rallies") {
		t.Errorf("missing title in %q", out)
	}
	if strings.Contains(out, "not persisted") {
		t.Error("persisted run should not warn")
	}
}

func TestSummaryWarnsWhenNotPersisted(t *testing.T) {
	collected := []cache.Article{sample("BTC rallies", "2026-08-28T10:00:00Z", "bullish")}
	if out := Summary(collected, 1, false); !strings.Contains(out, "not persisted") {
		t.Errorf("expected persistence warning in %q", out)
	}
	// nothing collected, nothing to warn about
	if out := Summary(nil, 1, false); strings.Contains(out, "not persisted") {
		t.Errorf("empty run should not warn, got %q", out)
	}
}

func TestArticlesNewestFirstAndCapped(t *testing.T) {
	snap := cache.Snapshot{}
	for _, a := range []cache.Article{
		sample("oldest", "2026-08-26T10:00:00Z", "neutral"),
		sample("middle", "2026-08-27T10:00:00Z", "bearish"),
		sample("newest", "2026-08-28T10:00:00Z", "bullish"),
	} {
		snap[a.Key()] = a
	}

	out := Articles(snap, 2)
	if !strings.Contains(out, "newest") || !strings.Contains(out, "middle") {
		t.Errorf("expected the two newest entries, got %q", out)
	}
	if strings.Contains(out, "oldest") {
		t.Errorf("cap should drop the oldest entry, got %q", out)
	}
	if strings.Index(out, "newest") > strings.Index(out, "middle") {
		t.Errorf("entries out of order: %q", out)
	}
}

func TestRenderLineHandlesUntitled(t *testing.T) {
	out := renderLine(cache.Article{Sentiment: "neutral"})
	if !strings.Contains(out, "(untitled)") {
		t.Errorf("empty title should render as (untitled), got %q", out)
	}
}
