package cache

import (
	"errors"
	"os"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), "bullish", "")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return s
}

func sampleArticles() []Article {
	return []Article{
		{
			CapturedAt: "2026-08-28T10:00:00Z",
			Title:      "BTC rallies hard",
			Currencies: []string{"BTC"},
			Votes:      map[string]int{"bullish": 12},
			Source:     "decrypt.co",
			SourceURL:  "/news/1/btc",
			SourceType: "link",
			Sentiment:  "bullish",
			Confidence: 55,
		},
		{
			CapturedAt: "2026-08-28T11:00:00Z",
			Title:      "Market crash fears grow",
			Currencies: []string{},
			Votes:      map[string]int{"bearish": 7, "important": 2},
			Source:     "coindesk.com",
			SourceURL:  "/news/2/crash",
			SourceType: "link",
			Sentiment:  "bearish",
			Confidence: 61,
		},
	}
}

func TestKeyCombinesTitleAndTimestamp(t *testing.T) {
	a := Article{Title: "Same title", CapturedAt: "2026-08-28T10:00:00Z"}
	b := Article{Title: "Same title", CapturedAt: "2026-08-28T12:00:00Z"}
	c := Article{Title: "Same title", CapturedAt: "2026-08-28T10:00:00Z"}

	if a.Key() == b.Key() {
		t.Error("same title at different timestamps should have distinct keys")
	}
	if a.Key() != c.Key() {
		t.Error("identical title+timestamp should have the same key")
	}
	if len(a.Key()) != 32 {
		t.Errorf("expected 32-char hex key, got %d chars: %s", len(a.Key()), a.Key())
	}
}

func TestSnapshotPathNaming(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir, "bullish", "")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Path(), dir+"/cryptopanic_bullish_cache.json"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}

	s, err = NewStore(dir, "all", "Dogecoin Whale")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Path(), dir+"/cryptopanic_all_dogecoin-whale_cache.json"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := testStore(t)
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("missing snapshot should not error: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %d entries", len(snap))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	articles := sampleArticles()

	merged, err := s.Save(Snapshot{}, articles)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged entries, got %d", len(merged))
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, want := range articles {
		got, ok := loaded[want.Key()]
		if !ok {
			t.Fatalf("article %q missing after round trip", want.Title)
		}
		if got.Title != want.Title || got.CapturedAt != want.CapturedAt ||
			got.Source != want.Source || got.SourceURL != want.SourceURL ||
			got.SourceType != want.SourceType || got.Sentiment != want.Sentiment ||
			got.Confidence != want.Confidence {
			t.Errorf("round trip changed article: got %+v, want %+v", got, want)
		}
		if len(got.Currencies) != len(want.Currencies) {
			t.Errorf("currencies changed: got %v, want %v", got.Currencies, want.Currencies)
		}
		for cat, n := range want.Votes {
			if got.Votes[cat] != n {
				t.Errorf("vote %q changed: got %d, want %d", cat, got.Votes[cat], n)
			}
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	s := testStore(t)
	existing, err := s.Save(Snapshot{}, sampleArticles())
	if err != nil {
		t.Fatalf("seed save: %v", err)
	}

	if _, err := s.Save(existing, nil); err != nil {
		t.Fatalf("empty-merge save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(existing) {
		t.Fatalf("empty merge changed entry count: got %d, want %d", len(loaded), len(existing))
	}
	for k := range existing {
		if _, ok := loaded[k]; !ok {
			t.Errorf("entry %s lost by empty merge", k)
		}
	}
}

func TestMergeNewWinsOnConflict(t *testing.T) {
	articles := sampleArticles()
	existing := Merge(Snapshot{}, articles)

	updated := articles[0]
	updated.Votes = map[string]int{"bullish": 99}

	merged := Merge(existing, []Article{updated})
	if len(merged) != 2 {
		t.Fatalf("expected 2 entries after conflicting merge, got %d", len(merged))
	}
	if got := merged[updated.Key()].Votes["bullish"]; got != 99 {
		t.Errorf("expected new vote count 99 to win, got %d", got)
	}
	// the non-conflicting entry is retained
	if _, ok := merged[articles[1].Key()]; !ok {
		t.Error("entry present only in existing was dropped")
	}
}

func TestMergeDeduplicates(t *testing.T) {
	articles := sampleArticles()
	dup := articles[0]
	merged := Merge(Snapshot{}, []Article{articles[0], dup, articles[1]})
	if len(merged) != 2 {
		t.Errorf("expected duplicates collapsed to 2 entries, got %d", len(merged))
	}
}

func TestSaveFailureKeepsPriorSnapshot(t *testing.T) {
	s := testStore(t)
	before, err := s.Save(Snapshot{}, sampleArticles()[:1])
	if err != nil {
		t.Fatalf("seed save: %v", err)
	}

	s.rename = func(oldpath, newpath string) error {
		return errors.New("disk full")
	}

	merged, err := s.Save(before, sampleArticles()[1:])
	if err == nil {
		t.Fatal("expected save error")
	}
	if len(merged) != 2 {
		t.Errorf("merged set should still be returned on failure, got %d entries", len(merged))
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("prior snapshot unreadable after failed save: %v", err)
	}
	if len(loaded) != len(before) {
		t.Fatalf("prior snapshot changed by failed save: got %d entries, want %d", len(loaded), len(before))
	}
	for k := range before {
		if _, ok := loaded[k]; !ok {
			t.Errorf("entry %s missing from prior snapshot", k)
		}
	}
}

func TestSaveFailureLeavesNoTempLitter(t *testing.T) {
	s := testStore(t)
	s.rename = func(oldpath, newpath string) error {
		return errors.New("boom")
	}
	if _, err := s.Save(Snapshot{}, sampleArticles()); err == nil {
		t.Fatal("expected save error")
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir after failed save, found %d entries", len(entries))
	}
}
