package cache

import (
	"crypto/sha256"
	"fmt"
)

// Article is one collected news item. Fields mirror what the news row
// renders; every one of them may legitimately be empty on a partially
// rendered page.
type Article struct {
	CapturedAt string         `json:"captured_at"`
	Title      string         `json:"title"`
	Currencies []string       `json:"currencies"`
	Votes      map[string]int `json:"votes"`
	Source     string         `json:"source"`
	SourceURL  string         `json:"source_url"`
	SourceType string         `json:"source_type"`
	Sentiment  string         `json:"sentiment"`
	Confidence int            `json:"confidence"`
}

// Key derives the article's dedup identity. Title alone would merge
// distinct articles republished under the same headline, so the capture
// timestamp is folded in.
func (a Article) Key() string {
	h := sha256.Sum256([]byte(a.Title + "\x00" + a.CapturedAt))
	return fmt.Sprintf("%x", h[:16])
}

// VoteCount returns the count for a vote category, zero when absent.
func (a Article) VoteCount(category string) int {
	return a.Votes[category]
}
