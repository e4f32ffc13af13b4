package sentiment

import (
	"math"
	"strings"
)

// Label is one of the five sentiment buckets.
type Label string

const (
	VeryBullish Label = "very_bullish"
	Bullish     Label = "bullish"
	Neutral     Label = "neutral"
	Bearish     Label = "bearish"
	VeryBearish Label = "very_bearish"
)

// Scorer produces a compound polarity score in [-1, 1] for a text.
type Scorer interface {
	Score(text string) float64
}

// Classifier maps a title's compound score onto a labeled bucket with a
// confidence percentage. Pure given its scorer.
type Classifier struct {
	scorer Scorer
}

func New(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// NewVADER builds a classifier backed by the VADER lexicon extended with
// the crypto/finance term table.
func NewVADER() *Classifier {
	return New(NewVADERScorer())
}

// Classify scores a title and buckets it. An empty title is neutral with
// zero confidence.
func (c *Classifier) Classify(title string) (Label, int) {
	if strings.TrimSpace(title) == "" {
		return Neutral, 0
	}
	compound := c.scorer.Score(title)
	return bucket(compound), confidence(compound)
}

// bucket maps a compound score to a label. Ranges are closed, ordered,
// and non-overlapping.
func bucket(c float64) Label {
	switch {
	case c >= 0.6:
		return VeryBullish
	case c >= 0.1:
		return Bullish
	case c > -0.1:
		return Neutral
	case c > -0.6:
		return Bearish
	default:
		return VeryBearish
	}
}

func confidence(c float64) int {
	n := int(math.Round(math.Abs(c) * 100))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n
}
