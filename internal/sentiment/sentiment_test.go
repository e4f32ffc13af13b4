package sentiment

import "testing"

type fixedScorer struct {
	score float64
}

func (s fixedScorer) Score(string) float64 { return s.score }

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score      float64
		label      Label
		confidence int
	}{
		{0.6, VeryBullish, 60},
		{0.75, VeryBullish, 75},
		{1.0, VeryBullish, 100},
		{0.59, Bullish, 59},
		{0.1, Bullish, 10},
		{0.09, Neutral, 9},
		{0.0, Neutral, 0},
		{-0.09, Neutral, 9},
		{-0.1, Bearish, 10},
		{-0.59, Bearish, 59},
		{-0.6, VeryBearish, 60},
		{-1.0, VeryBearish, 100},
	}

	for _, tt := range tests {
		c := New(fixedScorer{tt.score})
		label, conf := c.Classify("some headline")
		if label != tt.label {
			t.Errorf("score %.2f: label = %s, want %s", tt.score, label, tt.label)
		}
		if conf != tt.confidence {
			t.Errorf("score %.2f: confidence = %d, want %d", tt.score, conf, tt.confidence)
		}
	}
}

func TestClassifyEmptyTitle(t *testing.T) {
	c := New(fixedScorer{0.9})
	for _, title := range []string{"", "   ", "\t\n"} {
		label, conf := c.Classify(title)
		if label != Neutral {
			t.Errorf("empty title %q: label = %s, want neutral", title, label)
		}
		if conf != 0 {
			t.Errorf("empty title %q: confidence = %d, want 0", title, conf)
		}
	}
}

func TestVADERDomainTerms(t *testing.T) {
	scorer := NewVADERScorer()

	if got := scorer.Score("bullish"); got <= 0 {
		t.Errorf("expected positive compound for %q, got %f", "bullish", got)
	}
	if got := scorer.Score("bearish"); got >= 0 {
		t.Errorf("expected negative compound for %q, got %f", "bearish", got)
	}
	if got := scorer.Score("rugpull"); got >= 0 {
		t.Errorf("expected negative compound for %q, got %f", "rugpull", got)
	}
}

func TestVADERClassifierOnHeadlines(t *testing.T) {
	c := NewVADER()

	label, conf := c.Classify("BTC rallies hard")
	if label != Bullish && label != VeryBullish {
		t.Errorf("expected bullish-or-better, got %s", label)
	}
	if conf <= 0 {
		t.Errorf("expected positive confidence, got %d", conf)
	}

	label, _ = c.Classify("Market crash fears grow")
	if label != Bearish && label != VeryBearish {
		t.Errorf("expected bearish-or-worse, got %s", label)
	}
}

func TestLexiconWeightsInRange(t *testing.T) {
	for term, weight := range domainLexicon {
		if weight < -4 || weight > 4 {
			t.Errorf("term %q has weight %f outside [-4, 4]", term, weight)
		}
	}
}
