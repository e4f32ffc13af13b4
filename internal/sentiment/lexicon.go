package sentiment

import "github.com/jonreiter/govader"

// domainLexicon overrides and extends the stock VADER lexicon with
// market vocabulary the general lexicon misses or underweights. Weights
// are hand-assigned polarities in [-4, 4]. VADER matches single tokens,
// so common inflections are listed explicitly.
var domainLexicon = map[string]float64{
	// market direction
	"bullish":  2.5,
	"bearish":  -2.5,
	"rally":    2.0,
	"rallies":  2.0,
	"rallied":  2.0,
	"surge":    2.0,
	"surges":   2.0,
	"soars":    2.5,
	"breakout": 2.0,
	"bullrun":  3.0,
	"ath":      2.5,
	"moon":     2.5,
	"mooning":  2.5,
	"pump":     1.5,
	"pumps":    1.5,

	// drawdowns
	"crash":       -3.0,
	"crashes":     -3.0,
	"collapse":    -2.5,
	"plummet":     -2.5,
	"plummets":    -2.5,
	"dump":        -2.5,
	"dumps":       -2.5,
	"selloff":     -2.5,
	"sell-off":    -2.5,
	"correction":  -1.5,
	"decline":     -1.5,
	"declines":    -1.5,
	"liquidation": -2.0,
	"liquidated":  -2.5,

	// trust and crime
	"scam":    -3.0,
	"fraud":   -3.0,
	"ponzi":   -3.0,
	"rugpull": -3.5,
	"hack":    -2.5,
	"hacked":  -3.0,
	"exploit": -2.5,
	"breach":  -2.5,
	"fud":     -1.5,

	// regulation and macro
	"ban":        -2.0,
	"banned":     -2.0,
	"lawsuit":    -2.0,
	"regulation": -1.0,
	"approval":   2.0,
	"approved":   2.0,
	"rejected":   -2.0,
	"recession":  -3.0,
	"inflation":  -2.0,

	// general finance, carried over from the stock-news table
	"profit":       2.0,
	"loss":         -2.0,
	"gain":         1.5,
	"gains":        1.5,
	"growth":       2.0,
	"invest":       1.5,
	"revenue":      1.5,
	"upgrade":      1.8,
	"downgrade":    -2.0,
	"outperform":   2.0,
	"underperform": -2.0,
	"volatile":     -1.5,

	// crypto flavor
	"adoption": 2.0,
	"halving":  1.0,
	"hodl":     1.5,
	"whale":    0.5,
}

// VADERScorer wraps a govader analyzer whose lexicon has been extended
// once, at construction. The handle is immutable after that.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERScorer() *VADERScorer {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	for term, weight := range domainLexicon {
		analyzer.Lexicon[term] = weight
	}
	return &VADERScorer{analyzer: analyzer}
}

// Score returns the compound polarity in [-1, 1].
func (s *VADERScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
