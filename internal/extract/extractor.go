package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/matheuskafuri/panicfeed/internal/dom"
)

// DefaultRetries is how many additional attempts a field read gets
// before degrading to its default.
const DefaultRetries = 2

// DefaultBackoff is the fixed wait between field read attempts.
const DefaultBackoff = time.Second

// Extractor reads single fields from a DOM scope with a bounded retry
// budget. Exhausting the budget is not an error: the field degrades to
// its default and the caller keeps going. Transient render timing on a
// dynamic page must never abort collection of a whole batch.
type Extractor struct {
	retries int
	backoff time.Duration
	log     *slog.Logger
}

func NewExtractor(retries int, backoff time.Duration, log *slog.Logger) *Extractor {
	if retries < 0 {
		retries = DefaultRetries
	}
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{retries: retries, backoff: backoff, log: log}
}

// Fetch extracts one field from the scope, retrying transient failures,
// and falls back to the field's default.
func (e *Extractor) Fetch(ctx context.Context, scope dom.Scope, f Field) string {
	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		if attempt > 0 {
			if !sleep(ctx, e.backoff) {
				break
			}
		}

		var value string
		var err error
		if f.Attr == "" {
			value, err = scope.Text(ctx, f.Selector)
		} else {
			value, err = scope.Attr(ctx, f.Selector, f.Attr)
		}
		if err == nil && value != "" {
			return value
		}
		lastErr = err
	}
	e.log.Warn("field degraded to default",
		"selector", f.Selector, "attr", f.Attr, "default", f.Default, "err", lastErr)
	return f.Default
}

// sleep waits for d unless the context ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
