// Package dom is the boundary to the rendered page. The scraper only
// talks to these interfaces; the live implementation drives a Chrome
// instance over CDP, the static one walks a parsed HTML document.
package dom

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that a selector matched nothing. On a dynamic page
// this is usually a transient render condition and callers treat it as
// retryable, not fatal.
var ErrNotFound = errors.New("dom: element not found")

// Scope is a queryable region of the page: the whole document or one
// matched element.
type Scope interface {
	// Text returns the trimmed text content of the first match inside
	// this scope.
	Text(ctx context.Context, selector string) (string, error)

	// Attr returns the named attribute of the first match inside this
	// scope.
	Attr(ctx context.Context, selector, name string) (string, error)

	// All returns one sub-scope per match inside this scope. No matches
	// yields an empty slice, not an error.
	All(ctx context.Context, selector string) ([]Scope, error)

	// Has reports whether the selector matches anything right now,
	// without waiting.
	Has(ctx context.Context, selector string) (bool, error)

	// OwnText returns the trimmed text content of this scope's element.
	OwnText(ctx context.Context) (string, error)

	// OwnAttr returns the named attribute of this scope's element.
	OwnAttr(ctx context.Context, name string) (string, error)
}

// Page is a Scope that can also navigate and interact.
type Page interface {
	Scope

	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Type(ctx context.Context, selector, text string) error
	ScrollBottom(ctx context.Context) error

	// WaitReady blocks until the selector is visible or the timeout
	// elapses.
	WaitReady(ctx context.Context, selector string, timeout time.Duration) error
}
