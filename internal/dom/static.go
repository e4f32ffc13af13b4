package dom

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Document implements Page over a parsed, static HTML document. It backs
// the --from-html debug mode and the package tests. Interactions that
// would change a live page (navigate, click, scroll, type) are inert:
// nothing new ever attaches, so a collection loop over a Document ends
// via its stall guard.
type Document struct {
	staticScope
}

// ParseHTML builds a Document from raw HTML.
func ParseHTML(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{staticScope{sel: doc.Selection}}, nil
}

// ParseHTMLString builds a Document from an HTML string.
func ParseHTMLString(html string) (*Document, error) {
	return ParseHTML(strings.NewReader(html))
}

func (d *Document) Navigate(ctx context.Context, url string) error {
	return nil
}

func (d *Document) Click(ctx context.Context, selector string) error {
	if d.sel.Find(selector).Length() == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Document) Type(ctx context.Context, selector, text string) error {
	if d.sel.Find(selector).Length() == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Document) ScrollBottom(ctx context.Context) error {
	return nil
}

func (d *Document) WaitReady(ctx context.Context, selector string, timeout time.Duration) error {
	if d.sel.Find(selector).Length() == 0 {
		return ErrNotFound
	}
	return nil
}

type staticScope struct {
	sel *goquery.Selection
}

func (s staticScope) Text(ctx context.Context, selector string) (string, error) {
	found := s.sel.Find(selector).First()
	if found.Length() == 0 {
		return "", ErrNotFound
	}
	return strings.TrimSpace(found.Text()), nil
}

func (s staticScope) Attr(ctx context.Context, selector, name string) (string, error) {
	found := s.sel.Find(selector).First()
	if found.Length() == 0 {
		return "", ErrNotFound
	}
	value, ok := found.Attr(name)
	if !ok {
		return "", ErrNotFound
	}
	return strings.TrimSpace(value), nil
}

func (s staticScope) All(ctx context.Context, selector string) ([]Scope, error) {
	var scopes []Scope
	s.sel.Find(selector).Each(func(_ int, match *goquery.Selection) {
		scopes = append(scopes, staticScope{sel: match})
	})
	return scopes, nil
}

func (s staticScope) Has(ctx context.Context, selector string) (bool, error) {
	return s.sel.Find(selector).Length() > 0, nil
}

func (s staticScope) OwnText(ctx context.Context) (string, error) {
	if s.sel.Length() == 0 {
		return "", ErrNotFound
	}
	return strings.TrimSpace(s.sel.Text()), nil
}

func (s staticScope) OwnAttr(ctx context.Context, name string) (string, error) {
	value, ok := s.sel.Attr(name)
	if !ok {
		return "", ErrNotFound
	}
	return strings.TrimSpace(value), nil
}
