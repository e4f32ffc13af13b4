package dom

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// Browser drives a Chrome tab over CDP and implements Page. Every
// operation runs under a bounded timeout; a caller-cancelled context
// aborts the in-flight CDP call.
type Browser struct {
	chromeScope

	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc

	opTimeout  time.Duration
	navTimeout time.Duration
}

// NewBrowser launches Chrome and opens one tab.
func NewBrowser(ctx context.Context, headless bool, opTimeout, navTimeout time.Duration) (*Browser, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", headless))

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	b := &Browser{
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		opTimeout:   opTimeout,
		navTimeout:  navTimeout,
	}
	b.chromeScope = chromeScope{b: b}
	return b, nil
}

// Close shuts the tab and the browser process down.
func (b *Browser) Close() {
	b.tabCancel()
	b.allocCancel()
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, b.navTimeout, chromedp.Navigate(url))
}

func (b *Browser) Click(ctx context.Context, selector string) error {
	var nodes []*cdp.Node
	if err := b.run(ctx, b.opTimeout, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return ErrNotFound
	}
	return b.run(ctx, b.opTimeout, chromedp.Click(selector, chromedp.ByQuery))
}

func (b *Browser) Type(ctx context.Context, selector, text string) error {
	var nodes []*cdp.Node
	if err := b.run(ctx, b.opTimeout, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return ErrNotFound
	}
	return b.run(ctx, b.opTimeout, chromedp.SendKeys(selector, text, chromedp.ByQuery))
}

func (b *Browser) ScrollBottom(ctx context.Context) error {
	return b.run(ctx, b.opTimeout,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil))
}

func (b *Browser) WaitReady(ctx context.Context, selector string, timeout time.Duration) error {
	return b.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// run executes CDP actions on the tab with a deadline, and propagates
// cancellation from the caller's context.
func (b *Browser) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(b.tabCtx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(tctx, actions...)
}

// chromeScope implements Scope against the whole tab (node == nil) or a
// single element node.
type chromeScope struct {
	b    *Browser
	node *cdp.Node
}

func (s chromeScope) opts(extra ...chromedp.QueryOption) []chromedp.QueryOption {
	if s.node != nil {
		extra = append(extra, chromedp.FromNode(s.node))
	}
	return extra
}

func (s chromeScope) Text(ctx context.Context, selector string) (string, error) {
	ok, err := s.Has(ctx, selector)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	var out string
	if err := s.b.run(ctx, s.b.opTimeout,
		chromedp.Text(selector, &out, s.opts(chromedp.ByQuery)...)); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s chromeScope) Attr(ctx context.Context, selector, name string) (string, error) {
	ok, err := s.Has(ctx, selector)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	var value string
	var present bool
	if err := s.b.run(ctx, s.b.opTimeout,
		chromedp.AttributeValue(selector, name, &value, &present, s.opts(chromedp.ByQuery)...)); err != nil {
		return "", err
	}
	if !present {
		return "", ErrNotFound
	}
	return strings.TrimSpace(value), nil
}

func (s chromeScope) All(ctx context.Context, selector string) ([]Scope, error) {
	var nodes []*cdp.Node
	if err := s.b.run(ctx, s.b.opTimeout,
		chromedp.Nodes(selector, &nodes, s.opts(chromedp.ByQueryAll, chromedp.AtLeast(0))...)); err != nil {
		return nil, err
	}
	scopes := make([]Scope, 0, len(nodes))
	for _, n := range nodes {
		scopes = append(scopes, chromeScope{b: s.b, node: n})
	}
	return scopes, nil
}

func (s chromeScope) Has(ctx context.Context, selector string) (bool, error) {
	var nodes []*cdp.Node
	if err := s.b.run(ctx, s.b.opTimeout,
		chromedp.Nodes(selector, &nodes, s.opts(chromedp.ByQuery, chromedp.AtLeast(0))...)); err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

func (s chromeScope) OwnText(ctx context.Context) (string, error) {
	if s.node == nil {
		return s.Text(ctx, "body")
	}
	var out string
	if err := s.b.run(ctx, s.b.opTimeout,
		chromedp.Text([]cdp.NodeID{s.node.NodeID}, &out, chromedp.ByNodeID)); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s chromeScope) OwnAttr(ctx context.Context, name string) (string, error) {
	if s.node == nil {
		return "", ErrNotFound
	}
	value := s.node.AttributeValue(name)
	if value == "" {
		return "", ErrNotFound
	}
	return strings.TrimSpace(value), nil
}
