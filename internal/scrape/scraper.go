package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/dom"
	"github.com/matheuskafuri/panicfeed/internal/extract"
)

// ErrNavigation marks a run that never reached the news page; whatever
// was cached before is still the run's result.
var ErrNavigation = errors.New("scrape: navigation failed")

// Options configures one run. Immutable once the run starts.
type Options struct {
	BaseURL    string
	Filter     string
	Topic      string
	Limit      int
	PageReady  time.Duration
	SearchWait time.Duration
}

// Result is what a run produced: the merged snapshot, the articles
// collected this run, and whether the merge reached disk.
type Result struct {
	Merged    cache.Snapshot
	Collected []cache.Article
	Persisted bool
}

// Scraper sequences a run: load the cached snapshot, navigate and apply
// the topic, collect, merge, save.
type Scraper struct {
	page      dom.Page
	store     *cache.Store
	collector *Collector
	opts      Options
	log       *slog.Logger
}

func New(page dom.Page, store *cache.Store, collector *Collector, opts Options, log *slog.Logger) *Scraper {
	if opts.PageReady <= 0 {
		opts.PageReady = 30 * time.Second
	}
	if opts.SearchWait <= 0 {
		opts.SearchWait = 5 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scraper{page: page, store: store, collector: collector, opts: opts, log: log}
}

// Run executes one scrape. When navigation fails, the previously cached
// snapshot is returned alongside ErrNavigation: degraded, not empty-
// handed. When only persistence fails, the merged set is returned with
// Persisted false.
func (s *Scraper) Run(ctx context.Context) (Result, error) {
	existing, err := s.store.Load()
	if err != nil {
		s.log.Warn("snapshot unreadable, starting from empty", "err", err)
		existing = cache.Snapshot{}
	}

	target := s.newsURL()
	s.log.Info("navigating", "url", target)
	if err := s.page.Navigate(ctx, target); err != nil {
		return Result{Merged: existing}, fmt.Errorf("%w: opening %s: %v", ErrNavigation, target, err)
	}
	if err := s.page.WaitReady(ctx, extract.SelItem, s.opts.PageReady); err != nil {
		return Result{Merged: existing}, fmt.Errorf("%w: news rows never rendered: %v", ErrNavigation, err)
	}

	if s.opts.Topic != "" {
		if err := s.searchTopic(ctx); err != nil {
			return Result{Merged: existing}, fmt.Errorf("%w: applying topic %q: %v", ErrNavigation, s.opts.Topic, err)
		}
	}

	collected, err := s.collector.Collect(ctx, s.page, s.opts.Limit)
	if err != nil {
		if ctx.Err() != nil {
			// abandoned run: leave the previous snapshot untouched
			return Result{Merged: existing, Collected: collected},
				fmt.Errorf("collection aborted: %w", err)
		}
		s.log.Warn("collection ended early", "collected", len(collected), "err", err)
	}

	merged, err := s.store.Save(existing, collected)
	if err != nil {
		return Result{Merged: merged, Collected: collected},
			fmt.Errorf("persisting snapshot: %w", err)
	}

	s.log.Info("run complete", "new", len(collected), "total", len(merged))
	return Result{Merged: merged, Collected: collected, Persisted: true}, nil
}

func (s *Scraper) newsURL() string {
	base := s.opts.BaseURL
	if base == "" {
		base = "https://cryptopanic.com"
	}
	u := base + "/news"
	if s.opts.Filter != "" {
		u += "?filter=" + url.QueryEscape(s.opts.Filter)
	}
	return u
}

// searchTopic types the topic into the search box, submits, and clicks
// the first autocomplete hit when one shows up.
func (s *Scraper) searchTopic(ctx context.Context) error {
	if err := s.page.Type(ctx, extract.SelSearchInput, s.opts.Topic+"\n"); err != nil {
		return fmt.Errorf("search input: %w", err)
	}
	if err := s.page.WaitReady(ctx, extract.SelSearchHit, s.opts.SearchWait); err != nil {
		// no suggestion is fine, the submitted query already applied
		return nil
	}
	if err := s.page.Click(ctx, extract.SelSearchHit); err != nil {
		s.log.Warn("clicking search suggestion failed", "err", err)
	}
	return nil
}
