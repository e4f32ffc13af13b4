package cmd

import (
	"fmt"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/feed"
	"github.com/matheuskafuri/panicfeed/internal/output"
	"github.com/matheuskafuri/panicfeed/internal/sentiment"
	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Pull the RSS feed instead of scraping the page",
	Long: `Fetch articles from the site's RSS feed and merge them into the same
cache as scraped runs. No browser needed; vote and currency data are not
available over RSS and stay empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store, err := cache.NewStore(cfg.ResolvedSavePath(), cfg.Filter, cfg.Topic)
		if err != nil {
			return err
		}
		existing, err := store.Load()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warn: snapshot unreadable, starting from empty: %v\n", err)
			existing = cache.Snapshot{}
		}

		fetcher := feed.NewFetcher(sentiment.NewVADER())
		articles, err := fetcher.Fetch(cmd.Context(), cfg.RSSURL, cfg.Limit)
		if err != nil {
			return err
		}

		merged, err := store.Save(existing, articles)
		fmt.Print(output.Summary(articles, len(merged), err == nil))
		return err
	},
}
