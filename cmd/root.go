package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/config"
	"github.com/matheuskafuri/panicfeed/internal/dom"
	"github.com/matheuskafuri/panicfeed/internal/extract"
	"github.com/matheuskafuri/panicfeed/internal/output"
	"github.com/matheuskafuri/panicfeed/internal/scrape"
	"github.com/matheuskafuri/panicfeed/internal/sentiment"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagFilter   string
	flagTopic    string
	flagLimit    int
	flagSavePath string
	flagHeadless bool
	flagFromHTML string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "panicfeed",
	Short: "CryptoPanic news scraper with sentiment scoring",
	Long: `panicfeed collects market news from CryptoPanic's dynamic news page,
scores each headline's sentiment with a crypto-tuned VADER lexicon, and
keeps a deduplicated per-filter cache across runs.`,
	RunE: runScrape,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to config file")
	pf.StringVar(&flagFilter, "filter", "", "news filter (all, rising, hot, bullish, bearish, important, saved, lol)")
	pf.StringVar(&flagTopic, "topic", "", "search topic (e.g. BTC)")
	pf.IntVar(&flagLimit, "limit", 0, "article count ceiling for this run")
	pf.StringVar(&flagSavePath, "save-path", "", "directory for cached snapshots")
	pf.BoolVar(&flagVerbose, "verbose", false, "log extraction details")

	rootCmd.Flags().BoolVar(&flagHeadless, "headless", true, "run the browser headless")
	rootCmd.Flags().StringVar(&flagFromHTML, "from-html", "", "parse a saved page snapshot instead of launching a browser")

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// loadConfig reads the config file and layers changed CLI flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("filter") {
		cfg.Filter = flagFilter
	}
	if flags.Changed("topic") {
		cfg.Topic = flagTopic
	}
	if flags.Changed("limit") {
		cfg.Limit = flagLimit
	}
	if flags.Changed("save-path") {
		cfg.SavePath = flagSavePath
	}
	if flags.Changed("headless") {
		cfg.Headless = flagHeadless
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()
	ctx := cmd.Context()

	store, err := cache.NewStore(cfg.ResolvedSavePath(), cfg.Filter, cfg.Topic)
	if err != nil {
		return err
	}

	var page dom.Page
	if flagFromHTML != "" {
		f, err := os.Open(flagFromHTML)
		if err != nil {
			return fmt.Errorf("opening page snapshot: %w", err)
		}
		doc, err := dom.ParseHTML(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parsing page snapshot: %w", err)
		}
		page = doc
	} else {
		browser, err := dom.NewBrowser(ctx, cfg.Headless, 10*time.Second, 60*time.Second)
		if err != nil {
			return fmt.Errorf("launching browser: %w", err)
		}
		defer browser.Close()
		page = browser
	}

	classifier := sentiment.NewVADER()
	assembler := extract.NewAssembler(cfg.FieldRetries, cfg.RetryBackoffDuration(), log)
	collector := scrape.NewCollector(assembler, classifier, cfg.MaxStalls, cfg.RevealWaitDuration(), log)

	scraper := scrape.New(page, store, collector, scrape.Options{
		BaseURL:   cfg.BaseURL,
		Filter:    cfg.Filter,
		Topic:     cfg.Topic,
		Limit:     cfg.Limit,
		PageReady: cfg.PageReadyDuration(),
	}, log)

	result, err := scraper.Run(ctx)
	fmt.Print(output.Summary(result.Collected, len(result.Merged), result.Persisted))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, scrape.ErrNavigation):
		// degraded success: the cached set is still the run's result
		fmt.Fprintf(os.Stderr, "warn: %v\n", err)
		fmt.Print(output.Articles(result.Merged, cfg.Limit))
		return nil
	default:
		return err
	}
}
