package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/matheuskafuri/panicfeed/internal/config"
	"github.com/spf13/cobra"
)

var flagDBPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Mirror the cached snapshot into a sqlite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store, err := cache.NewStore(cfg.ResolvedSavePath(), cfg.Filter, cfg.Topic)
		if err != nil {
			return err
		}
		snap, err := store.Load()
		if err != nil {
			return err
		}

		dbPath := flagDBPath
		if dbPath == "" {
			dbPath = config.DefaultDBPath()
		}
		db, err := cache.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening db: %w", err)
		}
		defer db.Close()

		if err := db.UpsertSnapshot(snap); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		total, err := db.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d article(s); %d total in %s\n", len(snap), total, dbPath)
		return nil
	},
}

var flagStatsDB string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store, err := cache.NewStore(cfg.ResolvedSavePath(), cfg.Filter, cfg.Topic)
		if err != nil {
			return err
		}
		snap, err := store.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Snapshot: %s\n", store.Path())
		fmt.Printf("Articles: %d\n", len(snap))
		if info, err := os.Stat(store.Path()); err == nil {
			fmt.Printf("Size: %s\n", formatBytes(info.Size()))
		}

		counts := map[string]int{}
		for _, a := range snap {
			counts[a.Sentiment]++
		}
		labels := make([]string, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Printf("  %-12s %d\n", label, counts[label])
		}

		if flagStatsDB != "" {
			out, err := renderDBStats(flagStatsDB)
			if err != nil {
				return err
			}
			fmt.Print(out)
		}
		return nil
	},
}

// renderDBStats summarizes a sqlite export: row count plus the
// per-sentiment breakdown.
func renderDBStats(path string) (string, error) {
	db, err := cache.OpenDB(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	total, err := db.Count()
	if err != nil {
		return "", err
	}
	counts, err := db.BySentiment()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Database: %s\n", path)
	fmt.Fprintf(&b, "Articles: %d\n", total)
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(&b, "  %-12s %d\n", label, counts[label])
	}
	return b.String(), nil
}

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old articles from the cached snapshot",
	Long: `Delete snapshot entries whose capture timestamp is older than the given
age. Entries whose timestamp cannot be parsed are kept; the capture
string is otherwise treated as opaque.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		age, err := parseAge(flagPruneOlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}

		store, err := cache.NewStore(cfg.ResolvedSavePath(), cfg.Filter, cfg.Topic)
		if err != nil {
			return err
		}
		snap, err := store.Load()
		if err != nil {
			return err
		}

		cutoff := time.Now().Add(-age)
		kept := cache.Snapshot{}
		for key, a := range snap {
			t, err := time.Parse(time.RFC3339, a.CapturedAt)
			if err == nil && t.Before(cutoff) {
				continue
			}
			kept[key] = a
		}

		deleted := len(snap) - len(kept)
		if deleted == 0 {
			fmt.Println("Nothing to prune.")
			return nil
		}
		if _, err := store.Save(kept, nil); err != nil {
			return fmt.Errorf("pruning: %w", err)
		}
		fmt.Printf("Pruned %d article(s) older than %s.\n", deleted, formatDuration(age))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagDBPath, "db", "", "sqlite database path")
	statsCmd.Flags().StringVar(&flagStatsDB, "db", "", "also summarize the sqlite export at this path")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "30d", "age beyond which entries are dropped (e.g. 30d, 720h)")
}

// parseAge parses a duration, with an extra "Nd" day syntax.
func parseAge(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
