package cmd

import (
	"fmt"

	"github.com/matheuskafuri/panicfeed/internal/browser"
	"github.com/matheuskafuri/panicfeed/internal/cache"
	"github.com/spf13/cobra"
)

var flagOpenMax int

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open cached articles' source links in the desktop browser",
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

		opened := 0
		for _, a := range snap {
			if opened >= flagOpenMax {
				break
			}
			link := browser.Resolve(cfg.BaseURL, a.SourceURL)
			if link == "" {
				continue
			}
			if err := browser.Open(link); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warn: %v\n", err)
				continue
			}
			opened++
		}
		fmt.Printf("Opened %d article(s).\n", opened)
		return nil
	},
}

func init() {
	openCmd.Flags().IntVar(&flagOpenMax, "max", 5, "maximum number of links to open")
}
