// Package cmd — harvest command.
// Walks an edition's Special:AllPages listing into <lang>_<n>.links files,
// then either archives them or converts every article they list.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikiplain/core/batch"
	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/core/output"
	"github.com/gaurav-prasanna/wikiplain/crawl"
)

var (
	flagLang      string
	flagLinksOnly bool
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Collect every article link of a Wikipedia edition",
	Long: `Harvest pages through Special:AllPages for the given edition and writes the
article links of each page to <lang>_<n>.links.

With --links-only the links files are zipped into <lang>.zip and removed.
Otherwise every harvested article is converted, as with "wikiplain convert".

Supported languages: ` + strings.Join(crawl.Languages(), ", ") + `

Examples:
  wikiplain harvest --lang as --links-only
  wikiplain harvest --lang bn --output_dir ./bn --workers 8`,
	Args: cobra.NoArgs,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringVar(&flagLang, "lang", "", "Edition language code (required)")
	harvestCmd.Flags().BoolVar(&flagLinksOnly, "links-only", false, "Only collect links and zip them")
	addConversionFlags(harvestCmd.Flags())
	harvestCmd.MarkFlagRequired("lang")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	startURL, err := crawl.StartURL(flagLang)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	// Validate the output format before a long harvest, not after.
	var pipeline *batch.Pipeline
	if !flagLinksOnly {
		if pipeline, err = newPipeline(cfg); err != nil {
			return err
		}
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stdout, "Harvesting links from %s...\n", startURL)
	harvester := crawl.NewHarvester(fetch.New(cfg.FetchOptions()), log)
	stats, err := harvester.Harvest(ctx, startURL, flagLang, writer.OutputDir)
	if err != nil {
		return fmt.Errorf("harvesting %s: %w", flagLang, err)
	}
	fmt.Fprintf(os.Stdout, "✓ Found %d links in %d batches\n", stats.Links, stats.Batches)

	if flagLinksOnly {
		path, n, err := output.ArchiveLinks(writer.OutputDir, flagLang)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s (%d links files)\n", path, n)
		return nil
	}

	pool := batch.NewPool(pipeline, writer, cfg.Workers, log, os.Stdout)
	for i, file := range stats.Files {
		links, err := batch.ReadLinksFile(file)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "[batch %d/%d] %s: %d articles\n", i+1, len(stats.Files), file, len(links))
		printSummary(pool.Run(ctx, links))
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("harvest interrupted: %w", err)
		}
	}
	return nil
}
