// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// ref → fetch → convert → render → write.
//
// It accepts either one article URL or a file listing article URLs.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikiplain/config"
	"github.com/gaurav-prasanna/wikiplain/core/batch"
	"github.com/gaurav-prasanna/wikiplain/core/extract"
	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/core/normalize"
	"github.com/gaurav-prasanna/wikiplain/core/output"
	"github.com/gaurav-prasanna/wikiplain/core/render"
)

var flagSave bool

var convertCmd = &cobra.Command{
	Use:   "convert <url|links file>",
	Short: "Convert an article URL, or every URL in a links file",
	Long: `Convert fetches article wikitext from the MediaWiki API and converts it to
plaintext (or another --format). A single URL is printed to stdout unless
--save is given. A links file (one URL per line, e.g. from "wikiplain harvest")
is converted concurrently, one output file per article; articles whose output
already exists are skipped.

References are stripped for English Wikipedia articles only.

Examples:
  wikiplain convert https://en.wikipedia.org/wiki/Ada_Lovelace
  wikiplain convert https://as.wikipedia.org/wiki/অসম --save --output_dir ./out
  wikiplain convert as_1.links --workers 8 --format json
  wikiplain convert https://en.wikipedia.org/wiki/Go --format embeddings --model nomic-embed-text`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&flagSave, "save", false, "Write a single article to a file instead of stdout")
	addConversionFlags(convertCmd.Flags())
}

func runConvert(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isArticleURL(target) {
		return runSingle(ctx, target, pipeline, cfg, log)
	}
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		links, err := batch.ReadLinksFile(target)
		if err != nil {
			return err
		}
		return runBatch(ctx, links, pipeline, cfg, log)
	}
	return fmt.Errorf("%s is neither an article URL nor a links file", target)
}

// runSingle processes one URL and prints or saves the result.
func runSingle(ctx context.Context, link string, pipeline *batch.Pipeline, cfg config.Config, log *slog.Logger) error {
	res, err := pipeline.Process(ctx, link)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn("conversion warning", "link", link, "warning", w.Error())
	}

	if !flagSave {
		return output.WriteTo(os.Stdout, res.Data)
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteArticle(res.Ref.Title, res.Data, pipeline.Renderer().Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runBatch converts every link with a worker pool, always writing files.
func runBatch(ctx context.Context, links []string, pipeline *batch.Pipeline, cfg config.Config, log *slog.Logger) error {
	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Converting %d articles with %d workers...\n", len(links), cfg.Workers)
	sum := batch.NewPool(pipeline, writer, cfg.Workers, log, os.Stdout).Run(ctx, links)
	printSummary(sum)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}
	return nil
}

func printSummary(sum batch.Summary) {
	fmt.Fprintf(os.Stdout, "\n✓ %d written, %d skipped", sum.Written, sum.Skipped)
	if sum.Failed > 0 {
		fmt.Fprintf(os.Stdout, ", %d failed", sum.Failed)
	}
	fmt.Fprintf(os.Stdout, " (%d total)\n", sum.Total)
}

// loadConfig reads the environment, applies flag overrides and validates.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	applyOverrides(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newPipeline wires the fetcher, renderer and converters.
func newPipeline(cfg config.Config) (*batch.Pipeline, error) {
	renderer, err := render.New(render.Format(flagFormat), render.Options{
		ChunkSize: cfg.ChunkSize,
		Model:     cfg.EmbeddingModel,
		OllamaURL: cfg.OllamaURL,
		FontPath:  cfg.PDFFontPath,
	})
	if err != nil {
		return nil, err
	}
	fetcher := fetch.New(cfg.FetchOptions())
	return batch.NewPipeline(fetcher, extract.New(), normalize.New(), renderer, cfg.Conversion()), nil
}

// isArticleURL reports whether s looks like an http(s) link.
func isArticleURL(s string) bool {
	parsed, err := url.Parse(s)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
