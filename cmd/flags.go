// Package cmd — enum flag values and config overrides.
package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/wikiplain/config"
	"github.com/gaurav-prasanna/wikiplain/core/render"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

// formatValue is a pflag.Value restricted to render.Formats.
type formatValue render.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	v, err := render.ParseFormat(strings.ToLower(s))
	if err != nil {
		return err
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string { return "format" }

// linkTextValue is a pflag.Value for wikitext.LinkText.
type linkTextValue wikitext.LinkText

var _ pflag.Value = (*linkTextValue)(nil)

func (l *linkTextValue) String() string { return wikitext.LinkText(*l).String() }

func (l *linkTextValue) Set(s string) error {
	v, err := wikitext.ParseLinkText(strings.ToLower(s))
	if err != nil {
		return err
	}
	*l = linkTextValue(v)
	return nil
}

func (l *linkTextValue) Type() string { return "mode" }

// Flag variables shared by convert and harvest.
var (
	flagFormat        = formatValue(render.FormatText)
	flagLinkText      linkTextValue
	flagWorkers       int
	flagOutputDir     string
	flagMaxScanSteps  int
	flagMaxBraceDepth int
	flagModel         string
	flagChunkSize     int
	flagFont          string
)

// addConversionFlags registers the flags that shape a conversion run.
func addConversionFlags(fs *pflag.FlagSet) {
	fs.Var(&flagFormat, "format", "Output format: "+formatList())
	fs.Var(&flagLinkText, "link-text", "Piped link text to keep: target or display")
	fs.IntVar(&flagWorkers, "workers", 4, "Concurrent conversions in batch mode")
	fs.StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	fs.IntVar(&flagMaxScanSteps, "max-scan-steps", wikitext.DefaultMaxScanSteps, "Step ceiling for each terminator scan")
	fs.IntVar(&flagMaxBraceDepth, "max-brace-depth", wikitext.DefaultMaxBraceDepth, "Deepest supported {{template}} nesting")
	fs.StringVar(&flagModel, "model", "", "Embedding model (required with --format embeddings)")
	fs.IntVar(&flagChunkSize, "chunk_size", 512, "Word chunk size for json and embeddings")
	fs.StringVar(&flagFont, "font", "", "UTF-8 TrueType font for --format pdf")
}

// applyOverrides copies every flag the user set onto cfg.
func applyOverrides(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("link-text") {
		cfg.LinkText = flagLinkText.String()
	}
	if fs.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if fs.Changed("output_dir") {
		cfg.OutputDir = flagOutputDir
	}
	if fs.Changed("max-scan-steps") {
		cfg.MaxScanSteps = flagMaxScanSteps
	}
	if fs.Changed("max-brace-depth") {
		cfg.MaxBraceDepth = flagMaxBraceDepth
	}
	if fs.Changed("model") {
		cfg.EmbeddingModel = flagModel
	}
	if fs.Changed("chunk_size") {
		cfg.ChunkSize = flagChunkSize
	}
	if fs.Changed("font") {
		cfg.PDFFontPath = flagFont
	}
}

func formatList() string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
