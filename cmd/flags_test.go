package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikiplain/config"
	"github.com/gaurav-prasanna/wikiplain/core/render"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

func TestFormatValue(t *testing.T) {
	f := formatValue(render.FormatText)
	require.NoError(t, f.Set("JSON"))
	assert.Equal(t, "json", f.String())
	assert.Error(t, f.Set("docx"))
	assert.Equal(t, "json", f.String())
}

func TestLinkTextValue(t *testing.T) {
	var l linkTextValue
	assert.Equal(t, "target", l.String())
	require.NoError(t, l.Set("display"))
	assert.Equal(t, wikitext.LinkDisplay, wikitext.LinkText(l))
	assert.Error(t, l.Set("both"))
}

func TestApplyOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConversionFlags(fs)
	require.NoError(t, fs.Parse([]string{"--workers", "9", "--link-text", "display", "--max-brace-depth", "5"}))

	cfg := config.Load()
	cfg.ChunkSize = 77
	applyOverrides(fs, &cfg)

	assert.Equal(t, 9, cfg.Workers)
	assert.Equal(t, "display", cfg.LinkText)
	assert.Equal(t, 5, cfg.MaxBraceDepth)
	assert.Equal(t, 77, cfg.ChunkSize, "unset flags keep the loaded value")
}

func TestIsArticleURL(t *testing.T) {
	assert.True(t, isArticleURL("https://en.wikipedia.org/wiki/Ada"))
	assert.False(t, isArticleURL("as_1.links"))
	assert.False(t, isArticleURL("ftp://host/file"))
}
