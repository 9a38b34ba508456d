package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parsedArticle = `<div class="mw-content-ltr mw-parser-output" lang="en" dir="ltr">
<table class="infobox"><tr><td>Born 1815</td></tr></table>
<p><b>Ada Lovelace</b> was a mathematician.<sup class="reference"><a href="#cite_note-1">[1]</a></sup></p>
<div id="toc" class="toc">Contents</div>
<h2><span class="mw-headline" id="Early_life">Early life</span><span class="mw-editsection">[edit]</span></h2>
<p>She was born in London.</p>
<div class="reflist"><ol class="references"><li>Source</li></ol></div>
</div>`

func TestExtract_StripsWikiChrome(t *testing.T) {
	got, err := New().Extract(parsedArticle)
	require.NoError(t, err)

	assert.Contains(t, got, "Ada Lovelace")
	assert.Contains(t, got, "Early life")
	assert.Contains(t, got, "She was born in London.")

	for _, noise := range []string{"Born 1815", "[1]", "Contents", "[edit]", "Source"} {
		assert.NotContains(t, got, noise)
	}
}

func TestExtract_FallsBackToBody(t *testing.T) {
	got, err := New().Extract(`<html><body><p>Plain page</p><script>x()</script></body></html>`)
	require.NoError(t, err)
	assert.Contains(t, got, "Plain page")
	assert.NotContains(t, got, "x()")
}

func TestTitleText(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", TitleText(`<span class="mw-page-title-main">Ada Lovelace</span>`))
	assert.Equal(t, "Go (language)", TitleText(`<i>Go</i>  (language)`))
	assert.Equal(t, "Plain", TitleText("Plain"))
	assert.Equal(t, "", TitleText(""))
}
