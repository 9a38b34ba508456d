package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	md, err := New().Normalize(`<div><h2>Early life</h2><p><b>Ada</b> was born in <a href="/wiki/London">London</a>.</p></div>`, "")
	require.NoError(t, err)

	assert.Contains(t, md, "## Early life")
	assert.Contains(t, md, "**Ada**")
	assert.Contains(t, md, "[London](/wiki/London)")
	assert.NotContains(t, md, "\n\n\n")
}

func TestNormalize_ResolvesWikiLinks(t *testing.T) {
	html := `<p>Born in <a href="/wiki/London">London</a>, see <img src="//upload.wikimedia.org/a.png" alt="portrait"></p>`
	md, err := New().Normalize(html, "https://en.wikipedia.org/wiki/Ada_Lovelace")
	require.NoError(t, err)

	assert.Contains(t, md, "[London](https://en.wikipedia.org/wiki/London)")
	assert.Contains(t, md, "https://upload.wikimedia.org/a.png")
}

func TestNormalize_UnwrapsRedLinksAndAnchors(t *testing.T) {
	html := `<p><a class="new" href="/w/index.php?title=Missing&action=edit&redlink=1">Missing page</a> and <a href="#History">history</a>.</p>`
	md, err := New().Normalize(html, "https://en.wikipedia.org/wiki/Ada_Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "Missing page and history.", md)
}

func TestNormalize_Empty(t *testing.T) {
	md, err := New().Normalize("  ", "")
	require.NoError(t, err)
	assert.Empty(t, md)

	_, err = New().Normalize("<p>x</p>", "://bad")
	assert.Error(t, err)
}
