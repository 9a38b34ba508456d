package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, cfg Config, body string) Result {
	t.Helper()
	buf := NewBuffer(body)
	stream, err := NewTokenizer(cfg).Tokenize(buf)
	require.NoError(t, err)
	return NewRenderer(cfg).Render(buf, stream)
}

func TestRender_TrimsSurroundingWhitespace(t *testing.T) {
	got := render(t, Config{}, "   padded text  ")
	assert.Equal(t, "padded text", got.Text)
}

func TestRender_HeadingTextUnmodified(t *testing.T) {
	got := render(t, Config{}, `==Heading==\nbody`)
	assert.Equal(t, "Heading\nbody", got.Text)
}

func TestRender_PossibleLinkModes(t *testing.T) {
	body := "see [[Target|Display]] now"

	assert.Equal(t, "see Target now", render(t, Config{}, body).Text)
	assert.Equal(t, "see Display now", render(t, Config{LinkText: LinkDisplay}, body).Text)
}

func TestRender_NestedLinkDropped(t *testing.T) {
	got := render(t, Config{}, "[[File:a.jpg|thumb|A [[cat]] here]] after")
	assert.Equal(t, "after", got.Text)
}

func TestRender_ExternalLinkKeepsLabel(t *testing.T) {
	assert.Equal(t, "go Example site now", render(t, Config{}, "go [https://example.com Example site] now").Text)
	assert.Equal(t, "go  now", render(t, Config{}, "go [https://example.com] now").Text)
}

func TestRender_ItalicRepair(t *testing.T) {
	got := render(t, Config{}, "''[[Target|Display]]''")
	assert.Equal(t, "Target", got.Text)

	got = render(t, Config{LinkText: LinkDisplay}, "''[[Target|Display]]''")
	assert.Equal(t, "Display", got.Text)

	got = render(t, Config{}, "''plain italic''")
	assert.Equal(t, "plain italic", got.Text)
}

func TestRepairLinks(t *testing.T) {
	tests := []struct {
		in   string
		mode LinkText
		want string
	}{
		{"see [[A|B]] and [[C]]", LinkTarget, "see A and C"},
		{"see [[A|B]] and [[C]]", LinkDisplay, "see B and C"},
		{"no markers here", LinkTarget, "no markers here"},
		{"[[open only", LinkTarget, "[[open only"},
		{"[[A|]]", LinkDisplay, "A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RepairLinks(tt.in, tt.mode), "input %q", tt.in)
	}
}

func TestRender_Sections(t *testing.T) {
	got := render(t, Config{}, `Lead text\n==History==\nOld times\n===Early===\nVery old`)

	assert.Equal(t, "Lead text\nHistory\nOld times\nEarly\nVery old", got.Text)
	assert.Equal(t, []Section{
		{Heading: "", Level: 0, Text: "Lead text"},
		{Heading: "History", Level: 2, Text: "Old times"},
		{Heading: "Early", Level: 3, Text: "Very old"},
	}, got.Sections)
}

func TestRender_NoLeadSectionWhenEmpty(t *testing.T) {
	got := render(t, Config{}, `==Only==\ntext`)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Only", got.Sections[0].Heading)
}

func TestRender_Idempotent(t *testing.T) {
	first := render(t, Config{}, `'''Bold''' intro with [[Link]]\n==Part==\nMore [[A|B]] text.`)
	second := render(t, Config{}, first.Text)
	assert.Equal(t, first.Text, second.Text)
}
