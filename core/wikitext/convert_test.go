package wikitext

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `{{Infobox person|name=Ada}}'''Ada Lovelace''' was an English [[mathematician]] and ''[[Writer|writer]]''.<ref>Source</ref>
== Early life ==
She was born in [[London|the capital]].
* '''Note''' one
== References ==
{{reflist}}`

func TestConvert_Article(t *testing.T) {
	got, err := Convert(EncodeBody(sampleArticle), Config{StripReferencesSection: true})
	require.NoError(t, err)

	want := "Ada Lovelace was an English mathematician and Writer.\n Early life \nShe was born in London.\n Note one"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "References")
	assert.NotContains(t, got, "Source")
}

func TestConvert_DisplayLinkText(t *testing.T) {
	got, err := Convert(EncodeBody(sampleArticle), Config{StripReferencesSection: true, LinkText: LinkDisplay})
	require.NoError(t, err)
	assert.Contains(t, got, "and writer.")
	assert.Contains(t, got, "born in the capital.")
}

func TestConverter_Sections(t *testing.T) {
	result, err := NewConverter(Config{StripReferencesSection: true}).Convert(EncodeBody(sampleArticle))
	require.NoError(t, err)
	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Early life", result.Sections[1].Heading)
	assert.Equal(t, 2, result.Sections[1].Level)
	assert.Empty(t, result.Warnings)
}

func TestConvert_InfoboxContributesNothing(t *testing.T) {
	got, err := Convert(EncodeBody("{{Infobox|x=1}}"), Config{})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Convert(EncodeBody("before {{Infobox|x=1}}after"), Config{})
	require.NoError(t, err)
	assert.Equal(t, "before after", got)
}

func TestConvert_SigilFreeRoundTrip(t *testing.T) {
	in := "  The quick brown fox jumps over the lazy dog.  "
	got, err := Convert(EncodeBody(in), Config{})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(in), got)
}

func TestConvert_ReferencesSubsectionStripped(t *testing.T) {
	got, err := Convert(EncodeBody("Body text.\n== Notes ==\n=== References ===\n* cite"), Config{StripReferencesSection: true})
	require.NoError(t, err)
	assert.Equal(t, "Body text.\n Notes", got)
}

func TestConvert_EncodedEscapes(t *testing.T) {
	got, err := Convert(EncodeBody("a\u2028b x\x01y tab\there back\\slash"), Config{})
	require.NoError(t, err)
	assert.Equal(t, "a\nb xy tab here back\\slash", got)
}

func TestConvert_MalformedReturnsNoText(t *testing.T) {
	got, err := Convert(EncodeBody("text ''never closed"), Config{})
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrMalformedMarkup))
}

func TestConverter_WarnsOnMissingQuote(t *testing.T) {
	result, err := NewConverter(Config{}).Convert("no quote here!")
	require.NoError(t, err)
	assert.Equal(t, "no quote here", result.Text)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, EncodingAssumptionViolated, result.Warnings[0].Kind)
}

func TestConverter_DefaultsApplied(t *testing.T) {
	cfg := NewConverter(Config{}).Config()
	assert.Equal(t, DefaultMaxScanSteps, cfg.MaxScanSteps)
	assert.Equal(t, DefaultMaxBraceDepth, cfg.MaxBraceDepth)
}

func TestParseLinkText(t *testing.T) {
	mode, err := ParseLinkText("display")
	require.NoError(t, err)
	assert.Equal(t, LinkDisplay, mode)
	assert.Equal(t, "display", mode.String())

	mode, err = ParseLinkText("")
	require.NoError(t, err)
	assert.Equal(t, LinkTarget, mode)

	_, err = ParseLinkText("both")
	assert.Error(t, err)
}

func TestConvert_ConcurrentMatchesSequential(t *testing.T) {
	const n = 64
	docs := make([]string, n)
	for i := range docs {
		docs[i] = EncodeBody(fmt.Sprintf("'''Doc %d''' links [[Page_%d]] and [[T%d|D%d]]\n== Part %d ==\n* ''item'' %d", i, i, i, i, i, i))
	}
	docs[7] = EncodeBody("broken ''doc")

	conv := NewConverter(Config{})
	type outcome struct {
		text string
		err  error
	}
	sequential := make([]outcome, n)
	for i, doc := range docs {
		res, err := conv.Convert(doc)
		if err == nil {
			sequential[i].text = res.Text
		}
		sequential[i].err = err
	}

	concurrent := make([]outcome, n)
	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := conv.Convert(doc)
			if err == nil {
				concurrent[i].text = res.Text
			}
			concurrent[i].err = err
		}()
	}
	wg.Wait()

	for i := range docs {
		assert.Equal(t, sequential[i].text, concurrent[i].text, "doc %d", i)
		assert.Equal(t, sequential[i].err, concurrent[i].err, "doc %d", i)
	}
	assert.Error(t, concurrent[7].err)
}
