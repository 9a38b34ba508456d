// Package chunk splits article plaintext into word chunks for the JSON and
// embeddings outputs. Chunks never straddle a section boundary: each section
// starts a new chunk, led by its heading words, so a chunk embedded on its
// own still says which part of the article it came from. Words are
// whitespace-delimited and chunks do not overlap.
package chunk

import (
	"strings"

	"github.com/gaurav-prasanna/wikiplain/core"
)

// DefaultChunkSize is the number of words per chunk when none is given.
const DefaultChunkSize = 512

// Chunker splits article text into word chunks of at most ChunkSize words.
type Chunker struct {
	ChunkSize int
}

// New creates a Chunker. chunkSize <= 0 uses DefaultChunkSize.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Document chunks doc by section when it has an outline, otherwise its
// plaintext as a whole. Markdown-path documents carry no outline.
func (c *Chunker) Document(doc core.Document) []string {
	if len(doc.Sections) == 0 {
		return c.Chunk(doc.Text)
	}
	return c.Sections(doc.Sections)
}

// Sections chunks each section separately, prefixing the heading to the
// section body. The lead section has no heading.
func (c *Chunker) Sections(sections []core.Section) []string {
	var chunks []string
	for _, s := range sections {
		words := append(strings.Fields(s.Heading), strings.Fields(s.Text)...)
		chunks = append(chunks, c.split(words)...)
	}
	return chunks
}

// Chunk splits text into slices of at most ChunkSize words.
func (c *Chunker) Chunk(text string) []string {
	return c.split(strings.Fields(text))
}

func (c *Chunker) split(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(words)+c.ChunkSize-1)/c.ChunkSize)
	for i := 0; i < len(words); i += c.ChunkSize {
		end := min(i+c.ChunkSize, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// WordCount returns the number of whitespace-delimited words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
