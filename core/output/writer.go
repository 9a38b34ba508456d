// Package output handles file naming and writing for wikiplain outputs.
// Filenames are derived from the article title (e.g. Ada_Lovelace.txt),
// keeping letters and digits of every script. Titles that lose characters
// in the process carry a short hash so they stay distinct.
package output

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns where the article with the given title would be written.
func (w *Writer) Path(title, ext string) string {
	return filepath.Join(w.OutputDir, Filename(title)+ext)
}

// WriteArticle writes data to <dir>/<safe title><ext> and returns the path.
func (w *Writer) WriteArticle(title string, data []byte, ext string) (string, error) {
	path := w.Path(title, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Exists reports whether output for title has already been written.
func (w *Writer) Exists(title, ext string) bool {
	_, err := os.Stat(w.Path(title, ext))
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// WriteTo copies data to out, ending it with a newline if it has none.
// Used when results go to stdout instead of disk.
func WriteTo(out io.Writer, data []byte) error {
	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(out, "\n")
		return err
	}
	return nil
}

// maxNameBytes keeps names plus extension under the common 255-byte limit.
const maxNameBytes = 200

// Filename converts an article title into a flat filename.
// Spaces and underscores map to '_'. When any other character had to be
// replaced, or the name is too long, a short hash of the title is appended
// so distinct titles never share a file.
// Example: "C#" → "C__95da4403", "Ada Lovelace" → "Ada_Lovelace"
func Filename(title string) string {
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	title = strings.TrimSpace(title)
	name, lossy := sanitize(title)
	if strings.Trim(name, "_") == "" {
		name = "untitled"
	}
	if !lossy && len(name) <= maxNameBytes {
		return name
	}

	suffix := "_" + titleHash(title)
	limit := maxNameBytes - len(suffix)
	if len(name) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name + suffix
}

// sanitize replaces everything but letters, digits and combining marks
// with underscores. Marks are kept so Indic vowel signs survive. lossy is
// set when a character other than a space or underscore was replaced.
func sanitize(s string) (name string, lossy bool) {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch) || unicode.IsMark(ch):
			b.WriteRune(ch)
		case ch == ' ' || ch == '_':
			b.WriteRune('_')
		default:
			b.WriteRune('_')
			lossy = true
		}
	}
	return b.String(), lossy
}

func titleHash(title string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	return fmt.Sprintf("%08x", h.Sum32())
}
