// Package output — links archive.
// Harvest batches are written as <lang>_<n>.links files; in links-only
// mode they are bundled into <lang>.zip and the originals removed.
package output

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// LinksExt is the extension of harvested link batch files.
const LinksExt = ".links"

// LinksFiles returns the *.links files in dir, sorted by name.
func LinksFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+LinksExt))
	if err != nil {
		return nil, fmt.Errorf("listing links files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// ArchiveLinks zips every *.links file in dir into <dir>/<lang>.zip with
// Deflate compression, then removes the originals. Returns the archive
// path and the number of files archived.
func ArchiveLinks(dir, lang string) (string, int, error) {
	files, err := LinksFiles(dir)
	if err != nil {
		return "", 0, err
	}
	if len(files) == 0 {
		return "", 0, fmt.Errorf("no %s files in %s", LinksExt, dir)
	}

	archivePath := filepath.Join(dir, lang+".zip")
	f, err := os.Create(archivePath)
	if err != nil {
		return "", 0, fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(f)
	for _, name := range files {
		if err := addToZip(zw, name); err != nil {
			zw.Close()
			f.Close()
			return "", 0, err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", 0, fmt.Errorf("finalizing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("closing archive: %w", err)
	}

	for _, name := range files {
		if err := os.Remove(name); err != nil {
			return archivePath, len(files), fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return archivePath, len(files), nil
}

func addToZip(zw *zip.Writer, name string) error {
	src, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer src.Close()

	dst, err := zw.CreateHeader(&zip.FileHeader{
		Name:   filepath.Base(name),
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	return nil
}
