package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/core/output"
)

// Summary counts the outcome of a batch run.
type Summary struct {
	Total   int
	Written int64
	Skipped int64
	Failed  int64
}

// Pool converts many links concurrently and writes each result to disk.
type Pool struct {
	pipeline *Pipeline
	writer   *output.Writer
	workers  int
	log      *slog.Logger
	progress io.Writer
}

// NewPool creates a Pool with the given number of workers (minimum 1).
// Progress lines go to progress; nil discards them.
func NewPool(p *Pipeline, w *output.Writer, workers int, log *slog.Logger, progress io.Writer) *Pool {
	if workers < 1 {
		workers = 1
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Pool{pipeline: p, writer: w, workers: workers, log: log, progress: progress}
}

// Run processes links until all are done or ctx is cancelled. A failing
// article is logged and counted; it never stops the batch.
func (p *Pool) Run(ctx context.Context, links []string) Summary {
	sum := Summary{Total: len(links)}
	var done atomic.Int64
	var mu sync.Mutex
	ext := p.pipeline.Renderer().Extension()

	jobs := make(chan string)
	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				status := p.process(ctx, link, ext, &sum)
				mu.Lock()
				fmt.Fprintf(p.progress, "[%d/%d] %s %s\n", done.Add(1), sum.Total, status, link)
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, link := range links {
		select {
		case <-ctx.Done():
			p.log.Warn("batch cancelled", "completed", done.Load(), "total", sum.Total)
			break dispatch
		case jobs <- link:
		}
	}
	close(jobs)
	wg.Wait()
	return sum
}

func (p *Pool) process(ctx context.Context, link, ext string, sum *Summary) string {
	log := p.log.With("link", link)

	ref, err := fetch.ArticleRefFromURL(link)
	if err != nil {
		log.Error("invalid link", "error", err)
		atomic.AddInt64(&sum.Failed, 1)
		return "✗"
	}
	if p.writer.Exists(ref.Title, ext) {
		log.Debug("already converted, skipping")
		atomic.AddInt64(&sum.Skipped, 1)
		return "-"
	}

	res, err := p.pipeline.Process(ctx, link)
	if err != nil {
		log.Error("conversion failed", "error", err)
		atomic.AddInt64(&sum.Failed, 1)
		return "✗"
	}
	for _, w := range res.Warnings {
		log.Warn("conversion warning", "warning", w.Error())
	}

	path, err := p.writer.WriteArticle(ref.Title, res.Data, ext)
	if err != nil {
		log.Error("write failed", "error", err)
		atomic.AddInt64(&sum.Failed, 1)
		return "✗"
	}
	log.Debug("written", "path", path)
	atomic.AddInt64(&sum.Written, 1)
	return "✓"
}

// ReadLinks reads one link per line, skipping blank lines and # comments.
func ReadLinks(r io.Reader) ([]string, error) {
	var links []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading links: %w", err)
	}
	return links, nil
}

// ReadLinksFile reads the links listed in the file at path.
func ReadLinksFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening links file: %w", err)
	}
	defer f.Close()
	return ReadLinks(f)
}
