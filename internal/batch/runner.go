// internal/batch/runner.go
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/law-makers/itemscrape/internal/cache"
	"github.com/law-makers/itemscrape/internal/extract"
	"github.com/law-makers/itemscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// Failure codes for errors that do not come from the extractor
const (
	CodeReadError = "READ_ERROR"
	CodeCanceled  = "CANCELED"
	CodeOther     = "OTHER"
)

// PageExtractor turns raw page text into a record
type PageExtractor interface {
	ExtractHTML(raw string) (*models.ItemRecord, error)
}

// Result is the outcome for one page file
type Result struct {
	Path     string
	Record   *models.ItemRecord
	Err      error
	Cached   bool
	Duration time.Duration
}

// Runner parses saved pages concurrently
type Runner struct {
	extractor   PageExtractor
	cache       cache.Cache
	metrics     *Metrics
	concurrency int
	readFile    func(string) ([]byte, error)
}

// Option configures a Runner
type Option func(*Runner)

// WithConcurrency sets the worker count. Values <= 0 auto-tune.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithCache serves duplicate page content from c
func WithCache(c cache.Cache) Option {
	return func(r *Runner) { r.cache = c }
}

// WithMetrics records per-page metrics on m
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New creates a Runner around extractor
func New(extractor PageExtractor, opts ...Option) *Runner {
	r := &Runner{
		extractor:   extractor,
		concurrency: OptimalConcurrency(),
		readFile:    os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Concurrency returns the worker count in use
func (r *Runner) Concurrency() int {
	return r.concurrency
}

// Run parses every path and streams one Result per started page.
// Once ctx is done no new pages are started; the channel is closed after
// the pages in flight finish.
func (r *Runner) Run(ctx context.Context, paths []string) <-chan Result {
	results := make(chan Result, len(paths))

	go func() {
		defer close(results)

		var wg sync.WaitGroup
		sem := make(chan struct{}, r.concurrency)

	dispatch:
		for _, path := range paths {
			select {
			case <-ctx.Done():
				break dispatch
			case sem <- struct{}{}: // Acquire semaphore
			}

			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				defer func() { <-sem }() // Release semaphore

				results <- r.parse(ctx, p)
			}(path)
		}

		wg.Wait()
	}()

	return results
}

func (r *Runner) parse(ctx context.Context, path string) Result {
	start := time.Now()
	res := Result{Path: path}
	defer func() {
		res.Duration = time.Since(start)
		r.metrics.ObserveDuration(res.Duration)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		r.metrics.IncFailure(CodeCanceled)
		return res
	}

	content, err := r.readFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read page: %w", err)
		r.metrics.IncFailure(CodeReadError)
		return res
	}

	if r.cache != nil {
		if rec, ok := r.cache.Get(content); ok {
			log.Debug().Str("path", path).Msg("Record served from cache")
			res.Record = rec
			res.Cached = true
			r.metrics.IncCacheHit()
			r.metrics.IncPage(string(rec.Platform))
			return res
		}
	}

	rec, err := r.extractor.ExtractHTML(string(content))
	if err != nil {
		code := string(extract.CodeOf(err))
		if code == "" {
			code = CodeOther
		}
		log.Debug().Err(err).Str("path", path).Str("code", code).Msg("Page extraction failed")
		res.Err = err
		r.metrics.IncFailure(code)
		return res
	}

	if r.cache != nil {
		r.cache.Set(content, rec)
	}
	res.Record = rec
	r.metrics.IncPage(string(rec.Platform))
	return res
}

// Glob lists the files in dir matching pattern, sorted
func Glob(dir, pattern string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}
