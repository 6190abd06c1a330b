// Package pipeline runs the per-URL fetch, parse, extract, filter and emit
// sequence over a stream of URLs.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jmylchreest/rightscrape/internal/logger"
	"github.com/jmylchreest/rightscrape/pkg/document"
	"github.com/jmylchreest/rightscrape/pkg/fetcher"
	"github.com/jmylchreest/rightscrape/pkg/listing"
)

// ErrPartialFailure is returned by Run under ContinueOnError when at least
// one URL failed.
var ErrPartialFailure = errors.New("one or more URLs failed")

// Stats counts what happened to the lines of one run.
type Stats struct {
	Processed int // non-blank lines handled
	Emitted   int
	Filtered  int
	Failed    int
}

// Pipeline processes URLs strictly one at a time.
type Pipeline struct {
	config Config
}

// New creates a Pipeline. Fetcher, Extractor and Writer are required; a
// static fetcher is used when none is given.
func New(opts ...Option) (*Pipeline, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Fetcher == nil {
		cfg.Fetcher = fetcher.NewStatic(fetcher.DefaultStaticConfig())
	}
	if cfg.Extractor == nil {
		return nil, errors.New("pipeline: extractor is required")
	}
	if cfg.Writer == nil {
		return nil, errors.New("pipeline: writer is required")
	}

	return &Pipeline{config: cfg}, nil
}

// Close releases the fetcher and flushes the writer.
func (p *Pipeline) Close() error {
	return errors.Join(p.config.Fetcher.Close(), p.config.Writer.Close())
}

// Run reads one URL per line from r and processes each in order. Blank
// lines are skipped. Under AbortOnError the first failure is returned;
// under ContinueOnError failures are logged and ErrPartialFailure is
// returned at the end if any occurred.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	start := time.Now()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Processed++

		emitted, err := p.Process(ctx, line)
		if err != nil {
			stats.Failed++
			if p.config.ErrorPolicy == AbortOnError {
				return stats, err
			}
			logger.Error("skipping URL", "url", line, "error", err)
			continue
		}
		if emitted {
			stats.Emitted++
		} else {
			stats.Filtered++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	logger.Info("run complete",
		"processed", stats.Processed,
		"emitted", stats.Emitted,
		"filtered", stats.Filtered,
		"failed", stats.Failed,
		"duration", time.Since(start))

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrPartialFailure, stats.Failed, stats.Processed)
	}
	return stats, nil
}

// Process fetches, extracts, filters and emits a single URL. It reports
// whether a record was emitted; false with a nil error means the record
// was filtered out.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (bool, error) {
	url := strings.TrimSpace(rawURL)
	log := logger.With("url", url)

	content, err := p.config.Fetcher.Fetch(ctx, url, p.config.FetchOptions)
	if err != nil {
		return false, err
	}
	log.Debug("page fetched", "status", content.StatusCode, "body_size", len(content.Body))

	result, err := p.extract(url, content.Body)
	if err != nil {
		p.dump(content.Body)
		return false, err
	}

	result, ok := listing.Filter(p.config.Filter, result)
	if !ok {
		log.Debug("listing dropped by filter", "floorplan_required", p.config.Filter.Floorplan)
		return false, nil
	}

	if err := p.config.Writer.Write(result); err != nil {
		return false, fmt.Errorf("failed to write output: %w", err)
	}
	log.Debug("listing emitted")
	return true, nil
}

func (p *Pipeline) extract(url, body string) (*listing.Result, error) {
	doc, err := document.Parse(body)
	if err != nil {
		return nil, err
	}
	return p.config.Extractor.Extract(url, doc)
}

// dump writes body to the configured dump path, overwriting any previous
// dump. Failures to dump are logged, never returned.
func (p *Pipeline) dump(body string) {
	path := p.config.DumpPath
	if path == "" {
		return
	}
	logger.Info("dumping document", "path", path, "bytes", len(body))
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		logger.Warn("failed to dump document", "path", path, "error", err)
	}
}
