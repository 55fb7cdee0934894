package mdreader

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Generator reads every document of a content tree.
type Generator struct {
	Sources http.FileSystem
	Config  *Config
	Log     *slog.Logger
}

// Report summarizes a Generate run.
type Report struct {
	// Read is the number of documents read and emitted.
	Read int

	// Failed maps the path of each document that could not be read to its error.
	Failed map[string]error
}

// FailedPaths returns the paths of the failed documents in sorted order.
func (r *Report) FailedPaths() []string {
	paths := make([]string, 0, len(r.Failed))
	for path := range r.Failed {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Paths returns the paths of the documents Generate would read.
func (g *Generator) Paths() ([]string, error) {
	var paths []string
	include := func(path string) bool {
		return g.Config.Readers.Handles(path) && !g.Config.Excluded(path)
	}
	collect := func(path string) error {
		paths = append(paths, path)
		return nil
	}
	if err := WalkFileSystem(g.Sources, include, collect); err != nil {
		return nil, err
	}
	return paths, nil
}

// Generate reads all documents with Config.Workers goroutines, each owning its own Readers, and
// calls emit for each one. emit is called concurrently.
//
// A document that fails to read is logged and recorded in the report; the others are still
// read. An error from emit stops the run.
func (g *Generator) Generate(ctx context.Context, emit func(*Document) error) (*Report, error) {
	paths, err := g.Paths()
	if err != nil {
		return nil, errors.WithMessage(err, "listing content")
	}

	workers := g.Config.Workers
	if workers > len(paths) {
		workers = len(paths)
	}

	var (
		mu     sync.Mutex
		report = &Report{Failed: map[string]error{}}
		log    = logger(g.Log)
		jobs   = make(chan string)
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			readers, err := g.Config.NewReaders(g.Sources, log)
			if err != nil {
				return err
			}
			for path := range jobs {
				doc, err := readers.Read(path)
				if err != nil {
					log.Error("Failed to read document", "path", path, "error", err)
					mu.Lock()
					report.Failed[path] = err
					mu.Unlock()
					continue
				}
				if err := emit(doc); err != nil {
					return errors.WithMessagef(err, "emit %s", path)
				}
				mu.Lock()
				report.Read++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
