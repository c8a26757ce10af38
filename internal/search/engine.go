package search

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/mapped"
	"github.com/five82/dltview/internal/metrics"
)

const minChunk = 512

// Source is the message access the engine needs.
type Source interface {
	View(i int) (dlt.Message, error)
}

// Result is the outcome of a search run.
type Result struct {
	// Hits index into the positions the run was given, ascending.
	Hits    []int
	Skipped int
}

// Options configures an Engine.
type Options struct {
	Workers int
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Engine runs patterns over filter results in parallel.
type Engine struct {
	workers int
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewEngine creates an Engine.
func NewEngine(opts Options) *Engine {
	e := &Engine{workers: opts.Workers, logger: opts.Logger, metrics: opts.Metrics}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Run evaluates p against the messages at positions. Hits are indices into
// positions, not message indices.
func (e *Engine) Run(ctx context.Context, src Source, positions []int, p *Pattern) (Result, error) {
	start := time.Now()
	total := len(positions)
	chunk := max(minChunk, (total+e.workers-1)/e.workers)
	nChunks := (total + chunk - 1) / chunk
	hits := make([][]int, nChunks)
	skipped := make([]int, nChunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for ci := range nChunks {
		lo, hi := ci*chunk, min((ci+1)*chunk, total)
		g.Go(func() error {
			return mapped.Protect(func() error {
				var out []int
				for k := lo; k < hi; k++ {
					if (k-lo)%1024 == 0 {
						if err := ctx.Err(); err != nil {
							return err
						}
					}
					msg, err := src.View(positions[k])
					if err != nil {
						skipped[ci]++
						continue
					}
					if p.Matches(msg) {
						out = append(out, k)
					}
				}
				hits[ci] = out
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Hits: []int{}}
	for ci, h := range hits {
		res.Hits = append(res.Hits, h...)
		res.Skipped += skipped[ci]
	}

	elapsed := time.Since(start)
	e.metrics.RecordSearch(elapsed, res.Skipped)
	e.logger.Debug("search finished",
		zap.String("pattern", p.Source()),
		zap.Bool("case_sensitive", p.CaseSensitive()),
		zap.Int("candidates", total),
		zap.Int("hits", len(res.Hits)),
		zap.Duration("duration", elapsed),
	)
	return res, nil
}
