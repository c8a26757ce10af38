package filter

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/index"
	"github.com/five82/dltview/internal/mapped"
	"github.com/five82/dltview/internal/metrics"
)

// minChunk keeps per-goroutine work large enough to outweigh scheduling.
const minChunk = 512

// Source is the message access the engine needs.
type Source interface {
	Count() int
	View(i int) (dlt.Message, error)
}

// Result is the outcome of a filter run.
type Result struct {
	// Positions are the matching message indices, ascending.
	Positions []int
	// Skipped counts candidates that failed to parse.
	Skipped int
}

// Options configures an Engine.
type Options struct {
	// Workers bounds concurrent chunk evaluation. Zero means GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Engine evaluates criteria over a file in parallel. An Engine holds no
// per-run state and may be shared.
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

// Apply returns the positions of src whose messages satisfy c. When fields
// is non-nil and c constrains an indexed field, only the positions listed
// for that value are evaluated; the result is the same as a full scan.
func (e *Engine) Apply(ctx context.Context, src Source, fields *index.Fields, c Criteria) (Result, error) {
	if c.IsEmpty() {
		return Result{Positions: All(src.Count())}, nil
	}
	start := time.Now()

	candidates, pruned := c.candidates(fields)
	total := src.Count()
	if pruned {
		total = len(candidates)
	}
	position := func(k int) int {
		if pruned {
			return candidates[k]
		}
		return k
	}

	chunk := max(minChunk, (total+e.workers-1)/max(e.workers, 1))
	nChunks := (total + chunk - 1) / chunk
	matched := make([][]int, nChunks)
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
					pos := position(k)
					msg, err := src.View(pos)
					if err != nil {
						skipped[ci]++
						continue
					}
					if c.Matches(msg) {
						out = append(out, pos)
					}
				}
				matched[ci] = out
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	n := 0
	for _, m := range matched {
		n += len(m)
	}
	res.Positions = make([]int, 0, n)
	for ci, m := range matched {
		res.Positions = append(res.Positions, m...)
		res.Skipped += skipped[ci]
	}

	elapsed := time.Since(start)
	e.metrics.RecordFilter(elapsed, res.Skipped)
	e.logger.Debug("filter applied",
		zap.Stringer("criteria", c),
		zap.Int("candidates", total),
		zap.Bool("pruned", pruned),
		zap.Int("matches", len(res.Positions)),
		zap.Int("skipped", res.Skipped),
		zap.Duration("duration", elapsed),
	)
	return res, nil
}

// All returns the identity result 0..n-1.
func All(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// candidates picks the shortest secondary-index list among the equality
// constraints of c. pruned is false when no list applies and every
// position must be scanned.
func (c Criteria) candidates(fields *index.Fields) (list []int, pruned bool) {
	if fields == nil {
		return nil, false
	}
	consider := func(l []int) {
		if !pruned || len(l) < len(list) {
			list, pruned = l, true
		}
	}
	if c.AppID != nil {
		consider(fields.ByAppID(*c.AppID))
	}
	if c.ContextID != nil {
		consider(fields.ByContextID(*c.ContextID))
	}
	if c.ECUID != nil {
		consider(fields.ByECUID(*c.ECUID))
	}
	if c.LogLevel != nil {
		consider(fields.ByLogLevel(*c.LogLevel))
	}
	return list, pruned
}
