package dltfile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/mapped"
	"github.com/five82/dltview/internal/metrics"
)

// ErrNotFound is returned for message indices outside the file.
var ErrNotFound = errors.New("message not found")

// Options configures Open.
type Options struct {
	// IndexCache enables reading and writing the on-disk index cache.
	IndexCache bool
	// CacheDir overrides DefaultCacheDir.
	CacheDir string
	// Workers bounds the fan-out of Messages. Zero means GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// File is an opened DLT file with its message index. The mapping is owned
// by the File and released by Close; messages obtained through View alias
// it and must not outlive the File.
type File struct {
	data      *mapped.File
	offsets   []int64
	workers   int
	cached    bool
	indexTime time.Duration
}

// Open maps path and builds or loads its message index.
func Open(path string, opts Options) (*File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m, err := mapped.Open(path)
	if err != nil {
		return nil, err
	}

	f := &File{data: m, workers: opts.Workers}
	if f.workers <= 0 {
		f.workers = runtime.GOMAXPROCS(0)
	}

	cacheDir := opts.CacheDir
	if opts.IndexCache && cacheDir == "" {
		if cacheDir, err = DefaultCacheDir(); err != nil {
			logger.Warn("index cache disabled", zap.Error(err))
		}
	}
	useCache := opts.IndexCache && cacheDir != "" && m.Len() > 0

	start := time.Now()
	if useCache {
		offsets, ok, err := loadIndexCache(cacheDir, m)
		if err != nil {
			logger.Warn("index cache unreadable", zap.String("path", m.Path()), zap.Error(err))
		}
		f.offsets, f.cached = offsets, ok
		opts.Metrics.RecordIndexCache(ok)
	}

	if !f.cached {
		err := mapped.Protect(func() error {
			f.offsets = ScanOffsets(m.Bytes())
			return nil
		})
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("index %s: %w", path, err)
		}
		if useCache {
			if err := saveIndexCache(cacheDir, m, f.offsets); err != nil {
				logger.Warn("index cache not written", zap.String("path", m.Path()), zap.Error(err))
			}
		}
	}
	f.indexTime = time.Since(start)
	opts.Metrics.RecordIndexBuild(f.indexTime, len(f.offsets))

	logger.Info("file indexed",
		zap.String("path", m.Path()),
		zap.Int("bytes", m.Len()),
		zap.Int("messages", len(f.offsets)),
		zap.String("compression", m.Compression().String()),
		zap.Bool("cached", f.cached),
		zap.Duration("duration", f.indexTime),
	)
	return f, nil
}

// Count returns the number of indexed messages.
func (f *File) Count() int { return len(f.offsets) }

// Path returns the absolute path of the file.
func (f *File) Path() string { return f.data.Path() }

// Name returns the base name of the file.
func (f *File) Name() string { return filepath.Base(f.data.Path()) }

// Size returns the number of mapped bytes.
func (f *File) Size() int64 { return int64(f.data.Len()) }

// SourceSize returns the size on disk, which differs from Size for archives.
func (f *File) SourceSize() int64 { return f.data.SourceSize() }

// Compression reports the archive format the file was stored in.
func (f *File) Compression() mapped.Compression { return f.data.Compression() }

// Offsets returns the message index. The slice must not be modified.
func (f *File) Offsets() []int64 { return f.offsets }

// IndexCached reports whether the index was loaded from the cache.
func (f *File) IndexCached() bool { return f.cached }

// IndexDuration returns how long building or loading the index took.
func (f *File) IndexDuration() time.Duration { return f.indexTime }

// Close releases the mapping.
func (f *File) Close() error { return f.data.Close() }

// record returns the bytes between message i and the next boundary.
func (f *File) record(i int) ([]byte, error) {
	if i < 0 || i >= len(f.offsets) {
		return nil, fmt.Errorf("message %d of %d: %w", i, len(f.offsets), ErrNotFound)
	}
	data := f.data.Bytes()
	end := int64(len(data))
	if i+1 < len(f.offsets) {
		end = f.offsets[i+1]
	}
	return data[f.offsets[i]:end], nil
}

// View parses message i without copying its payload. Callers touching many
// messages should hold a mapped.Protect guard around the loop.
func (f *File) View(i int) (dlt.Message, error) {
	raw, err := f.record(i)
	if err != nil {
		return dlt.Message{}, err
	}
	msg, err := dlt.ParseView(raw)
	if err != nil {
		return dlt.Message{}, f.positioned(i, err)
	}
	return msg, nil
}

// Message parses message i into a value that owns its payload.
func (f *File) Message(i int) (dlt.Message, error) {
	var msg dlt.Message
	err := mapped.Protect(func() error {
		raw, err := f.record(i)
		if err != nil {
			return err
		}
		if msg, err = dlt.Parse(raw); err != nil {
			return f.positioned(i, err)
		}
		return nil
	})
	return msg, err
}

// Messages parses count messages starting at start in parallel. The range
// is clamped to the file; the first parse failure aborts the call.
func (f *File) Messages(ctx context.Context, start, count int) ([]dlt.Message, error) {
	if start < 0 || start > len(f.offsets) {
		return nil, fmt.Errorf("message %d of %d: %w", start, len(f.offsets), ErrNotFound)
	}
	count = min(count, len(f.offsets)-start)
	if count <= 0 {
		return nil, nil
	}

	out := make([]dlt.Message, count)
	chunk := (count + f.workers - 1) / f.workers

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < count; lo += chunk {
		hi := min(lo+chunk, count)
		g.Go(func() error {
			return mapped.Protect(func() error {
				for j := lo; j < hi; j++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					raw, err := f.record(start + j)
					if err != nil {
						return err
					}
					if out[j], err = dlt.Parse(raw); err != nil {
						return f.positioned(start+j, err)
					}
				}
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *File) positioned(i int, err error) error {
	var formatErr *dlt.FormatError
	if errors.As(err, &formatErr) {
		return formatErr.At(i, f.offsets[i])
	}
	return err
}
