package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/dltview/internal/dltfile"
	"github.com/five82/dltview/internal/session"
	"github.com/five82/dltview/internal/state"
)

// StartLoader launches a background goroutine that opens paths in order
// and pushes each result to store. It returns immediately.
func StartLoader(ctx context.Context, store *state.Store, paths []string, opts dltfile.Options) {
	if len(paths) == 0 {
		return
	}
	store.Expect(len(paths))
	go func() {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				store.Push(state.LoadResult{Path: path, Err: err})
				continue
			}
			store.Begin(path)
			f, fields, err := session.Load(path, opts)
			if err != nil && opts.Logger != nil {
				opts.Logger.Error("open failed", zap.String("path", path), zap.Error(err))
			}
			store.Push(state.LoadResult{Path: path, File: f, Fields: fields, Err: err})
		}
	}()
}

// drain closes files that were loaded but never handed to a session.
func drain(store *state.Store) {
	for _, r := range store.Take() {
		if r.File != nil {
			_ = r.File.Close()
		}
	}
}
