// Package index builds secondary indices that map header field values to the
// positions of the messages carrying them.
package index

import (
	"cmp"
	"maps"
	"slices"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/mapped"
)

// Source is the message access Build needs.
type Source interface {
	Count() int
	View(i int) (dlt.Message, error)
}

// Fields holds one position list per distinct app id, context id, ECU id
// and log level. Every list is ascending. Fields is immutable once built.
type Fields struct {
	appIDs     map[string][]int
	contextIDs map[string][]int
	ecuIDs     map[string][]int
	levels     map[dlt.LogLevel][]int
	skipped    int
}

// Build indexes every message of src in one pass. Messages that fail to
// parse are left out of all lists and counted in Skipped. Messages without
// an extended header contribute only their ECU id.
func Build(src Source) (*Fields, error) {
	f := &Fields{
		appIDs:     make(map[string][]int),
		contextIDs: make(map[string][]int),
		ecuIDs:     make(map[string][]int),
		levels:     make(map[dlt.LogLevel][]int),
	}
	err := mapped.Protect(func() error {
		for i := range src.Count() {
			msg, err := src.View(i)
			if err != nil {
				f.skipped++
				continue
			}
			f.ecuIDs[msg.ECUID()] = append(f.ecuIDs[msg.ECUID()], i)
			if !msg.HasExtended() {
				continue
			}
			app, ctx, level := msg.Extended.App(), msg.Extended.Context(), msg.Extended.LogLevel()
			f.appIDs[app] = append(f.appIDs[app], i)
			f.contextIDs[ctx] = append(f.contextIDs[ctx], i)
			f.levels[level] = append(f.levels[level], i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ByAppID returns the positions of messages with the given app id, or nil.
func (f *Fields) ByAppID(id string) []int { return f.appIDs[id] }

// ByContextID returns the positions of messages with the given context id.
func (f *Fields) ByContextID(id string) []int { return f.contextIDs[id] }

// ByECUID returns the positions of messages from the given ECU.
func (f *Fields) ByECUID(id string) []int { return f.ecuIDs[id] }

// ByLogLevel returns the positions of messages at the given level.
func (f *Fields) ByLogLevel(level dlt.LogLevel) []int { return f.levels[level] }

// AppIDs returns the distinct app ids in sorted order.
func (f *Fields) AppIDs() []string { return sortedKeys(f.appIDs) }

// ContextIDs returns the distinct context ids in sorted order.
func (f *Fields) ContextIDs() []string { return sortedKeys(f.contextIDs) }

// ECUIDs returns the distinct ECU ids in sorted order.
func (f *Fields) ECUIDs() []string { return sortedKeys(f.ecuIDs) }

// LogLevels returns the distinct log levels in ascending order.
func (f *Fields) LogLevels() []dlt.LogLevel { return sortedKeys(f.levels) }

// Skipped returns the number of messages that could not be parsed.
func (f *Fields) Skipped() int { return f.skipped }

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
