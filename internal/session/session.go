package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/dltview/internal/dltfile"
	"github.com/five82/dltview/internal/filter"
	"github.com/five82/dltview/internal/index"
	"github.com/five82/dltview/internal/metrics"
	"github.com/five82/dltview/internal/search"
)

// Mode is the input mode the UI is in.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFilter
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeFilter:
		return "filter"
	default:
		return "normal"
	}
}

// Options configures a Session.
type Options struct {
	// Open is passed to dltfile.Open by Session.Open.
	Open dltfile.Options
	// Workers bounds filter and search fan-out. Zero means GOMAXPROCS.
	Workers int
	// Criteria is installed before the first file opens.
	Criteria filter.Criteria
	// IgnoreCase starts searches case-insensitive.
	IgnoreCase bool
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

type openFile struct {
	file   *dltfile.File
	fields *index.Fields
}

// Session holds the open files and everything the user sees of them. It
// is not safe for concurrent use; one goroutine owns it and background work
// hands results back through BeginFilter and InstallFilter.
type Session struct {
	files   []openFile
	current int

	criteria filter.Criteria
	result   filter.Result
	selected int

	search        *search.State
	caseSensitive bool

	status string
	mode   Mode

	// filterGen counts issued filter jobs; installedGen is the generation
	// of the result on display.
	filterGen    uint64
	installedGen uint64

	filters  *filter.Engine
	searches *search.Engine
	openOpts dltfile.Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// New creates an empty session.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	openOpts := opts.Open
	if openOpts.Logger == nil {
		openOpts.Logger = logger
	}
	if openOpts.Metrics == nil {
		openOpts.Metrics = opts.Metrics
	}
	if openOpts.Workers == 0 {
		openOpts.Workers = opts.Workers
	}
	return &Session{
		criteria:      opts.Criteria,
		caseSensitive: !opts.IgnoreCase,
		filters:       filter.NewEngine(filter.Options{Workers: opts.Workers, Logger: logger, Metrics: opts.Metrics}),
		searches:      search.NewEngine(search.Options{Workers: opts.Workers, Logger: logger, Metrics: opts.Metrics}),
		openOpts:      openOpts,
		logger:        logger,
		metrics:       opts.Metrics,
	}
}

// Load opens path and builds its secondary index without touching any
// session. It is safe to call from a background goroutine.
func Load(path string, opts dltfile.Options) (*dltfile.File, *index.Fields, error) {
	f, err := dltfile.Open(path, opts)
	if err != nil {
		return nil, nil, err
	}
	fields, err := index.Build(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("index fields of %s: %w", path, err)
	}
	if n := fields.Skipped(); n > 0 {
		opts.Metrics.RecordSkipped(metrics.StageIndex, n)
		if opts.Logger != nil {
			opts.Logger.Warn("unparseable records", zap.String("path", f.Path()), zap.Int("count", n))
		}
	}
	return f, fields, nil
}

// Open loads path and adds it to the session.
func (s *Session) Open(path string) error {
	f, fields, err := Load(path, s.openOpts)
	if err != nil {
		s.status = fmt.Sprintf("Failed to open %s: %v", path, err)
		s.logger.Error("open failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.AddFile(f, fields)
	return nil
}

// AddFile appends an opened file. The first file becomes current and is
// filtered immediately. The session takes ownership of f.
func (s *Session) AddFile(f *dltfile.File, fields *index.Fields) {
	s.files = append(s.files, openFile{file: f, fields: fields})
	s.metrics.UpdateOpenFiles(len(s.files))
	s.status = fmt.Sprintf("Loaded %s (%d messages)", f.Name(), f.Count())
	if len(s.files) == 1 {
		s.current = 0
		s.recompute()
	}
}

// FileCount returns the number of open files.
func (s *Session) FileCount() int { return len(s.files) }

// CurrentFile returns the file on display, or nil before any file opens.
func (s *Session) CurrentFile() *dltfile.File {
	if len(s.files) == 0 {
		return nil
	}
	return s.files[s.current].file
}

// CurrentFields returns the secondary index of the current file.
func (s *Session) CurrentFields() *index.Fields {
	if len(s.files) == 0 {
		return nil
	}
	return s.files[s.current].fields
}

// SelectFile makes file i current and refilters it.
func (s *Session) SelectFile(i int) error {
	if i < 0 || i >= len(s.files) {
		return fmt.Errorf("file %d of %d: %w", i, len(s.files), dltfile.ErrNotFound)
	}
	s.current = i
	s.recompute()
	return nil
}

// NextFile cycles forward through the open files.
func (s *Session) NextFile() {
	if len(s.files) > 1 {
		_ = s.SelectFile((s.current + 1) % len(s.files))
	}
}

// PrevFile cycles backward through the open files.
func (s *Session) PrevFile() {
	if len(s.files) > 1 {
		_ = s.SelectFile((s.current - 1 + len(s.files)) % len(s.files))
	}
}

// Criteria returns the installed filter criteria.
func (s *Session) Criteria() filter.Criteria { return s.criteria }

// SetCriteria installs c and refilters synchronously.
func (s *Session) SetCriteria(c filter.Criteria) {
	s.criteria = c
	s.recompute()
}

// ApplyQuery parses q and installs the result. On a parse error the
// session is unchanged apart from the status line.
func (s *Session) ApplyQuery(q string) error {
	c, err := filter.ParseQuery(q)
	if err != nil {
		s.status = fmt.Sprintf("Invalid filter: %v", err)
		return err
	}
	s.SetCriteria(c)
	return nil
}

// recompute refilters the current file with the installed criteria,
// invalidating any filter job still in flight.
func (s *Session) recompute() {
	s.filterGen++
	s.installedGen = s.filterGen

	var res filter.Result
	if len(s.files) > 0 {
		cur := s.files[s.current]
		var err error
		res, err = s.filters.Apply(context.Background(), cur.file, cur.fields, s.criteria)
		if err != nil {
			s.status = fmt.Sprintf("Filter failed: %v", err)
			s.logger.Error("filter failed", zap.Error(err))
		}
	}
	s.installResult(res)
}

func (s *Session) installResult(res filter.Result) {
	if res.Positions == nil {
		res.Positions = []int{}
	}
	s.result = res
	s.selected = 0
	s.search = nil
	if res.Skipped > 0 {
		s.status = fmt.Sprintf("%d unparseable messages skipped", res.Skipped)
	}
}

// Result returns the positions of the current filter result.
func (s *Session) Result() []int { return s.result.Positions }

// Selected returns the selection cursor, an index into Result.
func (s *Session) Selected() int { return s.selected }

// Status returns the status line.
func (s *Session) Status() string { return s.status }

// SetStatus replaces the status line.
func (s *Session) SetStatus(msg string) { s.status = msg }

// Mode returns the input mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode changes the input mode.
func (s *Session) SetMode(m Mode) { s.mode = m }

// Close releases every open file.
func (s *Session) Close() error {
	var errs []error
	for _, f := range s.files {
		if err := f.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.files = nil
	s.current = 0
	s.result = filter.Result{Positions: []int{}}
	s.search = nil
	s.metrics.UpdateOpenFiles(0)
	return errors.Join(errs...)
}
