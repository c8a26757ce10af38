package session

import (
	"context"

	"github.com/five82/dltview/internal/dltfile"
	"github.com/five82/dltview/internal/filter"
	"github.com/five82/dltview/internal/index"
)

// FilterJob is a filter computation detached from the session so it can
// run on another goroutine. It only references immutable inputs.
type FilterJob struct {
	gen      uint64
	file     *dltfile.File
	fields   *index.Fields
	criteria filter.Criteria
	engine   *filter.Engine
}

// Criteria returns the criteria the job evaluates.
func (j FilterJob) Criteria() filter.Criteria { return j.criteria }

// Run evaluates the job. A job with no file yields an empty result.
func (j FilterJob) Run(ctx context.Context) (filter.Result, error) {
	if j.file == nil {
		return filter.Result{Positions: []int{}}, nil
	}
	return j.engine.Apply(ctx, j.file, j.fields, j.criteria)
}

// BeginFilter issues a job for c over the current file. Issuing a job
// supersedes every job issued before it.
func (s *Session) BeginFilter(c filter.Criteria) FilterJob {
	s.filterGen++
	job := FilterJob{gen: s.filterGen, criteria: c, engine: s.filters}
	if len(s.files) > 0 {
		job.file = s.files[s.current].file
		job.fields = s.files[s.current].fields
	}
	s.status = "Filtering..."
	return job
}

// InstallFilter installs the outcome of job if no newer job or file change
// has happened since it was issued. It reports whether it was installed.
func (s *Session) InstallFilter(job FilterJob, res filter.Result, err error) bool {
	if job.gen != s.filterGen {
		return false
	}
	s.installedGen = job.gen
	if err != nil {
		s.status = "Filter failed: " + err.Error()
		return true
	}
	s.criteria = job.criteria
	s.status = ""
	s.installResult(res)
	return true
}

// Filtering reports whether a filter job is outstanding.
func (s *Session) Filtering() bool { return s.installedGen != s.filterGen }
