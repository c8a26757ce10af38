package session

import (
	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/dltfile"
)

// FileInfo describes an open file.
type FileInfo struct {
	Name        string
	Path        string
	Messages    int
	Size        int64
	SourceSize  int64
	Compression string
	IndexCached bool
}

// SearchInfo describes the active search.
type SearchInfo struct {
	Pattern       string
	CaseSensitive bool
	Hits          int
	// Cursor is the position within the hits.
	Cursor int
}

// View is a read-only snapshot of what the UI renders.
type View struct {
	Files []FileInfo
	// Current indexes Files; it is meaningless when Files is empty.
	Current   int
	Criteria  string
	Filtering bool
	// Matches is the length of the filter result.
	Matches  int
	Skipped  int
	Selected int
	// Search is nil when no search is active.
	Search        *SearchInfo
	CaseSensitive bool
	Status        string
	Mode          Mode
}

// HasFile reports whether any file is open.
func (v View) HasFile() bool { return len(v.Files) > 0 }

// File returns the current file's description.
func (v View) File() FileInfo {
	if len(v.Files) == 0 {
		return FileInfo{}
	}
	return v.Files[v.Current]
}

// View snapshots the session.
func (s *Session) View() View {
	v := View{
		Current:       s.current,
		Criteria:      s.criteria.String(),
		Filtering:     s.Filtering(),
		Matches:       len(s.result.Positions),
		Skipped:       s.result.Skipped,
		Selected:      s.selected,
		CaseSensitive: s.caseSensitive,
		Status:        s.status,
		Mode:          s.mode,
	}
	for _, f := range s.files {
		v.Files = append(v.Files, describe(f.file))
	}
	if s.search != nil {
		v.Search = &SearchInfo{
			Pattern:       s.search.Pattern().Source(),
			CaseSensitive: s.search.Pattern().CaseSensitive(),
			Hits:          len(s.search.Hits()),
			Cursor:        s.search.Cursor(),
		}
	}
	return v
}

func describe(f *dltfile.File) FileInfo {
	return FileInfo{
		Name:        f.Name(),
		Path:        f.Path(),
		Messages:    f.Count(),
		Size:        f.Size(),
		SourceSize:  f.SourceSize(),
		Compression: f.Compression().String(),
		IndexCached: f.IndexCached(),
	}
}

// Row is one line of the filtered message list.
type Row struct {
	// Position indexes the filter result; Index is the message index.
	Position int
	Index    int
	Message  dlt.Message
	// Err is set when the message could not be parsed.
	Err      error
	Hit      bool
	Selected bool
}

// Rows returns up to n rows of the filter result starting at start.
func (s *Session) Rows(start, n int) []Row {
	if len(s.files) == 0 || start < 0 || n <= 0 {
		return nil
	}
	file := s.files[s.current].file
	end := min(start+n, len(s.result.Positions))
	if start >= end {
		return nil
	}
	rows := make([]Row, 0, end-start)
	for k := start; k < end; k++ {
		idx := s.result.Positions[k]
		msg, err := file.Message(idx)
		rows = append(rows, Row{
			Position: k,
			Index:    idx,
			Message:  msg,
			Err:      err,
			Hit:      s.search != nil && s.search.IsHit(k),
			Selected: k == s.selected,
		})
	}
	return rows
}

// SelectedRow returns the row under the selection cursor.
func (s *Session) SelectedRow() (Row, bool) {
	rows := s.Rows(s.selected, 1)
	if len(rows) == 0 {
		return Row{}, false
	}
	return rows[0], true
}
