package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/dlt/dlttest"
	"github.com/five82/dltview/internal/filter"
)

func f1Bytes() []byte {
	return dlttest.Concat(
		dlttest.Message(100, 0, "ECU1", "APP1", "CTX1", dlt.LevelInfo, "hello world"),
		dlttest.Message(101, 500, "ECU1", "APP2", "CTX1", dlt.LevelError, "boom"),
	)
}

func newSession(t *testing.T, files ...[]byte) *Session {
	t.Helper()
	s := New(Options{Workers: 2})
	t.Cleanup(func() { s.Close() })
	dir := t.TempDir()
	for i, data := range files {
		path := filepath.Join(dir, "trace"+string(rune('a'+i))+".dlt")
		require.NoError(t, os.WriteFile(path, data, 0o644))
		require.NoError(t, s.Open(path))
	}
	return s
}

func TestOpen_FirstFileIsFiltered(t *testing.T) {
	s := newSession(t, f1Bytes())

	assert.Equal(t, 1, s.FileCount())
	assert.Equal(t, []int{0, 1}, s.Result())
	assert.Equal(t, 0, s.Selected())
	assert.Equal(t, "Loaded tracea.dlt (2 messages)", s.Status())
}

func TestOpen_Failure(t *testing.T) {
	s := newSession(t)
	err := s.Open(filepath.Join(t.TempDir(), "missing.dlt"))
	require.Error(t, err)
	assert.Contains(t, s.Status(), "Failed to open")
	assert.Equal(t, 0, s.FileCount())
	assert.Nil(t, s.CurrentFile())
}

func TestScenario_FilterAndSearch(t *testing.T) {
	s := newSession(t, f1Bytes())

	s.SetCriteria(filter.Criteria{}.WithAppID("APP2"))
	assert.Equal(t, []int{1}, s.Result())

	s.SetCriteria(filter.Criteria{})
	require.NoError(t, s.Search("hello", true))
	assert.Equal(t, []int{0}, s.SearchState().Hits())

	require.NoError(t, s.Search("ECU1", true))
	assert.Equal(t, []int{0, 1}, s.SearchState().Hits())
	assert.Equal(t, "Found 2 matches for 'ECU1'", s.Status())
}

func TestScenario_TimeRange(t *testing.T) {
	s := newSession(t, f1Bytes())
	at := time.Unix(100, 0).UTC()

	s.SetCriteria(filter.Criteria{}.WithTimeRange(at, at))
	assert.Equal(t, []int{0}, s.Result())
}

func TestScenario_CaseSensitivity(t *testing.T) {
	s := newSession(t, f1Bytes())

	require.NoError(t, s.Search("HELLO", false))
	assert.Equal(t, []int{0}, s.SearchState().Hits())

	require.NoError(t, s.Search("HELLO", true))
	assert.Empty(t, s.SearchState().Hits())
	assert.Equal(t, "No matches found for 'HELLO'", s.Status())

	require.NoError(t, s.ToggleCaseSensitivity())
	assert.False(t, s.CaseSensitive())
	assert.Equal(t, []int{0}, s.SearchState().Hits())
	assert.Equal(t, "HELLO", s.SearchState().Pattern().Source())
}

func TestScenario_FilterThenSearchWraps(t *testing.T) {
	s := newSession(t, f1Bytes())

	s.SetCriteria(filter.Criteria{}.WithAppID("APP1"))
	require.Equal(t, []int{0}, s.Result())

	require.NoError(t, s.Search("world", true))
	assert.Equal(t, []int{0}, s.SearchState().Hits())

	s.NextMatch()
	assert.Equal(t, 0, s.Selected())
	assert.Equal(t, 0, s.SearchState().Cursor())
}

func TestSearch_SelectsFirstHitAndCycles(t *testing.T) {
	var parts [][]byte
	for i := range 10 {
		text := "noise"
		if i%3 == 1 {
			text = "signal"
		}
		parts = append(parts, dlttest.Message(uint32(i), 0, "E", "A", "C", dlt.LevelInfo, text))
	}
	s := newSession(t, dlttest.Concat(parts...))

	require.NoError(t, s.Search("signal", true))
	hits := s.SearchState().Hits()
	require.Equal(t, []int{1, 4, 7}, hits)
	assert.Equal(t, 1, s.Selected())

	for range hits {
		s.NextMatch()
	}
	assert.Equal(t, 1, s.Selected())

	s.PrevMatch()
	assert.Equal(t, 7, s.Selected())
}

func TestSearch_InvalidPatternKeepsState(t *testing.T) {
	s := newSession(t, f1Bytes())
	require.NoError(t, s.Search("boom", true))
	s.MoveTop()

	err := s.Search("([", true)
	require.Error(t, err)
	assert.Contains(t, s.Status(), "Invalid search pattern")
	assert.Equal(t, "boom", s.SearchState().Pattern().Source())
	assert.Equal(t, 0, s.Selected())
}

func TestSearch_EmptyPatternClears(t *testing.T) {
	s := newSession(t, f1Bytes())
	require.NoError(t, s.Search("boom", true))
	require.NoError(t, s.Search("", true))
	assert.Nil(t, s.SearchState())
}

func TestSetCriteria_ClearsSearchAndSelection(t *testing.T) {
	s := newSession(t, f1Bytes())
	require.NoError(t, s.Search("boom", true))
	require.Equal(t, 1, s.Selected())

	s.SetCriteria(filter.Criteria{}.WithContextID("CTX1"))
	assert.Nil(t, s.SearchState())
	assert.Equal(t, 0, s.Selected())
}

func TestApplyQuery(t *testing.T) {
	s := newSession(t, f1Bytes())

	require.NoError(t, s.ApplyQuery("level:error"))
	assert.Equal(t, []int{1}, s.Result())
	assert.Equal(t, "level:error", s.View().Criteria)

	require.Error(t, s.ApplyQuery("level:loud"))
	assert.Equal(t, []int{1}, s.Result())
	assert.Contains(t, s.Status(), "Invalid filter")
}

func TestNavigation_Clamps(t *testing.T) {
	var parts [][]byte
	for i := range 5 {
		parts = append(parts, dlttest.Message(uint32(i), 0, "E", "A", "C", dlt.LevelInfo, "x"))
	}
	s := newSession(t, dlttest.Concat(parts...))

	s.MoveUp()
	assert.Equal(t, 0, s.Selected())
	s.MoveDown()
	s.MoveDown()
	assert.Equal(t, 2, s.Selected())
	s.PageDown(10)
	assert.Equal(t, 4, s.Selected())
	s.MoveDown()
	assert.Equal(t, 4, s.Selected())
	s.PageUp(3)
	assert.Equal(t, 1, s.Selected())
	s.MoveBottom()
	assert.Equal(t, 4, s.Selected())
	s.MoveTop()
	assert.Equal(t, 0, s.Selected())
}

func TestEmptyFile(t *testing.T) {
	s := newSession(t, []byte{})

	assert.Empty(t, s.Result())
	require.NoError(t, s.Search("anything", true))
	_, ok := s.SearchState().Current()
	assert.False(t, ok)

	s.MoveDown()
	s.MoveBottom()
	assert.Equal(t, 0, s.Selected())
	_, ok = s.SelectedRow()
	assert.False(t, ok)
}

func TestNoFiles(t *testing.T) {
	s := New(Options{})
	defer s.Close()

	require.NoError(t, s.Search("x", true))
	assert.Nil(t, s.SearchState())
	s.NextFile()
	s.MoveDown()
	s.NextMatch()
	assert.Nil(t, s.Rows(0, 10))
	assert.False(t, s.View().HasFile())
	assert.Error(t, s.SelectFile(0))
}

func TestFiles_SwitchRefilters(t *testing.T) {
	other := dlttest.Concat(
		dlttest.Message(1, 0, "ECU2", "APP2", "CTX9", dlt.LevelWarning, "a"),
		dlttest.Message(2, 0, "ECU2", "APP2", "CTX9", dlt.LevelWarning, "b"),
		dlttest.Message(3, 0, "ECU2", "APP1", "CTX9", dlt.LevelWarning, "c"),
	)
	s := newSession(t, f1Bytes(), other)
	s.SetCriteria(filter.Criteria{}.WithAppID("APP2"))
	require.NoError(t, s.Search("boom", true))

	assert.Equal(t, 0, s.View().Current)
	assert.Equal(t, []int{1}, s.Result())

	s.NextFile()
	assert.Equal(t, 1, s.View().Current)
	assert.Equal(t, []int{0, 1}, s.Result())
	assert.Nil(t, s.SearchState())

	s.NextFile()
	assert.Equal(t, 0, s.View().Current)
	s.PrevFile()
	assert.Equal(t, 1, s.View().Current)
}

func TestFilterJobs_LatestWins(t *testing.T) {
	s := newSession(t, f1Bytes())
	ctx := context.Background()

	older := s.BeginFilter(filter.Criteria{}.WithAppID("APP1"))
	newer := s.BeginFilter(filter.Criteria{}.WithAppID("APP2"))
	assert.True(t, s.View().Filtering)

	newRes, err := newer.Run(ctx)
	require.NoError(t, err)
	assert.True(t, s.InstallFilter(newer, newRes, nil))

	oldRes, err := older.Run(ctx)
	require.NoError(t, err)
	assert.False(t, s.InstallFilter(older, oldRes, nil))

	assert.Equal(t, []int{1}, s.Result())
	assert.Equal(t, "app:APP2", s.Criteria().String())
	assert.False(t, s.View().Filtering)
}

func TestFilterJobs_FileChangeSupersedes(t *testing.T) {
	s := newSession(t, f1Bytes(), f1Bytes())

	job := s.BeginFilter(filter.Criteria{}.WithAppID("APP2"))
	s.NextFile()
	res, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, s.InstallFilter(job, res, nil))
	assert.Equal(t, []int{0, 1}, s.Result())
}

func TestRowsAndView(t *testing.T) {
	s := newSession(t, f1Bytes())
	require.NoError(t, s.Search("boom", true))

	rows := s.Rows(0, 10)
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Hit)
	assert.True(t, rows[1].Hit)
	assert.True(t, rows[1].Selected)
	assert.Equal(t, "boom", rows[1].Message.Text())
	require.NoError(t, rows[1].Err)

	assert.Nil(t, s.Rows(2, 5))

	v := s.View()
	assert.True(t, v.HasFile())
	assert.Equal(t, "tracea.dlt", v.File().Name)
	assert.Equal(t, 2, v.File().Messages)
	assert.Equal(t, "none", v.File().Compression)
	assert.Equal(t, 2, v.Matches)
	assert.Equal(t, 1, v.Selected)
	require.NotNil(t, v.Search)
	assert.Equal(t, 1, v.Search.Hits)
	assert.Equal(t, ModeNormal, v.Mode)

	s.SetMode(ModeSearch)
	assert.Equal(t, "search", s.View().Mode.String())
}

func TestInitialCriteriaApplyToFirstFile(t *testing.T) {
	path := dlttest.WriteFile(t, f1Bytes())
	s := New(Options{Criteria: filter.Criteria{}.WithLogLevel(dlt.LevelError), IgnoreCase: true})
	defer s.Close()

	require.NoError(t, s.Open(path))
	assert.Equal(t, []int{1}, s.Result())
	assert.False(t, s.CaseSensitive())
}
