package filter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/dlt/dlttest"
	"github.com/five82/dltview/internal/index"
)

// memSource serves pre-encoded records; nil entries fail to parse.
type memSource [][]byte

func (s memSource) Count() int { return len(s) }

func (s memSource) View(i int) (dlt.Message, error) {
	if s[i] == nil {
		return dlt.Message{}, errors.New("unparseable")
	}
	return dlt.ParseView(s[i])
}

func f1() memSource {
	return memSource{
		dlttest.Message(100, 0, "ECU1", "APP1", "CTX1", dlt.LevelInfo, "hello world"),
		dlttest.Message(101, 500, "ECU1", "APP2", "CTX1", dlt.LevelError, "boom"),
	}
}

func parse(t *testing.T, raw []byte) dlt.Message {
	t.Helper()
	msg, err := dlt.Parse(raw)
	require.NoError(t, err)
	return msg
}

func TestCriteria_Matches(t *testing.T) {
	info := parse(t, dlttest.Message(100, 0, "ECU1", "APP1", "CTX1", dlt.LevelInfo, "hello world"))
	bare := parse(t, dlttest.Record{Seconds: 100, ECU: "ECU1", NoExtended: true, Payload: []byte("hello")}.Bytes())
	binary := parse(t, dlttest.Record{Seconds: 100, ECU: "ECU1", App: "APP1", Payload: []byte{0x00, 'h'}}.Bytes())
	nulIDs := parse(t, dlttest.Message(100, 0, "", "", "", dlt.LevelInfo, "anonymous"))
	at100 := time.Unix(100, 0).UTC()

	tests := []struct {
		name string
		c    Criteria
		msg  dlt.Message
		want bool
	}{
		{"empty accepts", Criteria{}, info, true},
		{"app match", Criteria{}.WithAppID("APP1"), info, true},
		{"app mismatch", Criteria{}.WithAppID("APP2"), info, false},
		{"app needs extended header", Criteria{}.WithAppID("APP1"), bare, false},
		{"ctx match", Criteria{}.WithContextID("CTX1"), info, true},
		{"ctx needs extended header", Criteria{}.WithContextID("CTX1"), bare, false},
		{"ecu match without extended header", Criteria{}.WithECUID("ECU1"), bare, true},
		{"ecu mismatch", Criteria{}.WithECUID("ECU2"), info, false},
		{"level match", Criteria{}.WithLogLevel(dlt.LevelInfo), info, true},
		{"level is equality", Criteria{}.WithLogLevel(dlt.LevelError), info, false},
		{"level needs extended header", Criteria{}.WithLogLevel(dlt.LevelInfo), bare, false},
		{"type match", Criteria{}.WithMessageType(dlt.MessageLog), info, true},
		{"type mismatch", Criteria{}.WithMessageType(dlt.MessageControl), info, false},
		{"time range closed", Criteria{}.WithTimeRange(at100, at100), info, true},
		{"time range before", Criteria{}.WithTimeRange(at100.Add(time.Nanosecond), at100.Add(time.Hour)), info, false},
		{"text match", Criteria{}.WithTextPattern(regexp.MustCompile("wor")), info, true},
		{"text mismatch", Criteria{}.WithTextPattern(regexp.MustCompile("^world")), info, false},
		{"text needs printable payload", Criteria{}.WithTextPattern(regexp.MustCompile("h")), binary, false},
		{"conjunction", Criteria{}.WithAppID("APP1").WithLogLevel(dlt.LevelInfo).WithTextPattern(regexp.MustCompile("hello")), info, true},
		{"empty app id matches NUL id", Criteria{}.WithAppID(""), nulIDs, true},
		{"empty app id rejects named app", Criteria{}.WithAppID(""), info, false},
		{"empty ecu id matches NUL id", Criteria{}.WithECUID(""), nulIDs, true},
		{"conjunction fails on one", Criteria{}.WithAppID("APP1").WithLogLevel(dlt.LevelDebug), info, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Matches(tt.msg))
		})
	}
}

func TestCriteria_WithDoesNotMutate(t *testing.T) {
	base := Criteria{}.WithAppID("APP1")
	derived := base.WithLogLevel(dlt.LevelError)

	assert.Nil(t, base.LogLevel)
	require.NotNil(t, derived.LogLevel)
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, base.IsEmpty())
}

func TestEngine_F1Scenarios(t *testing.T) {
	src := f1()
	fields, err := index.Build(src)
	require.NoError(t, err)
	engine := NewEngine(Options{Workers: 2})
	at100 := time.Unix(100, 0).UTC()

	tests := []struct {
		name string
		c    Criteria
		want []int
	}{
		{"empty criteria", Criteria{}, []int{0, 1}},
		{"app APP2", Criteria{}.WithAppID("APP2"), []int{1}},
		{"second aligned time range", Criteria{}.WithTimeRange(at100, at100), []int{0}},
		{"unknown app", Criteria{}.WithAppID("NOPE"), []int{}},
	}

	for _, tt := range tests {
		for _, withIndex := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/index=%v", tt.name, withIndex), func(t *testing.T) {
				var f *index.Fields
				if withIndex {
					f = fields
				}
				res, err := engine.Apply(context.Background(), src, f, tt.c)
				require.NoError(t, err)
				assert.Equal(t, tt.want, res.Positions)
			})
		}
	}
}

func TestEngine_MatchesSequentialEvaluation(t *testing.T) {
	apps := []string{"APP1", "APP2", "APP3"}
	levels := []dlt.LogLevel{dlt.LevelError, dlt.LevelInfo, dlt.LevelDebug, dlt.LevelWarning}
	var src memSource
	for i := range 5000 {
		if i%97 == 0 {
			src = append(src, nil)
			continue
		}
		text := "tick"
		if i%13 == 0 {
			text = "timeout waiting for bus"
		}
		src = append(src, dlttest.Message(uint32(i), 0, "ECU1", apps[i%len(apps)], "CTX1", levels[i%len(levels)], text))
	}
	fields, err := index.Build(src)
	require.NoError(t, err)

	criteria := []Criteria{
		Criteria{}.WithAppID("APP2"),
		Criteria{}.WithLogLevel(dlt.LevelError),
		Criteria{}.WithAppID("APP3").WithLogLevel(dlt.LevelInfo),
		Criteria{}.WithTextPattern(regexp.MustCompile("timeout")),
		Criteria{}.WithTimeRange(time.Unix(1000, 0), time.Unix(1999, 999_999_000)),
	}

	engine := NewEngine(Options{Workers: 4})
	for _, c := range criteria {
		t.Run(c.String(), func(t *testing.T) {
			want := []int{}
			for i := range src.Count() {
				if msg, err := src.View(i); err == nil && c.Matches(msg) {
					want = append(want, i)
				}
			}

			full, err := engine.Apply(context.Background(), src, nil, c)
			require.NoError(t, err)
			assert.Equal(t, want, full.Positions)
			assert.Equal(t, 52, full.Skipped)

			pruned, err := engine.Apply(context.Background(), src, fields, c)
			require.NoError(t, err)
			assert.Equal(t, want, pruned.Positions)
		})
	}
}

func TestEngine_EmptySource(t *testing.T) {
	engine := NewEngine(Options{})

	res, err := engine.Apply(context.Background(), memSource{}, nil, Criteria{})
	require.NoError(t, err)
	assert.Empty(t, res.Positions)

	res, err = engine.Apply(context.Background(), memSource{}, nil, Criteria{}.WithAppID("APP1"))
	require.NoError(t, err)
	assert.Empty(t, res.Positions)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(Options{}).Apply(ctx, f1(), nil, Criteria{}.WithAppID("APP1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAll(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, All(3))
	assert.Empty(t, All(0))
}

func TestEngine_EmptyIDSelectsNULIDs(t *testing.T) {
	src := memSource{
		dlttest.Message(100, 0, "ECU1", "APP1", "CTX1", dlt.LevelInfo, "named"),
		dlttest.Message(101, 0, "ECU1", "", "CTX1", dlt.LevelInfo, "anonymous"),
	}
	fields, err := index.Build(src)
	require.NoError(t, err)
	engine := NewEngine(Options{Workers: 2})

	for _, f := range []*index.Fields{nil, fields} {
		res, err := engine.Apply(context.Background(), src, f, Criteria{}.WithAppID(""))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, res.Positions)
	}
}
