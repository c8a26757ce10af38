package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/five82/dltview/internal/dlt"
)

// QueryError reports a query string that could not be turned into criteria.
type QueryError struct {
	Token string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid filter %q: %v", e.Token, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ParseQuery parses the filter language used by the command line and the
// filter prompt: whitespace-separated key:value tokens
//
//	app:ID ctx:ID ecu:ID level:NAME type:NAME from:TIME to:TIME
//
// where TIME is RFC 3339 or Unix seconds. An id written as "" matches ids
// that are all NUL. Words without a known key are
// joined with single spaces and compiled as the payload text pattern. A
// from without a to (or the reverse) leaves that end of the range open.
func ParseQuery(query string) (Criteria, error) {
	var (
		c        Criteria
		words    []string
		from, to *time.Time
	)
	for _, tok := range strings.Fields(query) {
		key, value, ok := strings.Cut(tok, ":")
		if !ok || value == "" || !isQueryKey(key) {
			words = append(words, tok)
			continue
		}
		switch strings.ToLower(key) {
		case "app":
			c.AppID = queryID(value)
		case "ctx":
			c.ContextID = queryID(value)
		case "ecu":
			c.ECUID = queryID(value)
		case "level":
			level, err := dlt.ParseLogLevel(value)
			if err != nil {
				return Criteria{}, &QueryError{Token: tok, Err: err}
			}
			c.LogLevel = &level
		case "type":
			mt, err := dlt.ParseMessageType(value)
			if err != nil {
				return Criteria{}, &QueryError{Token: tok, Err: err}
			}
			c.MessageType = &mt
		case "from", "to":
			t, err := parseQueryTime(value)
			if err != nil {
				return Criteria{}, &QueryError{Token: tok, Err: err}
			}
			if strings.EqualFold(key, "from") {
				from = &t
			} else {
				to = &t
			}
		}
	}

	if from != nil || to != nil {
		r := TimeRange{Start: time.Unix(0, 0).UTC(), End: time.Unix(1<<32, 0).UTC()}
		if from != nil {
			r.Start = *from
		}
		if to != nil {
			r.End = *to
		}
		c.TimeRange = &r
	}

	if len(words) > 0 {
		pattern := strings.Join(words, " ")
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Criteria{}, &QueryError{Token: pattern, Err: err}
		}
		c.TextPattern = re
	}
	return c, nil
}

func isQueryKey(key string) bool {
	switch strings.ToLower(key) {
	case "app", "ctx", "ecu", "level", "type", "from", "to":
		return true
	}
	return false
}

func queryID(value string) *string {
	if value == `""` {
		value = ""
	}
	return &value
}

func renderQueryID(id string) string {
	if id == "" {
		return `""`
	}
	return id
}

func parseQueryTime(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or Unix seconds")
	}
	return t.UTC(), nil
}

// String renders c in the query language accepted by ParseQuery.
func (c Criteria) String() string {
	var parts []string
	if c.AppID != nil {
		parts = append(parts, "app:"+renderQueryID(*c.AppID))
	}
	if c.ContextID != nil {
		parts = append(parts, "ctx:"+renderQueryID(*c.ContextID))
	}
	if c.ECUID != nil {
		parts = append(parts, "ecu:"+renderQueryID(*c.ECUID))
	}
	if c.LogLevel != nil {
		parts = append(parts, "level:"+queryName(c.LogLevel.Known(), c.LogLevel.String(), uint8(*c.LogLevel)))
	}
	if c.MessageType != nil {
		parts = append(parts, "type:"+queryName(c.MessageType.Known(), c.MessageType.String(), uint8(*c.MessageType)))
	}
	if c.TimeRange != nil {
		parts = append(parts,
			"from:"+c.TimeRange.Start.UTC().Format(time.RFC3339Nano),
			"to:"+c.TimeRange.End.UTC().Format(time.RFC3339Nano))
	}
	if c.TextPattern != nil {
		parts = append(parts, c.TextPattern.String())
	}
	return strings.Join(parts, " ")
}

func queryName(known bool, name string, value uint8) string {
	if known {
		return strings.ToLower(name)
	}
	return strconv.Itoa(int(value))
}
