package filter

import (
	"regexp"
	"time"

	"github.com/five82/dltview/internal/dlt"
)

// TimeRange is a closed interval of storage timestamps.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within [Start, End].
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Criteria is a conjunction of optional constraints. The zero value
// accepts every message. Criteria values are not mutated once built; the
// With methods return modified copies.
//
// A nil id leaves that field unconstrained. A pointer to "" matches ids
// that are all NUL.
type Criteria struct {
	AppID       *string
	ContextID   *string
	ECUID       *string
	LogLevel    *dlt.LogLevel
	MessageType *dlt.MessageType
	TimeRange   *TimeRange
	TextPattern *regexp.Regexp
}

// IsEmpty reports whether c has no constraints.
func (c Criteria) IsEmpty() bool {
	return c.AppID == nil &&
		c.ContextID == nil &&
		c.ECUID == nil &&
		c.LogLevel == nil &&
		c.MessageType == nil &&
		c.TimeRange == nil &&
		c.TextPattern == nil
}

// Matches evaluates c against msg. App id, context id and log level
// constraints reject messages without an extended header; a text pattern
// rejects messages whose payload is not printable text.
func (c Criteria) Matches(msg dlt.Message) bool {
	if c.AppID != nil {
		if app, ok := msg.AppID(); !ok || app != *c.AppID {
			return false
		}
	}
	if c.ContextID != nil {
		if ctx, ok := msg.ContextID(); !ok || ctx != *c.ContextID {
			return false
		}
	}
	if c.ECUID != nil && msg.ECUID() != *c.ECUID {
		return false
	}
	if c.LogLevel != nil {
		if level, ok := msg.LogLevel(); !ok || level != *c.LogLevel {
			return false
		}
	}
	if c.MessageType != nil && msg.MessageType() != *c.MessageType {
		return false
	}
	if c.TimeRange != nil && !c.TimeRange.Contains(msg.Timestamp()) {
		return false
	}
	if c.TextPattern != nil {
		if !msg.HasText || !c.TextPattern.Match(msg.Payload) {
			return false
		}
	}
	return true
}

func (c Criteria) WithAppID(id string) Criteria {
	c.AppID = &id
	return c
}

func (c Criteria) WithContextID(id string) Criteria {
	c.ContextID = &id
	return c
}

func (c Criteria) WithECUID(id string) Criteria {
	c.ECUID = &id
	return c
}

func (c Criteria) WithLogLevel(level dlt.LogLevel) Criteria {
	c.LogLevel = &level
	return c
}

func (c Criteria) WithMessageType(t dlt.MessageType) Criteria {
	c.MessageType = &t
	return c
}

func (c Criteria) WithTimeRange(start, end time.Time) Criteria {
	c.TimeRange = &TimeRange{Start: start, End: end}
	return c
}

// WithTextPattern sets the payload pattern; nil removes it.
func (c Criteria) WithTextPattern(re *regexp.Regexp) Criteria {
	c.TextPattern = re
	return c
}
