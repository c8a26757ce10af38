package search

import (
	"fmt"
	"regexp"

	"github.com/five82/dltview/internal/dlt"
)

// CompileError reports a search pattern that is not a valid regular
// expression.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Pattern is a compiled search expression. It remembers the text it was
// compiled from so the case mode can change without asking for it again.
type Pattern struct {
	source        string
	caseSensitive bool
	re            *regexp.Regexp
}

// Compile compiles source. A case-insensitive pattern is compiled with the
// (?i) flag prepended.
func Compile(source string, caseSensitive bool) (*Pattern, error) {
	expr := source
	if !caseSensitive {
		expr = "(?i)" + source
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &CompileError{Pattern: source, Err: err}
	}
	return &Pattern{source: source, caseSensitive: caseSensitive, re: re}, nil
}

// Source returns the pattern as the user entered it.
func (p *Pattern) Source() string { return p.source }

// CaseSensitive reports the case mode p was compiled with.
func (p *Pattern) CaseSensitive() bool { return p.caseSensitive }

// WithCaseSensitivity recompiles the stored source in the given mode.
func (p *Pattern) WithCaseSensitivity(caseSensitive bool) (*Pattern, error) {
	if caseSensitive == p.caseSensitive {
		return p, nil
	}
	return Compile(p.source, caseSensitive)
}

// Matches reports whether p matches the payload text, the app id, the
// context id or the ECU id of msg.
func (p *Pattern) Matches(msg dlt.Message) bool {
	if msg.HasText && p.re.Match(msg.Payload) {
		return true
	}
	if app, ok := msg.AppID(); ok && p.re.MatchString(app) {
		return true
	}
	if ctx, ok := msg.ContextID(); ok && p.re.MatchString(ctx) {
		return true
	}
	return p.re.MatchString(msg.ECUID())
}

// Locate returns the byte ranges of all matches in s, for highlighting.
func (p *Pattern) Locate(s string) [][]int {
	return p.re.FindAllStringIndex(s, -1)
}
