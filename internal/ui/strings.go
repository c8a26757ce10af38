package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens s to limit cells, adding an ellipsis if needed.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= limit {
		return s
	}
	if limit <= 3 {
		return ansi.Truncate(s, limit, "")
	}
	return ansi.Truncate(s, limit, "...")
}

// truncateMiddle shortens a path by dropping characters from the middle,
// keeping the file name's tail visible.
func truncateMiddle(value string, limit int) string {
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	ellipsis := []rune("…")
	if limit <= len(ellipsis)+2 {
		return string(runes[:limit])
	}
	keep := limit - len(ellipsis)
	prefix := keep / 3
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

var lineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// singleLine folds line breaks and tabs so a payload fits one list row.
func singleLine(s string) string {
	return lineFlattener.Replace(s)
}
