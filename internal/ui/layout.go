package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the date is dropped
	// from the time column.
	LayoutCompactWidth = 110

	// LayoutTypeWidth is the minimum width to show the message type column.
	LayoutTypeWidth = 130
)

// Vertical layout.
const (
	// chromeLines counts the header, command bar and status line.
	chromeLines = 3

	// detailMinLines is the smallest detail pane worth showing.
	detailMinLines = 6

	// minListLines keeps at least this many list rows visible.
	minListLines = 3
)

// List column widths, in cells.
const (
	colIndexWidth     = 8
	colTimeWidth      = 26
	colTimeShortWidth = 15
	colIDWidth        = 4
	colLevelWidth     = 3
	colTypeWidth      = 13
)

const (
	timeLayout      = "2006-01-02 15:04:05.000000"
	timeShortLayout = "15:04:05.000000"
)

// DefaultTickRate is the loader poll interval when none is configured.
const DefaultTickRate = 250 * time.Millisecond
