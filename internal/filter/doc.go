// Package filter selects the messages of a file that satisfy a Criteria.
//
// Criteria is a plain value of optional constraints combined with AND. The
// Engine splits the candidate positions into contiguous chunks, evaluates
// them concurrently against the immutable mapping, and concatenates the
// per-chunk matches in chunk order so the result stays ascending.
//
// ParseQuery turns the prompt syntax ("app:APP1 level:error timeout") into
// a Criteria, and Criteria.String renders it back.
package filter
