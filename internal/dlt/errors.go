package dlt

import "fmt"

// FormatError reports a record the codec could not decode.
type FormatError struct {
	// Offset is the byte position of the problem. Parse reports it relative
	// to the record; At rebases it onto the file.
	Offset int64
	// Index is the message index, or -1 when the record was parsed on its own.
	Index  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid DLT message %d at offset %d: %s", e.Index, e.Offset, e.Reason)
	}
	return fmt.Sprintf("invalid DLT record at offset %d: %s", e.Offset, e.Reason)
}

// At returns a copy of e positioned at message index within the file, with
// the offset rebased by the record's file offset.
func (e *FormatError) At(index int, recordOffset int64) *FormatError {
	return &FormatError{
		Offset: recordOffset + e.Offset,
		Index:  index,
		Reason: e.Reason,
	}
}

func formatErrorf(offset int, format string, args ...any) *FormatError {
	return &FormatError{
		Offset: int64(offset),
		Index:  -1,
		Reason: fmt.Sprintf(format, args...),
	}
}
