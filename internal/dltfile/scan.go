package dltfile

import "github.com/five82/dltview/internal/dlt"

// ScanOffsets returns the start offset of every record in data, in
// ascending order. It trusts a record's length field only when the field is
// non-zero and stays inside data; otherwise it steps one byte and keeps
// looking for the storage magic, which lets it resynchronise past garbage.
// A final record whose length runs past the end of data is dropped.
func ScanOffsets(data []byte) []int64 {
	var offsets []int64
	n := len(data)
	pos := 0
	for n-pos >= dlt.StorageHeaderSize {
		if !dlt.HasMagic(data[pos:]) {
			pos++
			continue
		}
		offsets = append(offsets, int64(pos))

		if length, ok := dlt.RecordLength(data[pos:]); ok && length > 0 && pos+length <= n {
			pos += length
		} else {
			pos++
		}
	}
	if len(offsets) > 0 && truncated(data[offsets[len(offsets)-1]:]) {
		offsets = offsets[:len(offsets)-1]
	}
	return offsets
}

// truncated reports whether the record at rec[0] is cut off by the end of
// the slice. A zero length carries no size and never counts as truncated.
func truncated(rec []byte) bool {
	length, ok := dlt.RecordLength(rec)
	if !ok {
		return true
	}
	return length > len(rec)
}

// validOffsets reports whether offsets could have come from ScanOffsets
// over data: ascending, in bounds, each at a storage magic.
func validOffsets(data []byte, offsets []int64) bool {
	prev := int64(-1)
	for _, off := range offsets {
		if off <= prev || off > int64(len(data))-dlt.StorageHeaderSize {
			return false
		}
		if !dlt.HasMagic(data[off:]) {
			return false
		}
		prev = off
	}
	return true
}
