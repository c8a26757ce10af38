package dlt

import "strings"

const hexDigits = "0123456789abcdef"

// HexDump renders b as a canonical dump: 16 bytes per row with an %08x
// offset, an extra space after the eighth byte, and an ASCII gutter where
// non-printable bytes show as '.'. Rows are separated by newlines.
func HexDump(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow((len(b)/16 + 1) * 78)

	for row := 0; row*16 < len(b); row++ {
		chunk := b[row*16 : min(len(b), row*16+16)]
		if row > 0 {
			sb.WriteByte('\n')
		}
		writeHex32(&sb, uint32(row*16))
		sb.WriteString("  ")

		for j, c := range chunk {
			if j == 8 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0f])
			sb.WriteByte(' ')
		}
		if len(chunk) < 16 {
			sb.WriteString(strings.Repeat("   ", 16-len(chunk)))
			if len(chunk) < 8 {
				sb.WriteByte(' ')
			}
		}

		sb.WriteString(" |")
		for _, c := range chunk {
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('|')
	}
	return sb.String()
}

func writeHex32(sb *strings.Builder, v uint32) {
	for shift := 28; shift >= 0; shift -= 4 {
		sb.WriteByte(hexDigits[(v>>uint(shift))&0x0f])
	}
}
