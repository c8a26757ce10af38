// Package dlttest builds DLT records for tests.
package dlttest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/dltview/internal/dlt"
)

// Record describes a record to encode. The zero value encodes a log message
// with an extended header, protocol version 1 and an empty payload.
type Record struct {
	Seconds      uint32
	Microseconds uint32
	ECU          string
	App          string
	Context      string
	Level        dlt.LogLevel
	Type         dlt.MessageType
	Counter      uint8
	NoExtended   bool
	Payload      []byte
}

// Bytes encodes r. The length field covers the whole record.
func (r Record) Bytes() []byte {
	size := dlt.StorageHeaderSize + dlt.StandardHeaderSize + len(r.Payload)
	if !r.NoExtended {
		size += dlt.ExtendedHeaderSize
	}
	buf := make([]byte, 0, size)

	buf = append(buf, dlt.Magic[:]...)
	buf = binary.BigEndian.AppendUint32(buf, r.Seconds)
	buf = binary.BigEndian.AppendUint32(buf, r.Microseconds)
	buf = appendID(buf, r.ECU)

	headerType := uint8(1)<<5 | (uint8(r.Type)&0x07)<<1
	if !r.NoExtended {
		headerType |= 0x01
	}
	buf = append(buf, headerType, r.Counter)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(size))

	if !r.NoExtended {
		buf = append(buf, (uint8(r.Level)&0x07)<<4, 0)
		buf = appendID(buf, r.App)
		buf = appendID(buf, r.Context)
	}
	return append(buf, r.Payload...)
}

// Message encodes a log message with a text payload.
func Message(seconds, micros uint32, ecu, app, ctx string, level dlt.LogLevel, text string) []byte {
	return Record{
		Seconds:      seconds,
		Microseconds: micros,
		ECU:          ecu,
		App:          app,
		Context:      ctx,
		Level:        level,
		Payload:      []byte(text),
	}.Bytes()
}

// Concat joins encoded records and filler bytes.
func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// WriteFile writes data to a file in a fresh temp directory and returns its path.
func WriteFile(tb testing.TB, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "trace.dlt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
	return path
}

func appendID(buf []byte, id string) []byte {
	var field [4]byte
	copy(field[:], id)
	return append(buf, field[:]...)
}
