package dlt

import (
	"encoding/binary"
	"strings"
	"time"
)

// Fixed header sizes of a DLT record.
const (
	StorageHeaderSize  = 16
	StandardHeaderSize = 4
	ExtendedHeaderSize = 10

	// MinRecordSize is the smallest prefix that carries the length field.
	MinRecordSize = StorageHeaderSize + StandardHeaderSize

	lengthFieldOffset = StorageHeaderSize + 2
)

// Magic is the storage header pattern that starts every record.
var Magic = [4]byte{'D', 'L', 'T', 0x01}

var epoch = time.Unix(0, 0).UTC()

// HasMagic reports whether b starts with the storage header pattern.
func HasMagic(b []byte) bool {
	return len(b) >= 4 && b[0] == Magic[0] && b[1] == Magic[1] && b[2] == Magic[2] && b[3] == Magic[3]
}

// RecordLength reads the standard header length field of the record that
// starts at b[0]. ok is false when b is too short to hold the field.
func RecordLength(b []byte) (length int, ok bool) {
	if len(b) < MinRecordSize {
		return 0, false
	}
	return int(binary.LittleEndian.Uint16(b[lengthFieldOffset:])), true
}

// StorageHeader is the 16-byte prefix written by the logger when a message is
// stored to disk. Its integer fields are big-endian on the wire.
type StorageHeader struct {
	Seconds      uint32
	Microseconds uint32
	ECUID        [4]byte
}

// Timestamp returns the storage time in UTC. Pairs that cannot name a valid
// instant collapse to the Unix epoch.
func (h StorageHeader) Timestamp() time.Time {
	if h.Microseconds > 999_999 {
		return epoch
	}
	return time.Unix(int64(h.Seconds), int64(h.Microseconds)*int64(time.Microsecond)).UTC()
}

// ECU returns the ECU id with trailing NULs removed.
func (h StorageHeader) ECU() string {
	return idString(h.ECUID)
}

// StandardHeader is the 4-byte header present on every message. The length
// field is little-endian and counts the whole record from the first storage
// header byte.
type StandardHeader struct {
	HeaderType uint8
	Counter    uint8
	Length     uint16
}

// UseExtendedHeader reports whether an extended header follows.
func (h StandardHeader) UseExtendedHeader() bool {
	return h.HeaderType&0x01 != 0
}

// MessageType decodes bits 1..3 of the header type.
func (h StandardHeader) MessageType() MessageType {
	return MessageType((h.HeaderType >> 1) & 0x07)
}

// Version decodes the protocol version from bits 5..7.
func (h StandardHeader) Version() uint8 {
	return (h.HeaderType >> 5) & 0x07
}

// ExtendedHeader carries the log level and the application/context ids.
type ExtendedHeader struct {
	MessageInfo   uint8
	ArgumentCount uint8
	AppID         [4]byte
	ContextID     [4]byte
}

// LogLevel decodes bits 4..6 of the message info byte.
func (h ExtendedHeader) LogLevel() LogLevel {
	return LogLevel((h.MessageInfo >> 4) & 0x07)
}

// App returns the application id with trailing NULs removed.
func (h ExtendedHeader) App() string {
	return idString(h.AppID)
}

// Context returns the context id with trailing NULs removed.
func (h ExtendedHeader) Context() string {
	return idString(h.ContextID)
}

func idString(id [4]byte) string {
	end := len(id)
	for end > 0 && id[end-1] == 0 {
		end--
	}
	return strings.ToValidUTF8(string(id[:end]), "\uFFFD")
}
