package dlt

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Message is one decoded DLT record.
type Message struct {
	Storage  StorageHeader
	Standard StandardHeader
	// Extended is meaningful only when HasExtended reports true.
	Extended ExtendedHeader
	Payload  []byte
	// HasText is set when every payload byte is printable ASCII or tab,
	// newline, carriage return.
	HasText bool
}

// Parse decodes the record at the start of data. The returned message owns
// its payload.
func Parse(data []byte) (Message, error) {
	m, err := ParseView(data)
	if err != nil {
		return Message{}, err
	}
	m.Payload = bytes.Clone(m.Payload)
	return m, nil
}

// ParseView decodes like Parse but the payload aliases data. The message is
// only valid while data is.
func ParseView(data []byte) (Message, error) {
	if len(data) < StorageHeaderSize {
		return Message{}, formatErrorf(0, "storage header needs %d bytes, have %d", StorageHeaderSize, len(data))
	}
	if !HasMagic(data) {
		return Message{}, formatErrorf(0, "missing storage pattern")
	}

	var m Message
	m.Storage.Seconds = binary.BigEndian.Uint32(data[4:8])
	m.Storage.Microseconds = binary.BigEndian.Uint32(data[8:12])
	copy(m.Storage.ECUID[:], data[12:16])

	pos := StorageHeaderSize
	if len(data) < pos+StandardHeaderSize {
		return Message{}, formatErrorf(pos, "standard header needs %d bytes, have %d", StandardHeaderSize, len(data)-pos)
	}
	m.Standard.HeaderType = data[pos]
	m.Standard.Counter = data[pos+1]
	m.Standard.Length = binary.LittleEndian.Uint16(data[pos+2 : pos+4])
	pos += StandardHeaderSize

	if m.Standard.UseExtendedHeader() {
		if len(data) < pos+ExtendedHeaderSize {
			return Message{}, formatErrorf(pos, "extended header needs %d bytes, have %d", ExtendedHeaderSize, len(data)-pos)
		}
		m.Extended.MessageInfo = data[pos]
		m.Extended.ArgumentCount = data[pos+1]
		copy(m.Extended.AppID[:], data[pos+2:pos+6])
		copy(m.Extended.ContextID[:], data[pos+6:pos+10])
		pos += ExtendedHeaderSize
	}

	// A zero length carries no size; the caller's slice bounds the record.
	end := len(data)
	if length := int(m.Standard.Length); length != 0 {
		if length < pos {
			return Message{}, formatErrorf(lengthFieldOffset, "length %d shorter than %d header bytes", length, pos)
		}
		if length > len(data) {
			return Message{}, formatErrorf(lengthFieldOffset, "length %d exceeds %d available bytes", length, len(data))
		}
		end = length
	}

	m.Payload = data[pos:end]
	m.HasText = isText(m.Payload)
	return m, nil
}

func isText(payload []byte) bool {
	for _, b := range payload {
		if (b < 0x20 || b >= 0x7f) && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}

// HasExtended reports whether the record carried an extended header.
func (m Message) HasExtended() bool {
	return m.Standard.UseExtendedHeader()
}

// Timestamp returns the storage timestamp.
func (m Message) Timestamp() time.Time {
	return m.Storage.Timestamp()
}

// ECUID returns the ECU id from the storage header.
func (m Message) ECUID() string {
	return m.Storage.ECU()
}

// AppID returns the application id when an extended header is present.
func (m Message) AppID() (string, bool) {
	if !m.HasExtended() {
		return "", false
	}
	return m.Extended.App(), true
}

// ContextID returns the context id when an extended header is present.
func (m Message) ContextID() (string, bool) {
	if !m.HasExtended() {
		return "", false
	}
	return m.Extended.Context(), true
}

// LogLevel returns the level when an extended header is present.
func (m Message) LogLevel() (LogLevel, bool) {
	if !m.HasExtended() {
		return 0, false
	}
	return m.Extended.LogLevel(), true
}

// MessageType returns the type from the standard header.
func (m Message) MessageType() MessageType {
	return m.Standard.MessageType()
}

// PayloadText returns the payload as a string when it passed the printable
// text check.
func (m Message) PayloadText() (string, bool) {
	if !m.HasText {
		return "", false
	}
	return string(m.Payload), true
}

// Text returns the payload text, or a hex dump when the payload is binary.
func (m Message) Text() string {
	if text, ok := m.PayloadText(); ok {
		return text
	}
	return HexDump(m.Payload)
}
