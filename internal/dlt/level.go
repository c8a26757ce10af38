package dlt

import (
	"fmt"
	"strconv"
	"strings"
)

// LogLevel is the severity carried in the extended header. Values outside
// 1..6 are kept as-is and reported as unknown.
type LogLevel uint8

const (
	LevelFatal LogLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelVerbose
)

// Known reports whether l is one of the six defined levels.
func (l LogLevel) Known() bool {
	return l >= LevelFatal && l <= LevelVerbose
}

func (l LogLevel) String() string {
	switch l {
	case LevelFatal:
		return "Fatal"
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	case LevelInfo:
		return "Info"
	case LevelDebug:
		return "Debug"
	case LevelVerbose:
		return "Verbose"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(l))
	}
}

// Abbrev returns a three-letter label for list columns.
func (l LogLevel) Abbrev() string {
	switch l {
	case LevelFatal:
		return "FTL"
	case LevelError:
		return "ERR"
	case LevelWarning:
		return "WRN"
	case LevelInfo:
		return "INF"
	case LevelDebug:
		return "DBG"
	case LevelVerbose:
		return "VRB"
	default:
		return "???"
	}
}

// ParseLogLevel accepts a level name (case-insensitive, "warn" allowed) or
// its numeric wire value.
func ParseLogLevel(s string) (LogLevel, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	switch value {
	case "fatal", "ftl":
		return LevelFatal, nil
	case "error", "err":
		return LevelError, nil
	case "warning", "warn", "wrn":
		return LevelWarning, nil
	case "info", "inf":
		return LevelInfo, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "verbose", "vrb":
		return LevelVerbose, nil
	}
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil || n > 7 {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return LogLevel(n), nil
}

// MessageType is the message type info of the standard header.
type MessageType uint8

const (
	MessageLog MessageType = iota
	MessageTraceVariable
	MessageNetworkTrace
	MessageControl
)

// Known reports whether t is one of the four defined message types.
func (t MessageType) Known() bool {
	return t <= MessageControl
}

func (t MessageType) String() string {
	switch t {
	case MessageLog:
		return "Log"
	case MessageTraceVariable:
		return "TraceVariable"
	case MessageNetworkTrace:
		return "NetworkTrace"
	case MessageControl:
		return "Control"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// ParseMessageType accepts a type name (case-insensitive) or its numeric
// wire value.
func ParseMessageType(s string) (MessageType, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	switch value {
	case "log":
		return MessageLog, nil
	case "trace", "tracevariable", "trace_variable":
		return MessageTraceVariable, nil
	case "network", "networktrace", "network_trace":
		return MessageNetworkTrace, nil
	case "control":
		return MessageControl, nil
	}
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil || n > 7 {
		return 0, fmt.Errorf("unknown message type %q", s)
	}
	return MessageType(n), nil
}
