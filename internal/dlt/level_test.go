package dlt

import "testing"

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
		abbr  string
	}{
		{LevelFatal, "Fatal", "FTL"},
		{LevelError, "Error", "ERR"},
		{LevelWarning, "Warning", "WRN"},
		{LevelInfo, "Info", "INF"},
		{LevelDebug, "Debug", "DBG"},
		{LevelVerbose, "Verbose", "VRB"},
		{LogLevel(0), "Unknown(0)", "???"},
		{LogLevel(7), "Unknown(7)", "???"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
		if got := tt.level.Abbrev(); got != tt.abbr {
			t.Errorf("LogLevel(%d).Abbrev() = %q, want %q", tt.level, got, tt.abbr)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"fatal", LevelFatal, false},
		{"ERROR", LevelError, false},
		{" warn ", LevelWarning, false},
		{"Warning", LevelWarning, false},
		{"info", LevelInfo, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelVerbose, false},
		{"0", LogLevel(0), false},
		{"7", LogLevel(7), false},
		{"8", 0, true},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMessageType(t *testing.T) {
	tests := []struct {
		in      string
		want    MessageType
		wantErr bool
	}{
		{"log", MessageLog, false},
		{"Trace", MessageTraceVariable, false},
		{"network_trace", MessageNetworkTrace, false},
		{"CONTROL", MessageControl, false},
		{"5", MessageType(5), false},
		{"ipc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMessageType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMessageType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseMessageType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := MessageType(4).String(); got != "Unknown(4)" {
		t.Fatalf("MessageType(4).String() = %q, want Unknown(4)", got)
	}
}
