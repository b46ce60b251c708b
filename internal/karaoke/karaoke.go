package karaoke

import "asslrc/internal/timecode"

// Convert runs the full transducer on one karaoke field.
func Convert(field string, start timecode.Timestamp, policy RemainderPolicy) (*Line, []Diagnostic) {
	segments, diags := Tokenize(field)
	return Build(segments, start, policy), diags
}
