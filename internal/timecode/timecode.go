package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp reports source timestamp text that does not match H:MM:SS.CC.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

const (
	centisPerSecond = 100
	centisPerMinute = 60 * centisPerSecond
)

// Timestamp is an instant in centiseconds from the start of the media.
type Timestamp int64

// Parse converts an ASS timestamp (H:MM:SS.CC) into a Timestamp.
func Parse(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	hms, frac, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}
	parts := strings.Split(hms, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}
	hours, errH := parseField(parts[0], 0)
	minutes, errM := parseField(parts[1], 2)
	seconds, errS := parseField(parts[2], 2)
	centis, errC := parseField(frac, 2)
	if errH != nil || errM != nil || errS != nil || errC != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}
	totalMinutes := hours*60 + minutes
	return Timestamp(totalMinutes*centisPerMinute + seconds*centisPerSecond + centis), nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(value string) Timestamp {
	ts, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return ts
}

// parseField accepts one or more ASCII digits, at most maxDigits when maxDigits > 0.
func parseField(value string, maxDigits int) (int64, error) {
	if value == "" || (maxDigits > 0 && len(value) > maxDigits) {
		return 0, errors.New("bad width")
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, errors.New("not a digit")
		}
	}
	return strconv.ParseInt(value, 10, 64)
}

// Add returns t advanced by centis. Negative durations are treated as zero
// and the result saturates at math.MaxInt64 instead of wrapping.
func (t Timestamp) Add(centis int) Timestamp {
	if centis <= 0 {
		return t
	}
	if t > math.MaxInt64-Timestamp(centis) {
		return math.MaxInt64
	}
	return t + Timestamp(centis)
}

// Centiseconds returns the raw centisecond count.
func (t Timestamp) Centiseconds() int64 {
	return int64(t)
}

// Format renders t as MM:SS:CC. Minutes are not wrapped into hours.
func (t Timestamp) Format() string {
	if t < 0 {
		t = 0
	}
	total := int64(t)
	minutes := total / centisPerMinute
	seconds := (total % centisPerMinute) / centisPerSecond
	centis := total % centisPerSecond
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, centis)
}

func (t Timestamp) String() string {
	return t.Format()
}

// FormatSource renders t in the ASS event form H:MM:SS.CC.
func FormatSource(t Timestamp) string {
	if t < 0 {
		t = 0
	}
	total := int64(t)
	hours := total / (60 * centisPerMinute)
	minutes := (total / centisPerMinute) % 60
	seconds := (total % centisPerMinute) / centisPerSecond
	centis := total % centisPerSecond
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
