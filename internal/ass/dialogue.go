package ass

import (
	"errors"
	"fmt"
	"strings"

	"asslrc/internal/timecode"
)

// ErrUnmatchedLine reports a line that is not a karaoke Dialogue/Comment event.
var ErrUnmatchedLine = errors.New("not a karaoke event line")

// KaraokeEffect is the Effect field value that marks an event as karaoke.
const KaraokeEffect = "karaoke"

// EventKind is the record type of an event line.
type EventKind string

const (
	EventDialogue EventKind = "Dialogue"
	EventComment  EventKind = "Comment"
)

// Event field positions for the v4+ Format line
// Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text.
const (
	fieldLayer = iota
	fieldStart
	fieldEnd
	fieldStyle
	fieldName
	fieldMarginL
	fieldMarginR
	fieldMarginV
	fieldEffect
	fieldText
	eventFieldCount
)

// Dialogue is a parsed karaoke event.
type Dialogue struct {
	Kind  EventKind
	Layer string
	Start timecode.Timestamp
	End   timecode.Timestamp
	Style string
	Name  string
	Text  string
}

// ParseDialogue splits an event line into its fields. The Text field is the
// remainder of the line and may contain commas. Lines of another shape, or
// whose Effect is not "karaoke", return ErrUnmatchedLine; unparsable start or
// end times return an error wrapping timecode.ErrMalformedTimestamp.
func ParseDialogue(line string) (Dialogue, error) {
	line = strings.TrimRight(line, "\r\n")
	kind, rest, ok := cutEventKind(line)
	if !ok {
		return Dialogue{}, ErrUnmatchedLine
	}
	fields := strings.SplitN(rest, ",", eventFieldCount)
	if len(fields) != eventFieldCount {
		return Dialogue{}, fmt.Errorf("%w: expected %d fields, found %d", ErrUnmatchedLine, eventFieldCount, len(fields))
	}
	if !isDigits(fields[fieldLayer]) {
		return Dialogue{}, fmt.Errorf("%w: layer %q is not numeric", ErrUnmatchedLine, fields[fieldLayer])
	}
	if fields[fieldEffect] != KaraokeEffect {
		return Dialogue{}, fmt.Errorf("%w: effect %q", ErrUnmatchedLine, fields[fieldEffect])
	}
	start, err := timecode.Parse(fields[fieldStart])
	if err != nil {
		return Dialogue{}, fmt.Errorf("start time: %w", err)
	}
	end, err := timecode.Parse(fields[fieldEnd])
	if err != nil {
		return Dialogue{}, fmt.Errorf("end time: %w", err)
	}
	return Dialogue{
		Kind:  kind,
		Layer: fields[fieldLayer],
		Start: start,
		End:   end,
		Style: fields[fieldStyle],
		Name:  fields[fieldName],
		Text:  fields[fieldText],
	}, nil
}

func cutEventKind(line string) (EventKind, string, bool) {
	for _, kind := range []EventKind{EventDialogue, EventComment} {
		if rest, ok := strings.CutPrefix(line, string(kind)+": "); ok {
			return kind, rest, true
		}
	}
	return "", "", false
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
