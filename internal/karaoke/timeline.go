package karaoke

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"asslrc/internal/timecode"
)

// RemainderPolicy decides what happens to the part of a segment's duration
// that integer division cannot spread evenly across its characters.
type RemainderPolicy int

const (
	// PolicyTruncate drops the remainder: after a segment of n characters
	// the clock has advanced by n*(duration/n).
	PolicyTruncate RemainderPolicy = iota
	// PolicyCarry adds the remainder after the last character so the
	// segment advances the clock by exactly its duration.
	PolicyCarry
)

func (p RemainderPolicy) String() string {
	switch p {
	case PolicyCarry:
		return "carry"
	default:
		return "truncate"
	}
}

// ParseRemainderPolicy accepts "truncate" (or empty) and "carry".
func ParseRemainderPolicy(value string) (RemainderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "truncate":
		return PolicyTruncate, nil
	case "carry":
		return PolicyCarry, nil
	default:
		return PolicyTruncate, fmt.Errorf("unknown remainder policy %q", value)
	}
}

// Build lays segments out on a clock that starts at start.
func Build(segments []Segment, start timecode.Timestamp, policy RemainderPolicy) *Line {
	line := &Line{Start: start, Items: make([]Item, 0, len(segments))}
	clock := start
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentKanji:
			var group *KanjiGroup
			group, clock = buildKanji(seg, clock, policy)
			if group != nil {
				line.Items = append(line.Items, group)
			}
		default:
			var elems []*Element
			elems, clock = buildPlain(seg, clock, policy)
			for _, el := range elems {
				line.Items = append(line.Items, el)
			}
		}
	}
	line.End = clock
	return line
}

func buildPlain(seg Segment, clock timecode.Timestamp, policy RemainderPolicy) ([]*Element, timecode.Timestamp) {
	n := utf8.RuneCountInString(seg.Text)
	if n == 0 {
		return nil, clock.Add(seg.Duration)
	}
	step, rem := split(seg.Duration, n)
	elems := make([]*Element, 0, n)
	for _, r := range seg.Text {
		elems = append(elems, &Element{Text: string(r), Time: clock, Kind: KindPlain})
		clock = clock.Add(step)
	}
	if policy == PolicyCarry {
		clock = clock.Add(rem)
	}
	return elems, clock
}

func buildKanji(seg Segment, clock timecode.Timestamp, policy RemainderPolicy) (*KanjiGroup, timecode.Timestamp) {
	k := utf8.RuneCountInString(seg.Furigana)
	if k == 0 {
		return nil, clock.Add(seg.Duration)
	}
	step, rem := split(seg.Duration, k)
	group := &KanjiGroup{Base: seg.Base, Readings: make([]Element, 0, k)}
	for i, r := range seg.Furigana {
		el := Element{Text: string(r), Time: clock, Kind: KindReading}
		if i == 0 {
			el.Kind = KindFuriganaHead
			el.Count = k
		}
		group.Readings = append(group.Readings, el)
		clock = clock.Add(step)
	}
	if policy == PolicyCarry {
		clock = clock.Add(rem)
	}
	return group, clock
}

func split(duration, n int) (int, int) {
	if duration <= 0 {
		return 0, 0
	}
	return duration / n, duration % n
}
