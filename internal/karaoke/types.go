package karaoke

import (
	"asslrc/internal/timecode"
)

// SegmentKind distinguishes plain text from kanji-with-furigana segments.
type SegmentKind int

const (
	SegmentPlain SegmentKind = iota
	SegmentKanji
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentKanji:
		return "kanji"
	default:
		return "plain"
	}
}

// Token is one raw duration tag and the text that follows it.
type Token struct {
	Duration int
	Text     string
}

// Segment is a classified token. Plain segments use Text; kanji segments use
// Base and Furigana, with Duration summed across continuations.
type Segment struct {
	Kind     SegmentKind
	Duration int
	Text     string
	Base     string
	Furigana string
}

// ElementKind tags a rendered character.
type ElementKind int

const (
	KindPlain ElementKind = iota
	KindFuriganaHead
	KindReading
)

func (k ElementKind) String() string {
	switch k {
	case KindFuriganaHead:
		return "furigana_head"
	case KindReading:
		return "reading"
	default:
		return "plain"
	}
}

// Element is a single character and the instant it becomes active. Count is
// only set on a furigana head and holds the number of readings in its group.
type Element struct {
	Text  string
	Time  timecode.Timestamp
	Kind  ElementKind
	Count int
}

// KanjiGroup pairs base text with its timed readings.
type KanjiGroup struct {
	Base     string
	Readings []Element
}

// Item is either a plain *Element or a *KanjiGroup.
type Item interface {
	isItem()
}

func (*Element) isItem()    {}
func (*KanjiGroup) isItem() {}

// Line is the converted form of one karaoke event.
type Line struct {
	Items []Item
	Start timecode.Timestamp
	End   timecode.Timestamp
}

// CharCount returns the number of timed characters in the line, counting
// every furigana reading.
func (l *Line) CharCount() int {
	if l == nil {
		return 0
	}
	count := 0
	for _, item := range l.Items {
		switch v := item.(type) {
		case *Element:
			count++
		case *KanjiGroup:
			count += len(v.Readings)
		}
	}
	return count
}

// GroupCount returns the number of kanji groups in the line.
func (l *Line) GroupCount() int {
	if l == nil {
		return 0
	}
	count := 0
	for _, item := range l.Items {
		if _, ok := item.(*KanjiGroup); ok {
			count++
		}
	}
	return count
}

func (l *Line) String() string {
	return Render(l)
}
