package karaoke

import (
	"strconv"
	"strings"
)

const (
	codePlain   = 1
	codeLineEnd = 10
)

// Render serialises a line into the LRC variant:
//
//	[1|MM:SS:CC]c ... {base|[K|MM:SS:CC]r[MM:SS:CC]r} ... [10|MM:SS:CC]
func Render(line *Line) string {
	if line == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(len(line.Items)*14 + 12)
	for _, item := range line.Items {
		switch v := item.(type) {
		case *Element:
			writeTag(&b, codePlain, v.Time.Format())
			b.WriteString(v.Text)
		case *KanjiGroup:
			writeGroup(&b, v)
		}
	}
	writeTag(&b, codeLineEnd, line.End.Format())
	return b.String()
}

func writeGroup(b *strings.Builder, group *KanjiGroup) {
	b.WriteByte('{')
	b.WriteString(group.Base)
	b.WriteByte('|')
	for _, r := range group.Readings {
		if r.Kind == KindFuriganaHead {
			writeTag(b, r.Count, r.Time.Format())
		} else {
			b.WriteByte('[')
			b.WriteString(r.Time.Format())
			b.WriteByte(']')
		}
		b.WriteString(r.Text)
	}
	b.WriteByte('}')
}

func writeTag(b *strings.Builder, code int, ts string) {
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(code))
	b.WriteByte('|')
	b.WriteString(ts)
	b.WriteByte(']')
}
