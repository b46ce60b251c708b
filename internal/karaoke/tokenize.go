package karaoke

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	continuationMarker = "#|<"
	furiganaMarker     = "|<"
)

var (
	styleResetPattern = regexp.MustCompile(`\{\\-[^}]*\}`)
	// \k, \K, \kf and \ko all carry centisecond durations. A tag's text ends
	// at the next override block.
	durationTagPattern = regexp.MustCompile(`\{\\(k|K|kf|ko)(\d+)\}([^{]*)`)
)

// StripStyleResets removes {\-X} style-reset tags.
func StripStyleResets(field string) string {
	if !strings.Contains(field, `{\-`) {
		return field
	}
	return styleResetPattern.ReplaceAllString(field, "")
}

// Scan returns the raw duration tag stream of a karaoke field. Style-reset
// tags are stripped first and text ahead of the first duration tag is ignored.
func Scan(field string) ([]Token, []Diagnostic) {
	field = StripStyleResets(field)
	matches := durationTagPattern.FindAllStringSubmatch(field, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	tokens := make([]Token, 0, len(matches))
	var diags []Diagnostic
	for _, m := range matches {
		duration, err := strconv.Atoi(m[2])
		if err != nil {
			diags = append(diags, Diagnostic{Err: ErrInvalidDuration, Text: m[0]})
			continue
		}
		tokens = append(tokens, Token{Duration: duration, Text: m[3]})
	}
	return tokens, diags
}

type classifyState int

const (
	stateNone classifyState = iota
	stateKanji
)

// classifier folds raw tokens into segments. The only state carried between
// tokens is whether a kanji segment is open and what it has accumulated.
type classifier struct {
	state    classifyState
	open     Segment
	segments []Segment
	diags    []Diagnostic
}

func (c *classifier) push(tok Token) {
	if rest, ok := strings.CutPrefix(tok.Text, continuationMarker); ok {
		if c.state != stateKanji {
			c.diags = append(c.diags, Diagnostic{Err: ErrDanglingContinuation, Text: tok.Text})
			return
		}
		c.open.Furigana += rest
		c.open.Duration = addDuration(c.open.Duration, tok.Duration)
		return
	}
	if base, furigana, ok := splitKanji(tok.Text); ok {
		c.close()
		c.open = Segment{Kind: SegmentKanji, Duration: tok.Duration, Base: base, Furigana: furigana}
		c.state = stateKanji
		return
	}
	c.close()
	c.segments = append(c.segments, Segment{Kind: SegmentPlain, Duration: tok.Duration, Text: tok.Text})
}

// addDuration sums two non-negative durations, saturating at math.MaxInt.
func addDuration(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func (c *classifier) close() {
	if c.state != stateKanji {
		return
	}
	c.segments = append(c.segments, c.open)
	c.open = Segment{}
	c.state = stateNone
}

// splitKanji recognises "<base>|<<furigana>". The base runs to the first '|'
// and must be non-empty; the furigana ends at the first '#' and must be
// non-empty as well.
func splitKanji(text string) (string, string, bool) {
	idx := strings.IndexByte(text, '|')
	if idx <= 0 || !strings.HasPrefix(text[idx:], furiganaMarker) {
		return "", "", false
	}
	furigana := text[idx+len(furiganaMarker):]
	if hash := strings.IndexByte(furigana, '#'); hash >= 0 {
		furigana = furigana[:hash]
	}
	if furigana == "" {
		return "", "", false
	}
	return text[:idx], furigana, true
}

// Classify turns a raw token stream into plain and kanji segments.
func Classify(tokens []Token) ([]Segment, []Diagnostic) {
	c := &classifier{segments: make([]Segment, 0, len(tokens))}
	for _, tok := range tokens {
		c.push(tok)
	}
	c.close()
	return c.segments, c.diags
}

// Tokenize scans and classifies a karaoke field in one step.
func Tokenize(field string) ([]Segment, []Diagnostic) {
	tokens, diags := Scan(field)
	segments, classifyDiags := Classify(tokens)
	if len(classifyDiags) > 0 {
		diags = append(diags, classifyDiags...)
	}
	return segments, diags
}
