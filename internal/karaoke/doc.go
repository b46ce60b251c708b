// Package karaoke implements the timeline transducer that turns the text
// field of an ASS karaoke event into furigana-aware LRC output.
//
// The pipeline has three stages. Tokenize scans the \k duration tags and
// classifies their payloads into plain and kanji segments, folding "#|<"
// continuations into the open kanji segment. Build walks the segments with a
// running centisecond clock and spreads each segment's duration across its
// characters. Render serialises the resulting Line, closing it with the
// [10|MM:SS:CC] end marker.
//
// Nothing in this package performs I/O or keeps state between calls.
package karaoke
