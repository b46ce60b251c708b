// Package ass recognises the ASS event lines that carry karaoke timing.
//
// Only the [Events] record shape is understood: Dialogue or Comment, the ten
// standard v4+ fields, and the Effect field set to "karaoke". Everything else
// in a subtitle script is reported as ErrUnmatchedLine so callers can skip it.
package ass
