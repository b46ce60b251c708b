// Package timecode converts between ASS event timestamps, the internal
// centisecond clock, and the minute:second:centisecond form written to LRC
// output.
//
// All arithmetic is integer centiseconds. Hours are folded into minutes when
// parsing, and minutes are never wrapped when formatting, so a timestamp one
// hour and two minutes into the media renders as 62:xx:xx.
package timecode
