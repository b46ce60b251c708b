// Package convert applies the karaoke transducer to whole ASS documents.
//
// Convert is the single entry point the rest of the tool calls: it takes the
// text of a subtitle script and returns one LRC line per karaoke event, in
// source order. Lines that are not karaoke events are skipped without
// complaint, and recoverable problems on individual lines are collected as
// diagnostics instead of aborting the document.
//
// Converter exposes the same behaviour with options (remainder policy,
// comment handling, Unicode normalisation, a bounded worker pool) and returns
// the intermediate structures for inspection.
package convert
