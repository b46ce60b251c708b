// Package textutil provides the text handling shared by the converter and
// the CLI.
//
// The primary use cases are:
//   - Splitting documents into lines regardless of LF/CRLF endings or a
//     leading byte order mark
//   - Normalising karaoke text to Unicode NFC so decomposed kana (か + ゙)
//     count as one character
//   - Deriving output file names from input names
package textutil
