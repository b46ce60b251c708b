package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = "\uFEFF"

// SplitLines splits a document on LF, dropping a trailing CR from each line
// and a byte order mark from the first. Surrounding blank space of the whole
// document is ignored, so an empty document yields no lines.
func SplitLines(document string) []string {
	document = strings.TrimPrefix(document, byteOrderMark)
	document = strings.TrimSpace(document)
	if document == "" {
		return nil
	}
	lines := strings.Split(document, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// NormalizeLyric returns value in Unicode normalisation form C.
func NormalizeLyric(value string) string {
	if norm.NFC.IsNormalString(value) {
		return value
	}
	return norm.NFC.String(value)
}
