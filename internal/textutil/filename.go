package textutil

import (
	"path/filepath"
	"strings"
)

// HasExtension reports whether path ends in ext, ignoring case.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// ReplaceExtension swaps the extension of path for ext. The extension is
// normalised to start with a dot.
func ReplaceExtension(path, ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
