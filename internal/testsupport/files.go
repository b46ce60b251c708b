package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ScriptHeader is a minimal ASS preamble preceding the [Events] section.
const ScriptHeader = "[Script Info]\nScriptType: v4.00+\n\n[Events]\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"

// WriteASS writes an ASS document made of ScriptHeader followed by events to
// path and returns path.
func WriteASS(t testing.TB, path string, events ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(ScriptHeader)
	for _, event := range events {
		b.WriteString(event)
		b.WriteByte('\n')
	}
	WriteFile(t, path, b.String())
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
