package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHistoryListAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass", eventAI)
	if _, _, err := env.run(t, "", "convert", input); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	stdout, _, err := env.run(t, "", "history", "list")
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	if !strings.Contains(stdout, "song.ass") || !strings.Contains(stdout, "song.lrc") {
		t.Fatalf("expected conversion in history table:\n%s", stdout)
	}

	stdout, _, err = env.run(t, "", "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list --json failed: %v", err)
	}
	var views []historyEntryView
	if err := json.Unmarshal([]byte(stdout), &views); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(views) != 1 || views[0].Converted != 1 || views[0].RunID == "" {
		t.Fatalf("unexpected history views: %+v", views)
	}

	stdout, _, err = env.run(t, "", "history", "clear")
	if err != nil {
		t.Fatalf("history clear failed: %v", err)
	}
	if !strings.Contains(stdout, "Removed 1 history entries") {
		t.Fatalf("unexpected clear output %q", stdout)
	}

	stdout, _, err = env.run(t, "", "history", "list")
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	if !strings.Contains(stdout, "No conversions recorded") {
		t.Fatalf("expected empty history, got %q", stdout)
	}
}
