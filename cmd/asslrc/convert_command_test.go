package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asslrc/internal/testsupport"
)

const (
	eventAI    = `Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,karaoke,{\k50}あ{\k50}い`
	eventKanji = `Comment: 0,0:00:00.00,0:00:02.00,Default,,0,0,0,karaoke,{\k100}漢|<かん`
	eventPlain = `Dialogue: 0,0:00:05.00,0:00:06.00,Default,,0,0,0,,not karaoke`
	outAI      = "[1|00:01:00]あ[1|00:01:50]い[10|00:02:00]"
	outKanji   = "{漢|[2|00:00:00]か[00:00:50]ん}[10|00:01:00]"
)

func TestConvertWritesLRCNextToInput(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass", eventAI, eventPlain, eventKanji)

	_, stderr, err := env.run(t, "", "convert", input)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(env.baseDir, "song.lrc"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := outAI + "\n" + outKanji + "\n"; string(got) != want {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", got, want)
	}
	if !strings.Contains(stderr, "2 lines") || !strings.Contains(stderr, "[OK]") {
		t.Fatalf("unexpected summary %q", stderr)
	}
}

func TestConvertRejectsNonASSExtension(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "song.srt")
	testsupport.WriteFile(t, input, eventAI+"\n")

	_, _, err := env.run(t, "", "convert", input)
	if !errors.Is(err, errNotASS) {
		t.Fatalf("expected errNotASS, got %v", err)
	}
}

func TestConvertAcceptsUppercaseExtension(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "SONG.ASS", eventAI)

	if _, _, err := env.run(t, "", "convert", input); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.baseDir, "SONG.lrc")); err != nil {
		t.Fatalf("expected SONG.lrc: %v", err)
	}
}

func TestConvertStdinToStdout(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := env.run(t, "\uFEFF"+eventAI+"\r\n"+eventPlain+"\r\n", "convert", "--stdin")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if stdout != outAI+"\n" {
		t.Fatalf("stdout = %q, want %q", stdout, outAI+"\n")
	}
}

func TestConvertOutputFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass", eventAI)
	target := filepath.Join(env.baseDir, "out", "custom.txt")

	if _, _, err := env.run(t, "", "convert", "-o", target, input); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != outAI+"\n" {
		t.Fatalf("unexpected output %q", got)
	}

	stdout, _, err := env.run(t, "", "convert", "-o", "-", input)
	if err != nil {
		t.Fatalf("convert to stdout failed: %v", err)
	}
	if stdout != outAI+"\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestConvertOutputFlagRequiresSingleInput(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.writeASS(t, "a.ass", eventAI)
	b := env.writeASS(t, "b.ass", eventAI)

	if _, _, err := env.run(t, "", "convert", "-o", "x.lrc", a, b); err == nil {
		t.Fatal("expected error for --output with two inputs")
	}
}

func TestConvertNoCommentsAndPolicyOverride(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass",
		eventKanji,
		`Dialogue: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,karaoke,{\k10}abc`,
	)

	stdout, _, err := env.run(t, "", "convert", "--no-comments", "--policy", "carry", "-o", "-", input)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if want := "[1|00:00:00]a[1|00:00:03]b[1|00:00:06]c[10|00:00:10]\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestConvertRejectsUnknownPolicy(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass", eventAI)

	if _, _, err := env.run(t, "", "convert", "--policy", "round", input); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestConvertRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass", eventAI, eventPlain)

	if _, _, err := env.run(t, "", "convert", input); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	store := testsupport.MustOpenHistory(t, env.cfg)
	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	entry := entries[0]
	if filepath.Base(entry.SourcePath) != "song.ass" || filepath.Base(entry.OutputPath) != "song.lrc" {
		t.Fatalf("unexpected paths: %+v", entry)
	}
	if entry.ConvertedLines != 1 || entry.RunID == "" || entry.RemainderPolicy != "truncate" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestConvertWithoutHistory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	input := env.writeASS(t, "song.ass", eventAI)

	if _, _, err := env.run(t, "", "convert", input); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if _, err := os.Stat(env.cfg.Paths.HistoryDB); !os.IsNotExist(err) {
		t.Fatalf("history database should not be created, stat err %v", err)
	}
}

func TestConvertReportsDiagnostics(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeASS(t, "song.ass",
		`Dialogue: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,karaoke,{\k10}#|<x{\k10}a`,
	)

	_, stderr, err := env.run(t, "", "convert", input)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(stderr, "[WARN]") || !strings.Contains(stderr, "1 warnings") {
		t.Fatalf("expected warning summary, got %q", stderr)
	}
	entries, err := testsupport.MustOpenHistory(t, env.cfg).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Diagnostics != 1 {
		t.Fatalf("expected one recorded diagnostic, got %+v", entries)
	}
}

func TestConvertRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := env.run(t, "", "convert"); err == nil {
		t.Fatal("expected error without inputs")
	}
	if _, _, err := env.run(t, "", "convert", "--stdin", "song.ass"); err == nil {
		t.Fatal("expected error combining --stdin with files")
	}
}
