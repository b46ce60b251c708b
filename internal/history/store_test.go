package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"asslrc/internal/history"
	"asslrc/internal/testsupport"
)

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.ass", "b.ass", "c.ass"} {
		_, err := store.Record(ctx, history.Entry{
			RunID:           "run-1",
			SourcePath:      name,
			OutputPath:      name + ".lrc",
			RemainderPolicy: "truncate",
			SourceLines:     10,
			ConvertedLines:  i,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].SourcePath != "c.ass" || entries[1].SourcePath != "b.ass" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].SourcePath, entries[1].SourcePath)
	}
	if entries[0].ConvertedLines != 2 || entries[0].RunID != "run-1" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if !entries[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected timestamp %v", entries[0].CreatedAt)
	}
}

func TestRecordRequiresSource(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if _, err := store.Record(context.Background(), history.Entry{}); err == nil {
		t.Fatal("expected error without source path")
	}
}

func TestClear(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()
	if _, err := store.Record(ctx, history.Entry{SourcePath: "song.ass"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed row, got %d", removed)
	}
	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Entry{SourcePath: "song.ass"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	entries, err := reopened.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.OpenPath(dbPath); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
