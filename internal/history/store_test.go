package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"reshelf/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)

	entries := []history.Entry{
		{RunID: "run-1", SceneID: "1", FileID: "10", OldPath: "/a/old.mkv", NewPath: "/a/new.mkv", Action: "renamed"},
		{RunID: "run-1", SceneID: "2", FileID: "11", OldPath: "/a/two.mkv", Action: "skipped", ErrorMessage: "source missing on disk"},
		{RunID: "run-2", SceneID: "3", FileID: "12", OldPath: "/a/three.mkv", NewPath: "/b/three.mkv", DuplicateIndex: 2, Action: "dry-run", DryRun: true},
	}
	for i := range entries {
		if err := store.Record(context.Background(), &entries[i]); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if entries[i].ID == 0 {
			t.Fatal("expected assigned id")
		}
	}

	listed, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(listed))
	}
	if listed[0].RunID != "run-2" || !listed[0].DryRun || listed[0].DuplicateIndex != 2 {
		t.Fatalf("expected newest entry first, got %+v", listed[0])
	}
	if listed[2].Action != "renamed" {
		t.Fatalf("expected oldest entry last, got %+v", listed[2])
	}
}

func TestListHonorsLimit(t *testing.T) {
	store := openStore(t)
	for i := 0; i < 5; i++ {
		entry := history.Entry{RunID: "run", SceneID: "1", FileID: "10", OldPath: "/a/x.mkv", Action: "noop"}
		if err := store.Record(context.Background(), &entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	listed, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(listed))
	}
}

func TestPruneRemovesOldEntries(t *testing.T) {
	store := openStore(t)

	old := history.Entry{RunID: "run", SceneID: "1", FileID: "10", OldPath: "/a/x.mkv", Action: "renamed", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	recent := history.Entry{RunID: "run", SceneID: "2", FileID: "11", OldPath: "/a/y.mkv", Action: "renamed"}
	if err := store.Record(context.Background(), &old); err != nil {
		t.Fatalf("Record old: %v", err)
	}
	if err := store.Record(context.Background(), &recent); err != nil {
		t.Fatalf("Record recent: %v", err)
	}

	deleted, err := store.Prune(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("Prune deleted %d, want 1", deleted)
	}

	listed, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].SceneID != "2" {
		t.Fatalf("unexpected remaining entries: %+v", listed)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = second.Close()
}
