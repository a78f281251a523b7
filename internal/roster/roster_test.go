package roster

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"loadmaster/internal/manifest"
)

func seeded(ids ...string) *Store {
	records := make([]manifest.PersonnelRecord, len(ids))
	for i, id := range ids {
		records[i] = manifest.PersonnelRecord{ID: id, LastName: id, Pass: 1, Door: manifest.DoorLeft, JumpType: "J/A/NT"}
	}
	return New(records...)
}

func ids(store *Store) []string {
	var out []string
	for _, record := range store.Snapshot() {
		out = append(out, record.ID)
	}
	return out
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		beforeID string
		moved    bool
		want     []string
	}{
		{"forward", "a", "d", true, []string{"b", "c", "a", "d"}},
		{"backward", "d", "b", true, []string{"a", "d", "b", "c"}},
		{"to front", "c", "a", true, []string{"c", "a", "b", "d"}},
		{"adjacent", "a", "b", true, []string{"a", "b", "c", "d"}},
		{"same id", "b", "b", false, []string{"a", "b", "c", "d"}},
		{"missing id", "x", "b", false, []string{"a", "b", "c", "d"}},
		{"missing target", "a", "x", false, []string{"a", "b", "c", "d"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := seeded("a", "b", "c", "d")
			if moved := store.Reorder(tc.id, tc.beforeID); moved != tc.moved {
				t.Fatalf("Reorder returned %v, want %v", moved, tc.moved)
			}
			if diff := cmp.Diff(tc.want, ids(store)); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveToEnd(t *testing.T) {
	store := seeded("a", "b", "c")
	if !store.MoveToEnd("a") {
		t.Fatal("expected move")
	}
	if store.MoveToEnd("a") {
		t.Fatal("expected no-op for last record")
	}
	if diff := cmp.Diff([]string{"b", "c", "a"}, ids(store)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := seeded("a", "b")
	if !store.Delete("a") {
		t.Fatal("expected delete to remove record")
	}
	if store.Delete("a") {
		t.Fatal("expected second delete to be a no-op")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", store.Len())
	}
}

func TestEditJumpTypeKeepsCategory(t *testing.T) {
	safety, err := manifest.JumpmasterCategory(manifest.SubSafety)
	if err != nil {
		t.Fatalf("JumpmasterCategory: %v", err)
	}
	store := New(manifest.PersonnelRecord{ID: "a", Category: safety, JumpType: "SAFETY"})

	if err := store.EditJumpType("a", " JUMPMASTER "); err != nil {
		t.Fatalf("EditJumpType: %v", err)
	}
	record, ok := store.Get("a")
	if !ok {
		t.Fatal("expected record")
	}
	if record.JumpType != "JUMPMASTER" || !record.NonExiting() {
		t.Fatalf("unexpected record after edit %+v", record)
	}
	if err := store.EditJumpType("missing", "X"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	store := seeded("a")
	snapshot := store.Snapshot()
	snapshot[0].JumpType = "changed"
	if record, _ := store.Get("a"); record.JumpType != "J/A/NT" {
		t.Fatalf("snapshot mutation leaked into store: %+v", record)
	}
}

func TestResolvePrefix(t *testing.T) {
	store := seeded("abc123", "abd456", "xyz")
	record, err := store.Resolve("abc")
	if err != nil || record.ID != "abc123" {
		t.Fatalf("expected abc123, got %q err=%v", record.ID, err)
	}
	if _, err := store.Resolve("ab"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if _, err := store.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentAppendAndSnapshot(t *testing.T) {
	store := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Append(manifest.PersonnelRecord{ID: fmt.Sprintf("%d-%d", worker, j), Pass: 1})
				_ = store.Compose(manifest.MissionConfiguration{})
			}
		}(i)
	}
	wg.Wait()
	if store.Len() != 400 {
		t.Fatalf("expected 400 records, got %d", store.Len())
	}
}
