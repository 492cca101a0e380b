package store

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/texdrill/internal/hearts"
	"github.com/abhisek/texdrill/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	lossAt := time.Now().UTC().Truncate(time.Second)
	data := ProfileData{
		Version: CurrentVersion,
		Name:    "Ada",
		XP:      45,
		Streak:  3,
		CompletedLessons: map[string]progress.LessonRecord{
			"u1-l1": {Score: 1, CompletedAt: lossAt},
		},
		UnlockedUnits: []string{"unit-1"},
		State: hearts.State{
			Hearts:        4,
			MaxHearts:     hearts.MaxHearts,
			LastLossAt:    &lossAt,
			SharesGranted: 1,
			LastShareDate: "2026-09-01",
		},
	}
	err = repo.Save(ctx, &Snapshot{Timestamp: lossAt, Data: data})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 1 {
		t.Errorf("sequence = %d, want 1", snap.Sequence)
	}
	got := snap.Data
	if got.XP != 45 || got.Streak != 3 || got.Name != "Ada" {
		t.Errorf("profile = %+v", got)
	}
	if got.Hearts != 4 || got.SharesGranted != 1 || got.LastShareDate != "2026-09-01" {
		t.Errorf("heart state = %+v", got.State)
	}
	if got.LastLossAt == nil || !got.LastLossAt.Equal(lossAt) {
		t.Errorf("lastHeartLossAt = %v, want %v", got.LastLossAt, lossAt)
	}
	if rec, ok := got.CompletedLessons["u1-l1"]; !ok || rec.Score != 1 {
		t.Errorf("completedLessons = %v", got.CompletedLessons)
	}
}

func TestSnapshotSequenceAssignment(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		snap := &Snapshot{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      ProfileData{Version: CurrentVersion, XP: (i + 1) * 15},
		}
		if err := repo.Save(ctx, snap); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if snap.Sequence != int64(i+1) {
			t.Errorf("assigned sequence = %d, want %d", snap.Sequence, i+1)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.XP != 45 {
		t.Errorf("xp = %d, want 45", snap.Data.XP)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      ProfileData{Version: CurrentVersion, XP: (i + 1) * 15},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	// Latest should still be the newest profile.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Data.XP != 105 {
		t.Errorf("latest xp = %d, want 105", snap.Data.XP)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      ProfileData{Version: CurrentVersion},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestSnapshotDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Timestamp: time.Now().UTC(),
			Data:      ProfileData{Version: CurrentVersion},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Errorf("snapshot survived reset: %+v", snap)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	// Check that the snapshots table exists.
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='snapshots'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "snapshots" {
		t.Errorf("table name = %q, want 'snapshots'", name)
	}
}
