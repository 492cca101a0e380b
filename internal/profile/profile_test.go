package profile

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/texdrill/internal/hearts"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/store"
)

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
	pruned    int
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}

func (m *mockSnapshotRepo) Prune(_ context.Context, keep int) error {
	m.pruned = keep
	return nil
}

func (m *mockSnapshotRepo) DeleteAll(_ context.Context) error {
	m.snapshots = nil
	return nil
}

func TestLoadEmptyStoreGivesFreshProfile(t *testing.T) {
	p, err := Load(context.Background(), &mockSnapshotRepo{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Economy.Hearts() != hearts.MaxHearts {
		t.Errorf("hearts = %d, want %d", p.Economy.Hearts(), hearts.MaxHearts)
	}
	if p.Ledger.XP != 0 || p.Ledger.Streak != 0 {
		t.Errorf("fresh profile has progress: xp=%d streak=%d", p.Ledger.XP, p.Ledger.Streak)
	}
	if len(p.Ledger.Completed) != 0 {
		t.Errorf("fresh profile has completed lessons: %v", p.Ledger.Completed)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	repo := &mockSnapshotRepo{}
	ctx := context.Background()
	catalog, err := quiz.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}

	p := Fresh()
	p.Name = "Ada"
	p.Ledger.AddXP(30)
	p.Ledger.CompleteLesson("u1-l1", 1.0, time.Now())
	p.Economy.Decrement(time.Now())

	if err := p.Save(ctx, repo, catalog); err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.pruned == 0 {
		t.Error("save did not prune old snapshots")
	}

	got, err := Load(ctx, repo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("name = %q, want Ada", got.Name)
	}
	if got.Ledger.XP != 30 {
		t.Errorf("xp = %d, want 30", got.Ledger.XP)
	}
	if got.Economy.Hearts() != hearts.MaxHearts-1 {
		t.Errorf("hearts = %d, want %d", got.Economy.Hearts(), hearts.MaxHearts-1)
	}
	if score, ok := got.Ledger.BestScore("u1-l1"); !ok || score != 1.0 {
		t.Errorf("best score = %v %v, want 1.0", score, ok)
	}
}

func TestDataDerivesUnlockedUnits(t *testing.T) {
	catalog, err := quiz.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}
	p := Fresh()

	data := p.Data(catalog)
	if len(data.UnlockedUnits) != 1 {
		t.Fatalf("unlocked units = %v, want just the first unit", data.UnlockedUnits)
	}
	if data.UnlockedUnits[0] != catalog.Units[0].ID {
		t.Errorf("unlocked unit = %q, want %q", data.UnlockedUnits[0], catalog.Units[0].ID)
	}

	// Clearing every lesson of the first unit unlocks the second.
	for _, l := range catalog.Units[0].Lessons {
		p.Ledger.CompleteLesson(l.ID, 1.0, time.Now())
	}
	data = p.Data(catalog)
	if len(data.UnlockedUnits) != 2 {
		t.Errorf("unlocked units = %v, want two units", data.UnlockedUnits)
	}
}

func TestFromDataClampsCorruptHearts(t *testing.T) {
	p := FromData(&store.ProfileData{
		Version: store.CurrentVersion,
		State:   hearts.State{Hearts: 99, MaxHearts: 5},
	})
	if p.Economy.Hearts() != 5 {
		t.Errorf("hearts = %d, want clamped to 5", p.Economy.Hearts())
	}
}

func TestApplyOverwritesLiveState(t *testing.T) {
	p := Fresh()
	p.Ledger.AddXP(15)

	remote := store.ProfileData{
		Version: store.CurrentVersion,
		Name:    "Remote",
		XP:      150,
		Streak:  9,
		State:   hearts.State{Hearts: 2, MaxHearts: 5},
	}
	p.Apply(&remote)

	if p.Name != "Remote" || p.Ledger.XP != 150 || p.Ledger.Streak != 9 {
		t.Errorf("profile after apply = %+v ledger=%+v", p, p.Ledger)
	}
	if p.Economy.Hearts() != 2 {
		t.Errorf("hearts = %d, want 2", p.Economy.Hearts())
	}
}

func TestProfileIDStability(t *testing.T) {
	p := Fresh()
	if p.ID == "" {
		t.Fatal("expected a fresh profile to get an identifier")
	}

	data := p.Data(nil)
	if data.ProfileID != p.ID {
		t.Errorf("serialized id = %q, want %q", data.ProfileID, p.ID)
	}
	if restored := FromData(&data); restored.ID != p.ID {
		t.Errorf("restored id = %q, want %q", restored.ID, p.ID)
	}

	// Saves predating the identifier get one minted on load.
	data.ProfileID = ""
	if restored := FromData(&data); restored.ID == "" {
		t.Error("expected an identifier minted for a legacy save")
	}
}
