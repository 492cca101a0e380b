// Package profile assembles the live learner state from its domain
// parts and moves it in and out of snapshot storage.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/texdrill/internal/hearts"
	"github.com/abhisek/texdrill/internal/progress"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/store"
)

// keepSnapshots is how many snapshots survive pruning after a save.
const keepSnapshots = 10

// Profile is the in-memory learner state shared by all screens.
type Profile struct {
	// ID is a stable random identifier minted on first run. The sync
	// service uses it to tell devices apart.
	ID      string
	Name    string
	Economy *hearts.Economy
	Ledger  *progress.Ledger
}

// Fresh returns a brand-new profile with full hearts and no progress.
func Fresh() *Profile {
	return &Profile{
		ID:      uuid.NewString(),
		Economy: hearts.NewFullEconomy(),
		Ledger:  progress.NewLedger(),
	}
}

// Load restores the profile from the latest snapshot, or returns a
// fresh one when the store is empty.
func Load(ctx context.Context, repo store.SnapshotRepo) (*Profile, error) {
	snap, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if snap == nil {
		return Fresh(), nil
	}
	return FromData(&snap.Data), nil
}

// FromData rebuilds a live profile from its serialized form. Corrupt
// heart counts are clamped rather than rejected.
func FromData(data *store.ProfileData) *Profile {
	ledger := progress.NewLedger()
	ledger.XP = data.XP
	ledger.Streak = data.Streak
	ledger.LastActiveDate = data.LastActiveDate
	for id, rec := range data.CompletedLessons {
		ledger.Completed[id] = rec
	}
	id := data.ProfileID
	if id == "" {
		// Saves from before the identifier existed get one now.
		id = uuid.NewString()
	}
	return &Profile{
		ID:      id,
		Name:    data.Name,
		Economy: hearts.NewEconomy(data.State),
		Ledger:  ledger,
	}
}

// Data serializes the profile. The unlocked unit list is derived from
// lesson scores against the catalog, never trusted from older saves.
func (p *Profile) Data(catalog *quiz.Catalog) store.ProfileData {
	data := store.ProfileData{
		Version:          store.CurrentVersion,
		ProfileID:        p.ID,
		Name:             p.Name,
		XP:               p.Ledger.XP,
		Streak:           p.Ledger.Streak,
		LastActiveDate:   p.Ledger.LastActiveDate,
		CompletedLessons: p.Ledger.Completed,
		State:            p.Economy.State(),
	}
	if catalog != nil {
		for _, unit := range catalog.Units {
			if p.Ledger.UnitUnlocked(catalog, unit.ID) {
				data.UnlockedUnits = append(data.UnlockedUnits, unit.ID)
			}
		}
	}
	return data
}

// Save snapshots the profile and prunes old snapshots.
func (p *Profile) Save(ctx context.Context, repo store.SnapshotRepo, catalog *quiz.Catalog) error {
	snap := &store.Snapshot{
		Timestamp: time.Now().UTC(),
		Data:      p.Data(catalog),
	}
	if err := repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := repo.Prune(ctx, keepSnapshots); err != nil {
		return fmt.Errorf("prune profile history: %w", err)
	}
	return nil
}

// Apply overwrites the live state with remote data, used after a sync
// pull.
func (p *Profile) Apply(data *store.ProfileData) {
	fresh := FromData(data)
	p.Name = fresh.Name
	p.Economy = fresh.Economy
	p.Ledger = fresh.Ledger
}
