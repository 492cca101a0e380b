package store

import (
	"context"
	"time"

	"github.com/abhisek/texdrill/internal/hearts"
	"github.com/abhisek/texdrill/internal/progress"
)

// CurrentVersion is the ProfileData schema version written by this build.
const CurrentVersion = 1

// ProfileData is the full persisted learner state. It is stored as a
// single JSON document per snapshot and mirrors what the sync service
// exchanges, so the same shape round-trips locally and remotely.
type ProfileData struct {
	Version          int                              `json:"version"`
	ProfileID        string                           `json:"profileId,omitempty"`
	Name             string                           `json:"name,omitempty"`
	XP               int                              `json:"xp"`
	Streak           int                              `json:"streak"`
	LastActiveDate   *time.Time                       `json:"lastActiveDate,omitempty"`
	CompletedLessons map[string]progress.LessonRecord `json:"completedLessons,omitempty"`
	UnlockedUnits    []string                         `json:"unlockedUnits,omitempty"`

	hearts.State
}

// Snapshot is a point-in-time capture of the profile.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      ProfileData
}

// SnapshotRepo manages profile snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned the next
	// number after the newest stored snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// DeleteAll removes every snapshot. Used by profile reset.
	DeleteAll(ctx context.Context) error
}
