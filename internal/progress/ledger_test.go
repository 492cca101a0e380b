package progress

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func TestAddXP(t *testing.T) {
	l := NewLedger()
	l.AddXP(15)
	l.AddXP(15)
	if l.XP != 30 {
		t.Errorf("XP = %d, want 30", l.XP)
	}

	l.AddXP(-10)
	if l.XP != 30 {
		t.Errorf("negative XP must be ignored, XP = %d", l.XP)
	}
}

func TestCompleteLessonBestScoreWins(t *testing.T) {
	l := NewLedger()

	l.CompleteLesson("u1-l1", 0.5, base)
	l.CompleteLesson("u1-l1", 0.3, base.Add(time.Hour))
	if score, _ := l.BestScore("u1-l1"); score != 0.5 {
		t.Errorf("score = %v, want 0.5 (lower attempt must not overwrite)", score)
	}

	l.CompleteLesson("u1-l1", 0.9, base.Add(2*time.Hour))
	if score, _ := l.BestScore("u1-l1"); score != 0.9 {
		t.Errorf("score = %v, want 0.9", score)
	}

	// Equal score keeps the earlier record.
	rec := l.Completed["u1-l1"]
	l.CompleteLesson("u1-l1", 0.9, base.Add(3*time.Hour))
	if l.Completed["u1-l1"].CompletedAt != rec.CompletedAt {
		t.Error("equal score should not replace the record")
	}
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	l := NewLedger()

	for day, want := range []int{1, 2, 3} {
		l.UpdateStreak(base.AddDate(0, 0, day))
		if l.Streak != want {
			t.Errorf("day %d: streak = %d, want %d", day, l.Streak, want)
		}
	}
}

func TestUpdateStreakSameDayNoOp(t *testing.T) {
	l := NewLedger()
	l.UpdateStreak(base)
	l.UpdateStreak(base.Add(5 * time.Hour))
	if l.Streak != 1 {
		t.Errorf("streak = %d, want 1 (same day counted twice)", l.Streak)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	l := NewLedger()
	l.UpdateStreak(base)
	l.UpdateStreak(base.AddDate(0, 0, 1))
	if l.Streak != 2 {
		t.Fatalf("streak = %d, want 2", l.Streak)
	}

	l.UpdateStreak(base.AddDate(0, 0, 3)) // 2-day gap
	if l.Streak != 1 {
		t.Errorf("streak = %d, want 1 after gap", l.Streak)
	}
}

func TestUpdateStreakUsesUTCDays(t *testing.T) {
	l := NewLedger()

	// 23:30 UTC and 00:30 UTC the next day are different days even though
	// only an hour apart.
	late := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	l.UpdateStreak(late)
	l.UpdateStreak(late.Add(time.Hour))
	if l.Streak != 2 {
		t.Errorf("streak = %d, want 2 across the UTC midnight", l.Streak)
	}

	// The same instant expressed in another zone must not change the day.
	l2 := NewLedger()
	tokyo := time.FixedZone("UTC+9", 9*3600)
	l2.UpdateStreak(late)
	l2.UpdateStreak(late.Add(time.Hour).In(tokyo))
	if l2.Streak != 2 {
		t.Errorf("streak = %d, want 2 regardless of zone representation", l2.Streak)
	}
}
