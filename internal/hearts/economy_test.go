package hearts

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDecrement(t *testing.T) {
	e := NewFullEconomy()

	for i := 0; i < 3; i++ {
		if !e.Decrement(base) {
			t.Fatalf("decrement %d should change state", i)
		}
	}
	if e.Hearts() != 2 {
		t.Errorf("hearts = %d, want 2", e.Hearts())
	}
	if e.State().LastLossAt == nil || !e.State().LastLossAt.Equal(base) {
		t.Errorf("LastLossAt = %v, want %v", e.State().LastLossAt, base)
	}
}

func TestDecrementAtZero(t *testing.T) {
	e := NewEconomy(State{Hearts: 0, MaxHearts: MaxHearts})

	if e.Decrement(base) {
		t.Error("decrement at zero should be a no-op")
	}
	if e.Hearts() != 0 {
		t.Errorf("hearts = %d, want 0", e.Hearts())
	}
}

func TestCheckRegenSingleHeart(t *testing.T) {
	e := NewFullEconomy()
	e.Decrement(base)
	e.Decrement(base)
	e.Decrement(base) // hearts = 2

	// Just short of one interval: nothing happens.
	if e.CheckRegen(base.Add(RegenInterval - time.Second)) {
		t.Error("regen before interval elapsed")
	}

	// Exactly one interval: one heart back, anchor advanced.
	if !e.CheckRegen(base.Add(RegenInterval)) {
		t.Fatal("regen after one interval should apply")
	}
	if e.Hearts() != 3 {
		t.Errorf("hearts = %d, want 3", e.Hearts())
	}
	wantAnchor := base.Add(RegenInterval)
	if got := e.State().LastLossAt; got == nil || !got.Equal(wantAnchor) {
		t.Errorf("LastLossAt = %v, want %v", got, wantAnchor)
	}
}

func TestCheckRegenPreservesFraction(t *testing.T) {
	e := NewFullEconomy()
	e.Decrement(base)
	e.Decrement(base) // hearts = 3

	// 1.5 intervals: one heart, anchor advances by exactly one interval so
	// half the progress toward the next heart is kept.
	now := base.Add(RegenInterval + RegenInterval/2)
	e.CheckRegen(now)
	if e.Hearts() != 4 {
		t.Fatalf("hearts = %d, want 4", e.Hearts())
	}
	remaining, ok := e.TimeUntilNextHeart(now)
	if !ok {
		t.Fatal("expected a pending heart")
	}
	if remaining != RegenInterval/2 {
		t.Errorf("time until next heart = %v, want %v", remaining, RegenInterval/2)
	}
}

func TestCheckRegenToFullClearsAnchor(t *testing.T) {
	e := NewFullEconomy()
	for i := 0; i < 5; i++ {
		e.Decrement(base)
	}

	// A long absence restores everything, capped at max.
	e.CheckRegen(base.Add(100 * RegenInterval))
	if e.Hearts() != MaxHearts {
		t.Errorf("hearts = %d, want %d", e.Hearts(), MaxHearts)
	}
	if e.State().LastLossAt != nil {
		t.Error("LastLossAt should be cleared at full hearts")
	}
	if _, ok := e.TimeUntilNextHeart(base.Add(100 * RegenInterval)); ok {
		t.Error("no next-heart timer expected at full hearts")
	}
}

func TestCheckRegenClockMovedBackwards(t *testing.T) {
	e := NewFullEconomy()
	e.Decrement(base)

	if e.CheckRegen(base.Add(-time.Hour)) {
		t.Error("negative elapsed time must grant nothing")
	}
	if e.Hearts() != 4 {
		t.Errorf("hearts = %d, want 4", e.Hearts())
	}
}

func TestRefill(t *testing.T) {
	e := NewFullEconomy()
	e.Decrement(base)
	e.Decrement(base)

	e.Refill()
	if e.Hearts() != MaxHearts {
		t.Errorf("hearts = %d, want %d", e.Hearts(), MaxHearts)
	}
	if e.State().LastLossAt != nil {
		t.Error("refill should clear LastLossAt")
	}
}

func TestShareForHeartDailyCap(t *testing.T) {
	e := NewEconomy(State{Hearts: 0, MaxHearts: MaxHearts})

	wantRemaining := []int{2, 1, 0}
	for i := 0; i < 3; i++ {
		res := e.ShareForHeart(base.Add(time.Duration(i) * time.Minute))
		if !res.Granted {
			t.Fatalf("share %d should be granted", i+1)
		}
		if res.Remaining != wantRemaining[i] {
			t.Errorf("share %d remaining = %d, want %d", i+1, res.Remaining, wantRemaining[i])
		}
	}
	if e.Hearts() != 3 {
		t.Errorf("hearts = %d, want 3", e.Hearts())
	}

	res := e.ShareForHeart(base.Add(time.Hour))
	if res.Granted {
		t.Error("4th share on the same day should fail")
	}
	if res.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", res.Remaining)
	}
}

func TestShareForHeartRollsOverAtUTCDay(t *testing.T) {
	e := NewEconomy(State{Hearts: 0, MaxHearts: MaxHearts})
	for i := 0; i < 3; i++ {
		e.ShareForHeart(base)
	}

	nextDay := base.Add(24 * time.Hour)
	if e.ShareRemaining(nextDay) != ShareDailyCap {
		t.Errorf("ShareRemaining next day = %d, want %d", e.ShareRemaining(nextDay), ShareDailyCap)
	}
	if res := e.ShareForHeart(nextDay); !res.Granted {
		t.Error("share should succeed after day rollover")
	}
}

func TestShareForHeartAtFullHearts(t *testing.T) {
	e := NewFullEconomy()

	res := e.ShareForHeart(base)
	if res.Granted {
		t.Error("share at full hearts should fail")
	}
	if e.ShareRemaining(base) != ShareDailyCap {
		t.Errorf("failed share must not consume a grant, remaining = %d", e.ShareRemaining(base))
	}
}

func TestNewEconomyClampsCorruptState(t *testing.T) {
	e := NewEconomy(State{Hearts: 99, MaxHearts: MaxHearts})
	if e.Hearts() != MaxHearts {
		t.Errorf("hearts = %d, want clamped to %d", e.Hearts(), MaxHearts)
	}

	e = NewEconomy(State{Hearts: -1})
	if e.Hearts() != 0 {
		t.Errorf("hearts = %d, want clamped to 0", e.Hearts())
	}
	if e.Max() != MaxHearts {
		t.Errorf("max = %d, want defaulted to %d", e.Max(), MaxHearts)
	}
}

func TestHeartsAlwaysInRange(t *testing.T) {
	e := NewFullEconomy()
	now := base
	for i := 0; i < 20; i++ {
		e.Decrement(now)
		if e.Hearts() < 0 || e.Hearts() > e.Max() {
			t.Fatalf("hearts %d out of range after decrement", e.Hearts())
		}
		now = now.Add(time.Minute)
		e.CheckRegen(now)
		if e.Hearts() < 0 || e.Hearts() > e.Max() {
			t.Fatalf("hearts %d out of range after regen", e.Hearts())
		}
	}
}
