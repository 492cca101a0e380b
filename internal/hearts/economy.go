// Package hearts manages the bounded lives resource: hearts deplete on
// mistakes, regenerate on a wall-clock schedule, and can be refilled
// manually or earned through a rate-limited daily share bonus.
package hearts

import "time"

const (
	// MaxHearts is the heart capacity.
	MaxHearts = 5

	// RegenInterval is the time to restore one heart. The product shipped
	// two values over time (30m then 5m); 5 minutes is the canonical one.
	RegenInterval = 5 * time.Minute

	// ShareDailyCap is the maximum share-for-heart grants per calendar day.
	ShareDailyCap = 3
)

// State is the persisted heart state. LastLossAt is nil while hearts are
// full; while below max it anchors the regeneration clock.
type State struct {
	Hearts        int        `json:"hearts"`
	MaxHearts     int        `json:"maxHearts"`
	LastLossAt    *time.Time `json:"lastHeartLossAt"`
	SharesGranted int        `json:"shareHeartsToday"`
	LastShareDate string     `json:"lastShareDate"` // YYYY-MM-DD, UTC
}

// Economy is the heart state machine. It is not safe for concurrent use;
// the application has a single active session mutating it. Persistence is
// the caller's concern: mutating operations report whether state changed
// so the owner knows when to save.
type Economy struct {
	state State
}

// NewEconomy builds an economy from a persisted state, clamping values
// into range so a corrupt snapshot cannot produce an illegal state.
func NewEconomy(state State) *Economy {
	if state.MaxHearts <= 0 {
		state.MaxHearts = MaxHearts
	}
	if state.Hearts < 0 {
		state.Hearts = 0
	}
	if state.Hearts > state.MaxHearts {
		state.Hearts = state.MaxHearts
	}
	if state.SharesGranted < 0 {
		state.SharesGranted = 0
	}
	return &Economy{state: state}
}

// NewFullEconomy returns an economy at full hearts.
func NewFullEconomy() *Economy {
	return NewEconomy(State{Hearts: MaxHearts, MaxHearts: MaxHearts})
}

// State returns a copy of the current state for persistence.
func (e *Economy) State() State {
	return e.state
}

// Hearts returns the current heart count.
func (e *Economy) Hearts() int {
	return e.state.Hearts
}

// Max returns the heart capacity.
func (e *Economy) Max() int {
	return e.state.MaxHearts
}

// Decrement spends one heart and anchors the regen clock at now.
// At zero hearts it is a no-op. Returns true if state changed.
func (e *Economy) Decrement(now time.Time) bool {
	if e.state.Hearts <= 0 {
		return false
	}
	e.state.Hearts--
	t := now
	e.state.LastLossAt = &t
	return true
}

// CheckRegen applies any regeneration earned since the last heart loss.
// Whole elapsed intervals each restore one heart; the loss anchor advances
// by the consumed intervals so partial progress toward the next heart is
// preserved. Reaching full clears the anchor. A clock that moved backwards
// grants nothing. Returns true if state changed.
func (e *Economy) CheckRegen(now time.Time) bool {
	if e.state.Hearts >= e.state.MaxHearts || e.state.LastLossAt == nil {
		return false
	}

	elapsed := now.Sub(*e.state.LastLossAt)
	if elapsed < RegenInterval {
		return false
	}

	regen := int(elapsed / RegenInterval)
	e.state.Hearts += regen
	if e.state.Hearts >= e.state.MaxHearts {
		e.state.Hearts = e.state.MaxHearts
		e.state.LastLossAt = nil
	} else {
		t := e.state.LastLossAt.Add(time.Duration(regen) * RegenInterval)
		e.state.LastLossAt = &t
	}
	return true
}

// TimeUntilNextHeart returns the wait until the next single-heart tick,
// or zero duration and false when full or no loss is recorded.
func (e *Economy) TimeUntilNextHeart(now time.Time) (time.Duration, bool) {
	if e.state.Hearts >= e.state.MaxHearts || e.state.LastLossAt == nil {
		return 0, false
	}
	elapsed := now.Sub(*e.state.LastLossAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return RegenInterval - (elapsed % RegenInterval), true
}

// Refill restores all hearts and clears the regen anchor. Always succeeds.
func (e *Economy) Refill() {
	e.state.Hearts = e.state.MaxHearts
	e.state.LastLossAt = nil
}

// ShareResult reports the outcome of a share-for-heart attempt.
type ShareResult struct {
	Granted   bool
	Remaining int // grants left today after this attempt
}

// ShareForHeart grants one bonus heart for a completed share action.
// The daily counter rolls over at the UTC day boundary. The grant fails
// when today's cap is exhausted or hearts are already full. Callers must
// invoke this only after the external share actually succeeded.
func (e *Economy) ShareForHeart(now time.Time) ShareResult {
	e.rollShareDay(now)

	if e.state.SharesGranted >= ShareDailyCap || e.state.Hearts >= e.state.MaxHearts {
		return ShareResult{Granted: false, Remaining: ShareDailyCap - e.state.SharesGranted}
	}

	e.state.Hearts++
	if e.state.Hearts >= e.state.MaxHearts {
		e.state.Hearts = e.state.MaxHearts
		e.state.LastLossAt = nil
	}
	e.state.SharesGranted++
	e.state.LastShareDate = dayOf(now)
	return ShareResult{Granted: true, Remaining: ShareDailyCap - e.state.SharesGranted}
}

// ShareRemaining reports today's remaining share grants without mutating
// the stored counter.
func (e *Economy) ShareRemaining(now time.Time) int {
	if e.state.LastShareDate != dayOf(now) {
		return ShareDailyCap
	}
	remaining := ShareDailyCap - e.state.SharesGranted
	if remaining < 0 {
		return 0
	}
	return remaining
}

// rollShareDay resets the share counter when the UTC day has changed.
func (e *Economy) rollShareDay(now time.Time) {
	if e.state.LastShareDate != dayOf(now) {
		e.state.SharesGranted = 0
	}
}

func dayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
