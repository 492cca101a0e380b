// Package progress tracks XP, the daily activity streak, and per-lesson
// best scores, and derives lesson/unit unlock state from them.
package progress

import "time"

// XPPerLesson is the flat award for finishing a lesson.
const XPPerLesson = 15

// LessonRecord is the stored best attempt for a lesson.
type LessonRecord struct {
	Score       float64   `json:"score"` // 0..1
	CompletedAt time.Time `json:"completedAt"`
}

// Ledger is the persisted progression state. Not safe for concurrent use.
// All calendar-day comparisons use UTC so a traveling learner cannot lose
// (or forge) a streak by crossing time zones.
type Ledger struct {
	XP             int                     `json:"xp"`
	Streak         int                     `json:"streak"`
	LastActiveDate *time.Time              `json:"lastActiveDate"`
	Completed      map[string]LessonRecord `json:"completedLessons"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Completed: make(map[string]LessonRecord)}
}

// AddXP adds a non-negative XP amount. There is no cap.
func (l *Ledger) AddXP(amount int) {
	if amount < 0 {
		return
	}
	l.XP += amount
}

// CompleteLesson records a finished lesson, keeping the best score: an
// existing record is replaced only by a strictly greater score. Repeated
// attempts never lower the stored score.
func (l *Ledger) CompleteLesson(lessonID string, score float64, now time.Time) {
	if l.Completed == nil {
		l.Completed = make(map[string]LessonRecord)
	}
	if existing, ok := l.Completed[lessonID]; ok && score <= existing.Score {
		return
	}
	l.Completed[lessonID] = LessonRecord{Score: score, CompletedAt: now}
}

// BestScore returns the recorded best score for a lesson, or 0 and false.
func (l *Ledger) BestScore(lessonID string) (float64, bool) {
	rec, ok := l.Completed[lessonID]
	return rec.Score, ok
}

// UpdateStreak counts today's activity. A second call on the same UTC day
// is a no-op; activity on the day after the last active day extends the
// streak; any longer gap (or first-ever activity) restarts it at 1.
func (l *Ledger) UpdateStreak(now time.Time) {
	today := dateOf(now)

	if l.LastActiveDate != nil {
		last := dateOf(*l.LastActiveDate)
		switch {
		case last.Equal(today):
			return
		case last.AddDate(0, 0, 1).Equal(today):
			l.Streak++
			t := now
			l.LastActiveDate = &t
			return
		}
	}

	l.Streak = 1
	t := now
	l.LastActiveDate = &t
}

// dateOf truncates a timestamp to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
