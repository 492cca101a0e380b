package progress

import "github.com/abhisek/texdrill/internal/quiz"

// UnlockThreshold is the minimum recorded score for a lesson to count
// toward unlocking what follows it. It is independent of the per-lesson
// mastery threshold, which only gates the star display.
const UnlockThreshold = 0.8

// UnitUnlocked reports whether a unit is playable: the first unit always
// is; any later unit requires every lesson of the previous unit to have a
// recorded score of at least the unlock threshold. Derived on every call
// from the live completion map, never cached.
func (l *Ledger) UnitUnlocked(catalog *quiz.Catalog, unitID string) bool {
	for i := range catalog.Units {
		if catalog.Units[i].ID != unitID {
			continue
		}
		if i == 0 {
			return true
		}
		return l.unitCleared(&catalog.Units[i-1])
	}
	return false
}

// LessonAvailable reports whether a lesson can be started: its unit must
// be unlocked, and any preceding lesson in the unit must have cleared the
// unlock threshold.
func (l *Ledger) LessonAvailable(catalog *quiz.Catalog, lessonID string) bool {
	unit := catalog.UnitOf(lessonID)
	if unit == nil || !l.UnitUnlocked(catalog, unit.ID) {
		return false
	}
	for i := range unit.Lessons {
		if unit.Lessons[i].ID != lessonID {
			continue
		}
		if i == 0 {
			return true
		}
		score, ok := l.BestScore(unit.Lessons[i-1].ID)
		return ok && score >= UnlockThreshold
	}
	return false
}

// LessonMastered reports whether the recorded score reaches the lesson's
// own mastery threshold (the star display).
func (l *Ledger) LessonMastered(lesson *quiz.Lesson) bool {
	score, ok := l.BestScore(lesson.ID)
	return ok && score >= lesson.Threshold
}

func (l *Ledger) unitCleared(unit *quiz.Unit) bool {
	for i := range unit.Lessons {
		score, ok := l.BestScore(unit.Lessons[i].ID)
		if !ok || score < UnlockThreshold {
			return false
		}
	}
	return true
}
