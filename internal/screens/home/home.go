// Package home shows the unit map: every lesson with its lock state,
// stars and score, plus the heart meter and share prompt.
package home

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/router"
	"github.com/abhisek/texdrill/internal/screen"
	lessonscreen "github.com/abhisek/texdrill/internal/screens/lesson"
	"github.com/abhisek/texdrill/internal/store"
	"github.com/abhisek/texdrill/internal/ui/layout"
)

type rowKind int

const (
	rowUnitHeader rowKind = iota
	rowLesson
)

type row struct {
	kind   rowKind
	unit   *quiz.Unit
	lesson *quiz.Lesson
}

// tickMsg drives the heart regen countdown.
type tickMsg time.Time

// HomeScreen is the unit map and entry point into lessons.
type HomeScreen struct {
	profile  *profile.Profile
	catalog  *quiz.Catalog
	snapRepo store.SnapshotRepo

	rows   []row
	cursor int
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen over the given profile and catalog.
func New(p *profile.Profile, catalog *quiz.Catalog, snapRepo store.SnapshotRepo) *HomeScreen {
	var rows []row
	for i := range catalog.Units {
		unit := &catalog.Units[i]
		rows = append(rows, row{kind: rowUnitHeader, unit: unit})
		for j := range unit.Lessons {
			rows = append(rows, row{kind: rowLesson, unit: unit, lesson: &unit.Lessons[j]})
		}
	}

	h := &HomeScreen{
		profile:  p,
		catalog:  catalog,
		snapRepo: snapRepo,
		rows:     rows,
	}
	h.cursor = h.firstLessonRow()
	return h
}

func (h *HomeScreen) firstLessonRow() int {
	for i, r := range h.rows {
		if r.kind == rowLesson {
			return i
		}
	}
	return 0
}

func (h *HomeScreen) Init() tea.Cmd {
	return tickCmd()
}

func (h *HomeScreen) Title() string {
	if h.profile.Name != "" {
		return "Hi, " + h.profile.Name
	}
	return "Units"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start lesson"},
	}
	if h.profile.Economy.ShareRemaining(time.Now()) > 0 &&
		h.profile.Economy.Hearts() < h.profile.Economy.Max() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Share for a heart"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	return hints
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if h.profile.Economy.CheckRegen(time.Time(msg)) {
			h.saveProfile()
		}
		return h, tickCmd()

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		h.moveCursor(-1)
	case "down", "j":
		h.moveCursor(1)
	case "s", "S":
		h.shareForHeart()
	case "enter":
		return h.startSelected()
	}
	return h, nil
}

// moveCursor moves by delta, skipping unit headers.
func (h *HomeScreen) moveCursor(delta int) {
	h.notice = ""
	i := h.cursor + delta
	for i >= 0 && i < len(h.rows) {
		if h.rows[i].kind == rowLesson {
			h.cursor = i
			return
		}
		i += delta
	}
}

func (h *HomeScreen) shareForHeart() {
	now := time.Now()
	result := h.profile.Economy.ShareForHeart(now)
	if !result.Granted {
		if h.profile.Economy.Hearts() >= h.profile.Economy.Max() {
			h.notice = "Hearts are already full."
		} else {
			h.notice = "No shares left today. They reset at midnight UTC."
		}
		return
	}
	h.notice = fmt.Sprintf("Thanks for sharing! +1 heart (%d share(s) left today)", result.Remaining)
	h.saveProfile()
}

func (h *HomeScreen) startSelected() (screen.Screen, tea.Cmd) {
	r := h.rows[h.cursor]
	if r.kind != rowLesson {
		return h, nil
	}
	if !h.profile.Ledger.LessonAvailable(h.catalog, r.lesson.ID) {
		h.notice = "That lesson is still locked. Clear the one before it first."
		return h, nil
	}
	if h.profile.Economy.Hearts() == 0 {
		if wait, ok := h.profile.Economy.TimeUntilNextHeart(time.Now()); ok {
			h.notice = fmt.Sprintf("Out of hearts. Next heart in %s.", formatCountdown(wait))
		} else {
			h.notice = "Out of hearts."
		}
		return h, nil
	}

	ls := lessonscreen.New(h.profile, h.catalog, h.snapRepo, r.lesson)
	return h, func() tea.Msg {
		return router.PushScreenMsg{Screen: ls}
	}
}

func (h *HomeScreen) saveProfile() {
	if h.snapRepo == nil {
		return
	}
	_ = h.profile.Save(context.Background(), h.snapRepo, h.catalog)
}

// regenLine describes heart state for display, with a countdown while
// hearts are regenerating.
func (h *HomeScreen) regenLine(now time.Time) string {
	eco := h.profile.Economy
	if eco.Hearts() >= eco.Max() {
		return "Hearts are full."
	}
	if wait, ok := eco.TimeUntilNextHeart(now); ok {
		return fmt.Sprintf("Next heart in %s", formatCountdown(wait))
	}
	return ""
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// star returns the marker for a lesson given the learner's best score.
func (h *HomeScreen) star(l *quiz.Lesson) string {
	score, ok := h.profile.Ledger.BestScore(l.ID)
	switch {
	case !ok:
		return " "
	case h.profile.Ledger.LessonMastered(l):
		return "★"
	case score > 0:
		return "☆"
	default:
		return "·"
	}
}
