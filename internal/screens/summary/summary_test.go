package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/texdrill/internal/router"
)

func testResult() Result {
	return Result{
		LessonTitle: "Superscripts & Subscripts",
		Score:       float64(4) / float64(5),
		XPEarned:    15,
		TotalXP:     120,
		Streak:      3,
		Missed:      1,
		Questions:   5,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Lesson Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Lesson Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
	if !strings.Contains(view, "Superscripts & Subscripts") {
		t.Error("expected lesson title in view")
	}
	if !strings.Contains(view, "+15 XP") {
		t.Error("expected XP award in view")
	}
	if !strings.Contains(view, "80%") {
		t.Error("expected score percentage in view")
	}
}

func TestSummaryScreen_MasteredBanner(t *testing.T) {
	r := testResult()
	r.Score = 1.0
	r.Missed = 0
	r.Mastered = true
	view := New(r).View(80, 24)
	if !strings.Contains(view, "mastered") {
		t.Error("expected mastered banner for a perfect run")
	}
}

func TestSummaryScreen_ReviewHint(t *testing.T) {
	view := New(testResult()).View(80, 24)
	if !strings.Contains(view, "review") {
		t.Error("expected review hint when questions were missed")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
