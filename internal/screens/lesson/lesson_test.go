package lesson

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/texdrill/internal/hearts"
	drill "github.com/abhisek/texdrill/internal/lesson"
	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/router"
	"github.com/abhisek/texdrill/internal/store"
)

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
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
func (m *mockSnapshotRepo) Prune(_ context.Context, _ int) error    { return nil }
func (m *mockSnapshotRepo) DeleteAll(_ context.Context) error     { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testLesson() *quiz.Lesson {
	return &quiz.Lesson{
		ID:        "test-lesson",
		Title:     "Superscripts",
		Threshold: 0.8,
		Questions: []quiz.Question{
			{
				ID:              "q1",
				Type:            quiz.TypeSelectCode,
				Prompt:          "Which code creates this superscript?",
				Formula:         "x²",
				Choices:         []string{"x^2", "x_2", "x**2"},
				CorrectAnalysis: "x^2",
			},
			{
				ID:         "q2",
				Type:       quiz.TypeInput,
				Prompt:     "Type the code",
				Formula:    "aⁿ",
				Acceptable: []string{"a^n"},
			},
		},
	}
}

func testScreen() (*LessonScreen, *mockSnapshotRepo) {
	catalog, err := quiz.Builtin()
	if err != nil {
		panic(err)
	}
	repo := &mockSnapshotRepo{}
	return New(profile.Fresh(), catalog, repo, testLesson()), repo
}

func TestLessonScreen_Title(t *testing.T) {
	s, _ := testScreen()
	if s.Title() != "Superscripts" {
		t.Errorf("Title = %q, want %q", s.Title(), "Superscripts")
	}
}

func TestLessonScreen_ViewShowsFirstQuestion(t *testing.T) {
	s, _ := testScreen()
	view := s.View(80, 24)
	if !strings.Contains(view, "Which code creates this superscript?") {
		t.Error("expected prompt in view")
	}
	if !strings.Contains(view, "x^2") {
		t.Error("expected choices in view")
	}
	if !strings.Contains(view, "Question 1/2") {
		t.Error("expected progress counter in view")
	}
}

func TestLessonScreen_CorrectAnswerAdvances(t *testing.T) {
	s, _ := testScreen()

	// First choice is the correct one.
	s.Update(specialKey(tea.KeyEnter))
	if s.session.Status() != drill.StatusCorrect {
		t.Fatalf("status = %v, want correct", s.session.Status())
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.session.Index() != 1 {
		t.Errorf("index = %d, want 1", s.session.Index())
	}
	if s.session.Status() != drill.StatusPending {
		t.Errorf("status = %v, want pending after advance", s.session.Status())
	}
}

func TestLessonScreen_WrongAnswerCostsHeart(t *testing.T) {
	s, repo := testScreen()
	before := s.profile.Economy.Hearts()

	s.Update(keyPress('j')) // move to a wrong choice
	s.Update(specialKey(tea.KeyEnter))

	if s.session.Status() != drill.StatusIncorrect {
		t.Fatalf("status = %v, want incorrect", s.session.Status())
	}
	if got := s.profile.Economy.Hearts(); got != before-1 {
		t.Errorf("hearts = %d, want %d", got, before-1)
	}
	if len(repo.snapshots) == 0 {
		t.Error("expected a save after a wrong answer")
	}
}

func TestLessonScreen_RetryAfterWrong(t *testing.T) {
	s, _ := testScreen()

	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter)) // retry

	if s.session.Status() != drill.StatusPending {
		t.Fatalf("status = %v, want pending after retry", s.session.Status())
	}
	// The same question is shown again.
	if s.session.Index() != 0 {
		t.Errorf("index = %d, want 0", s.session.Index())
	}
}

func TestLessonScreen_GameOverWhenHeartsRunOut(t *testing.T) {
	s, _ := testScreen()
	s.profile.Economy = drainHearts(s.profile.Economy)
	s.session = drill.NewSession("test-lesson", testLesson().Questions, s.profile.Economy)
	s.setupQuestion()

	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))

	if !s.gameOver {
		t.Fatal("expected game over at zero hearts")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Out of hearts") {
		t.Error("expected game over overlay in view")
	}
}

func TestLessonScreen_EscOpensQuitConfirm(t *testing.T) {
	s, _ := testScreen()
	s.Update(specialKey(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("expected quit confirmation")
	}

	view := s.View(80, 24)
	if !strings.Contains(view, "Leave this lesson?") {
		t.Error("expected quit confirm overlay in view")
	}

	// N dismisses.
	s.Update(keyPress('n'))
	if s.quitConfirm {
		t.Error("expected quit confirm dismissed on n")
	}
}

func TestLessonScreen_QuitConfirmYesPops(t *testing.T) {
	s, _ := testScreen()
	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command on confirm quit")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on confirm quit")
	}
}

func TestLessonScreen_FinishReplacesWithSummary(t *testing.T) {
	s, repo := testScreen()

	// q1: correct choice.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))

	// q2: type the answer.
	for _, r := range "a^n" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.session.Status() != drill.StatusCorrect {
		t.Fatalf("status = %v, want correct", s.session.Status())
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on finish")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg to the summary")
	}

	ledger := s.profile.Ledger
	if ledger.XP == 0 {
		t.Error("expected XP awarded")
	}
	if _, ok := ledger.Completed["test-lesson"]; !ok {
		t.Error("expected lesson recorded as completed")
	}
	if len(repo.snapshots) == 0 {
		t.Error("expected a save on finish")
	}
}

func TestLessonScreen_KeyHintsFollowState(t *testing.T) {
	s, _ := testScreen()
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Key != "Enter" {
		t.Fatalf("unexpected pending hints: %v", hints)
	}

	s.Update(specialKey(tea.KeyEnter))
	hints = s.KeyHints()
	if len(hints) != 1 || hints[0].Description != "Continue" {
		t.Errorf("unexpected correct-state hints: %v", hints)
	}
}

// drainHearts spends every heart at a fixed instant so regen stays away
// for the duration of the test.
func drainHearts(e *hearts.Economy) *hearts.Economy {
	now := time.Now()
	for e.Hearts() > 0 {
		e.Decrement(now)
	}
	return e
}
