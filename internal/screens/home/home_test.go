package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

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
func (m *mockSnapshotRepo) Prune(_ context.Context, _ int) error     { return nil }
func (m *mockSnapshotRepo) DeleteAll(_ context.Context) error     { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testHome(t *testing.T) (*HomeScreen, *mockSnapshotRepo) {
	t.Helper()
	catalog, err := quiz.Builtin()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	repo := &mockSnapshotRepo{}
	return New(profile.Fresh(), catalog, repo), repo
}

func TestHomeScreen_Title(t *testing.T) {
	h, _ := testHome(t)
	if h.Title() != "Units" {
		t.Errorf("Title = %q, want %q", h.Title(), "Units")
	}

	h.profile.Name = "Ada"
	if h.Title() != "Hi, Ada" {
		t.Errorf("Title = %q, want %q", h.Title(), "Hi, Ada")
	}
}

func TestHomeScreen_CursorStartsOnLesson(t *testing.T) {
	h, _ := testHome(t)
	if h.rows[h.cursor].kind != rowLesson {
		t.Error("expected cursor on a lesson row")
	}
}

func TestHomeScreen_NavigationSkipsHeaders(t *testing.T) {
	h, _ := testHome(t)

	// Walk down the whole list; the cursor must never rest on a header.
	for i := 0; i < len(h.rows); i++ {
		h.Update(keyPress('j'))
		if h.rows[h.cursor].kind != rowLesson {
			t.Fatalf("cursor on header row %d", h.cursor)
		}
	}
	// And back up.
	for i := 0; i < len(h.rows); i++ {
		h.Update(keyPress('k'))
		if h.rows[h.cursor].kind != rowLesson {
			t.Fatalf("cursor on header row %d", h.cursor)
		}
	}
}

func TestHomeScreen_EnterStartsUnlockedLesson(t *testing.T) {
	h, _ := testHome(t)
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command starting the first lesson")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg for the lesson screen")
	}
}

func TestHomeScreen_LockedLessonBlocked(t *testing.T) {
	h, _ := testHome(t)

	// Move to the last lesson, which sits in a locked unit for a fresh
	// profile.
	for i := 0; i < len(h.rows); i++ {
		h.Update(keyPress('j'))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("expected no command for a locked lesson")
	}
	if !strings.Contains(h.notice, "locked") {
		t.Errorf("notice = %q, want lock message", h.notice)
	}
}

func TestHomeScreen_NoHeartsBlocked(t *testing.T) {
	h, _ := testHome(t)
	now := time.Now()
	for h.profile.Economy.Hearts() > 0 {
		h.profile.Economy.Decrement(now)
	}

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("expected no command with zero hearts")
	}
	if !strings.Contains(h.notice, "Out of hearts") {
		t.Errorf("notice = %q, want out-of-hearts message", h.notice)
	}
}

func TestHomeScreen_ShareForHeart(t *testing.T) {
	h, repo := testHome(t)

	// Full hearts: nothing granted.
	h.Update(keyPress('s'))
	if !strings.Contains(h.notice, "full") {
		t.Errorf("notice = %q, want full-hearts message", h.notice)
	}

	h.profile.Economy.Decrement(time.Now())
	before := h.profile.Economy.Hearts()
	h.Update(keyPress('s'))
	if got := h.profile.Economy.Hearts(); got != before+1 {
		t.Errorf("hearts = %d, want %d", got, before+1)
	}
	if len(repo.snapshots) == 0 {
		t.Error("expected a save after a granted share")
	}
}

func TestHomeScreen_ShareCapExhausted(t *testing.T) {
	h, _ := testHome(t)
	now := time.Now()

	for i := 0; i < 3; i++ {
		h.profile.Economy.Decrement(now)
		h.profile.Economy.ShareForHeart(now)
	}
	h.profile.Economy.Decrement(now)

	h.Update(keyPress('s'))
	if !strings.Contains(h.notice, "No shares left") {
		t.Errorf("notice = %q, want cap message", h.notice)
	}
}

func TestHomeScreen_ViewListsUnits(t *testing.T) {
	h, _ := testHome(t)
	view := h.View(80, 40)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	first := h.catalog.Units[0]
	if !strings.Contains(view, strings.ToUpper(first.Title)) {
		t.Errorf("expected first unit title %q in view", first.Title)
	}
	if !strings.Contains(view, first.Lessons[0].Title) {
		t.Errorf("expected first lesson title %q in view", first.Lessons[0].Title)
	}
}

func TestHomeScreen_RegenLine(t *testing.T) {
	h, _ := testHome(t)
	now := time.Now()

	if got := h.regenLine(now); got != "Hearts are full." {
		t.Errorf("regenLine = %q, want full message", got)
	}

	h.profile.Economy.Decrement(now)
	if got := h.regenLine(now); !strings.Contains(got, "Next heart in") {
		t.Errorf("regenLine = %q, want countdown", got)
	}
}
