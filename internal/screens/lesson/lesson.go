// Package lesson is the interactive drill screen: one question at a
// time, hearts on the line, retry until right.
package lesson

import (
	"context"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	drill "github.com/abhisek/texdrill/internal/lesson"
	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/progress"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/router"
	"github.com/abhisek/texdrill/internal/screen"
	"github.com/abhisek/texdrill/internal/screens/summary"
	"github.com/abhisek/texdrill/internal/store"
	"github.com/abhisek/texdrill/internal/ui/components"
	"github.com/abhisek/texdrill/internal/ui/layout"
)

// tickMsg drives countdowns: the game-over regen clock and the heart
// meter in the view.
type tickMsg time.Time

// LessonScreen runs a single lesson attempt.
type LessonScreen struct {
	profile  *profile.Profile
	catalog  *quiz.Catalog
	snapRepo store.SnapshotRepo
	lesson   *quiz.Lesson

	session *drill.Session

	// Per-question input state. Which one is live depends on the
	// current question's type.
	choices     components.ChoiceList
	tiles       components.TileBank
	input       components.TextInput
	board       *drill.Board
	boardCursor int
	clozeBlanks []int
	clozeFill   map[int]string

	gameOver    bool
	quitConfirm bool
	notice      string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.EscapeHandler = (*LessonScreen)(nil)

// New starts a screen for the given lesson.
func New(p *profile.Profile, catalog *quiz.Catalog, snapRepo store.SnapshotRepo, l *quiz.Lesson) *LessonScreen {
	s := &LessonScreen{
		profile:  p,
		catalog:  catalog,
		snapRepo: snapRepo,
		lesson:   l,
		session:  drill.NewSession(l.ID, l.Questions, p.Economy),
	}
	s.setupQuestion()
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), tickCmd())
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

// HandlesEscape keeps Esc routed here so leaving mid-lesson always goes
// through the confirmation overlay.
func (s *LessonScreen) HandlesEscape() bool {
	return true
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave lesson"},
			{Key: "N", Description: "Keep going"},
		}
	case s.gameOver:
		hints := []layout.KeyHint{}
		if s.profile.Economy.ShareRemaining(time.Now()) > 0 {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Share for a heart"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back to units"})
	case s.session.Status() == drill.StatusCorrect:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case s.session.Status() == drill.StatusIncorrect:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit lesson"},
		}
	}
}

// setupQuestion resets the input widgets for the current question.
func (s *LessonScreen) setupQuestion() {
	q := s.session.Current()
	if q == nil {
		return
	}
	s.notice = ""
	s.board = nil
	s.clozeBlanks = nil
	s.clozeFill = nil

	switch q.Type {
	case quiz.TypeSelectCode, quiz.TypeSelectFormula:
		s.choices = components.NewChoiceList(q.Choices)
	case quiz.TypeMatch:
		s.board = drill.NewBoard(q.Pairs, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		s.boardCursor = 0
	case quiz.TypeCloze:
		s.choices = components.NewChoiceList(q.Choices)
		for i, seg := range q.Segments {
			if seg.Type == quiz.SegmentBlank {
				s.clozeBlanks = append(s.clozeBlanks, i)
			}
		}
		s.clozeFill = make(map[int]string)
	case quiz.TypeArrange:
		contents := make([]string, 0, len(q.InitialTiles)+len(q.Distractors))
		for _, tile := range q.InitialTiles {
			contents = append(contents, tile.Content)
		}
		for _, tile := range q.Distractors {
			contents = append(contents, tile.Content)
		}
		rand.Shuffle(len(contents), func(i, j int) {
			contents[i], contents[j] = contents[j], contents[i]
		})
		s.tiles = components.NewTileBank(contents)
	case quiz.TypeInput:
		s.input = components.NewTextInput("Type the LaTeX source...", false, 60)
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(time.Time(msg))
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward non-key messages to the text input (cursor blink etc).
	if q := s.session.Current(); q != nil && q.Type == quiz.TypeInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleTick(now time.Time) (screen.Screen, tea.Cmd) {
	if s.profile.Economy.CheckRegen(now) {
		s.saveProfile()
		// A regenerated heart ends the block: retry the question.
		if s.gameOver && s.profile.Economy.Hearts() > 0 {
			s.resumeFromGameOver()
		}
	}
	return s, tickCmd()
}

// resumeFromGameOver clears the overlay and rearms the question.
func (s *LessonScreen) resumeFromGameOver() {
	s.gameOver = false
	s.session.Retry()
	s.resetAttempt()
}

// resetAttempt rearms the input widgets after a wrong answer without
// discarding board progress on match questions.
func (s *LessonScreen) resetAttempt() {
	q := s.session.Current()
	if q == nil {
		return
	}
	switch q.Type {
	case quiz.TypeSelectCode, quiz.TypeSelectFormula:
		s.choices.Reset()
	case quiz.TypeCloze:
		s.choices.Reset()
		s.clozeFill = make(map[int]string)
	case quiz.TypeArrange:
		s.tiles.Reset()
	case quiz.TypeInput:
		s.input = components.NewTextInput("Type the LaTeX source...", false, 60)
	}
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			s.saveProfile()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.gameOver {
		switch key {
		case "s", "S":
			if s.profile.Economy.ShareForHeart(time.Now()).Granted {
				s.saveProfile()
				s.resumeFromGameOver()
			}
		case "esc":
			s.saveProfile()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	switch s.session.Status() {
	case drill.StatusCorrect:
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	case drill.StatusIncorrect:
		if key == "enter" {
			s.session.Retry()
			s.resetAttempt()
		}
		return s, nil
	}

	return s.handleAnswerKey(msg)
}

// handleAnswerKey routes input while the current question is pending.
func (s *LessonScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.session.Current()
	if q == nil {
		return s, nil
	}
	key := msg.String()

	switch q.Type {
	case quiz.TypeSelectCode, quiz.TypeSelectFormula:
		if key == "enter" {
			return s.check(quiz.ChoiceSubmission(s.choices.Value()))
		}
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd

	case quiz.TypeMatch:
		return s.handleMatchKey(key)

	case quiz.TypeCloze:
		return s.handleClozeKey(msg)

	case quiz.TypeArrange:
		if key == "enter" && s.tiles.HasPlacement() {
			return s.check(quiz.SequenceSubmission(s.tiles.Sequence()))
		}
		var cmd tea.Cmd
		s.tiles, cmd = s.tiles.Update(msg)
		return s, cmd

	case quiz.TypeInput:
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.check(quiz.TextSubmission(s.input.Value()))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleMatchKey(key string) (screen.Screen, tea.Cmd) {
	cards := s.board.Cards()
	switch key {
	case "up", "k":
		for i := s.boardCursor - 1; i >= 0; i-- {
			if !s.board.Resolved(cards[i].ID) {
				s.boardCursor = i
				break
			}
		}
	case "down", "j":
		for i := s.boardCursor + 1; i < len(cards); i++ {
			if !s.board.Resolved(cards[i].ID) {
				s.boardCursor = i
				break
			}
		}
	case "enter", " ":
		now := time.Now()
		switch s.board.Select(cards[s.boardCursor].ID) {
		case drill.OutcomeMismatched:
			// Same cost as a wrong submission, but the board keeps
			// its matched pairs and play continues.
			s.session.Resolve(false, "", now)
			s.session.Retry()
			s.notice = "Not a match. -1 ♥"
			if s.profile.Economy.Hearts() == 0 {
				s.gameOver = true
				s.saveProfile()
			}
		case drill.OutcomeDone:
			s.session.Resolve(true, "All pairs matched!", now)
		case drill.OutcomeMatched:
			s.notice = "Matched!"
		case drill.OutcomeSelected, drill.OutcomeDeselected:
			s.notice = ""
		}
	}
	return s, nil
}

func (s *LessonScreen) handleClozeKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "enter":
		if len(s.clozeFill) < len(s.clozeBlanks) {
			// Fill the next open blank with the highlighted choice.
			for _, idx := range s.clozeBlanks {
				if _, done := s.clozeFill[idx]; !done {
					s.clozeFill[idx] = s.choices.Value()
					break
				}
			}
			return s, nil
		}
		sub := make(quiz.ClozeSubmission, len(s.clozeFill))
		for idx, val := range s.clozeFill {
			sub[idx] = val
		}
		return s.check(sub)
	case "backspace":
		for i := len(s.clozeBlanks) - 1; i >= 0; i-- {
			if _, done := s.clozeFill[s.clozeBlanks[i]]; done {
				delete(s.clozeFill, s.clozeBlanks[i])
				break
			}
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

// check submits the staged answer and reacts to the outcome.
func (s *LessonScreen) check(sub quiz.Submission) (screen.Screen, tea.Cmd) {
	now := time.Now()
	s.session.SetSelection(sub)
	correct := s.session.Submit(now)

	s.markResolved(correct)
	if !correct {
		if s.profile.Economy.Hearts() == 0 {
			s.gameOver = true
		}
		s.saveProfile()
	}
	return s, nil
}

// markResolved colors whichever widget took the answer.
func (s *LessonScreen) markResolved(correct bool) {
	q := s.session.Current()
	if q == nil {
		return
	}
	switch q.Type {
	case quiz.TypeSelectCode, quiz.TypeSelectFormula, quiz.TypeCloze:
		s.choices.Resolve(correct)
	case quiz.TypeArrange:
		s.tiles.Resolve(correct)
	case quiz.TypeInput:
		s.input.Submit(correct)
	}
}

// advance moves to the next question or finishes the lesson.
func (s *LessonScreen) advance() (screen.Screen, tea.Cmd) {
	s.session.Next()
	if !s.session.Finished() {
		s.setupQuestion()
		return s, s.input.Init()
	}
	return s.finishLesson()
}

// finishLesson records the result, awards XP and swaps in the summary.
func (s *LessonScreen) finishLesson() (screen.Screen, tea.Cmd) {
	now := time.Now()
	score := s.session.Score()

	ledger := s.profile.Ledger
	ledger.CompleteLesson(s.lesson.ID, score, now)
	ledger.AddXP(progress.XPPerLesson)
	ledger.UpdateStreak(now)
	s.saveProfile()

	result := summary.Result{
		LessonTitle: s.lesson.Title,
		Score:       score,
		XPEarned:    progress.XPPerLesson,
		TotalXP:     ledger.XP,
		Streak:      ledger.Streak,
		Missed:      len(s.session.Missed()),
		Questions:   s.session.Len(),
		Mastered:    ledger.LessonMastered(s.lesson),
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

func (s *LessonScreen) saveProfile() {
	if s.snapRepo == nil {
		return
	}
	_ = s.profile.Save(context.Background(), s.snapRepo, s.catalog)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
