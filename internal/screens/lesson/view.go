package lesson

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	drill "github.com/abhisek/texdrill/internal/lesson"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/ui/components"
	"github.com/abhisek/texdrill/internal/ui/layout"
	"github.com/abhisek/texdrill/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.gameOver {
		return s.renderGameOver(width)
	}

	q := s.session.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(s.renderProgressLine(width))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(s.session.Index())/float64(s.session.Len()), false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(instruction(q)))
	b.WriteString("\n\n")

	b.WriteString(s.renderPrompt(q, width))
	b.WriteString("\n\n")
	b.WriteString(s.renderAnswerArea(q, width))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	}

	if s.session.Status() != drill.StatusPending {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

func (s *LessonScreen) renderProgressLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", s.session.Index()+1, s.session.Len()))

	eco := s.profile.Economy
	right := lipgloss.NewStyle().
		Foreground(theme.Heart).
		Render(layout.RenderHearts(eco.Hearts(), eco.Max()))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// instruction is the one-line prompt above the question body.
func instruction(q *quiz.Question) string {
	if q.Prompt != "" {
		return q.Prompt
	}
	if q.Instruction != "" {
		return q.Instruction
	}
	switch q.Type {
	case quiz.TypeSelectCode:
		return "Select the LaTeX source for this notation"
	case quiz.TypeSelectFormula:
		return "Select the correct reading of this code"
	case quiz.TypeMatch:
		return "Match each notation with its source"
	case quiz.TypeCloze:
		return "Fill in the blanks"
	case quiz.TypeArrange:
		return "Arrange the tiles to build the source"
	case quiz.TypeInput:
		return "Type the LaTeX source for this notation"
	}
	return ""
}

// renderPrompt shows the formula or code being asked about.
func (s *LessonScreen) renderPrompt(q *quiz.Question, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)

	switch q.Type {
	case quiz.TypeSelectFormula:
		return style.Render(q.Code)
	case quiz.TypeCloze:
		return style.Render(s.renderClozeLine(q))
	case quiz.TypeMatch:
		return ""
	default:
		return style.Render(q.Formula)
	}
}

// renderClozeLine rebuilds the code line with blanks shown as slots.
func (s *LessonScreen) renderClozeLine(q *quiz.Question) string {
	var parts []string
	nextOpen := -1
	for _, idx := range s.clozeBlanks {
		if _, done := s.clozeFill[idx]; !done {
			nextOpen = idx
			break
		}
	}
	for i, seg := range q.Segments {
		switch seg.Type {
		case quiz.SegmentStatic:
			parts = append(parts, seg.Content)
		case quiz.SegmentBlank:
			if val, done := s.clozeFill[i]; done {
				parts = append(parts, "["+val+"]")
			} else if i == nextOpen {
				parts = append(parts, "[▸_◂]")
			} else {
				parts = append(parts, "[_]")
			}
		}
	}
	return strings.Join(parts, "")
}

func (s *LessonScreen) renderAnswerArea(q *quiz.Question, width int) string {
	switch q.Type {
	case quiz.TypeSelectCode, quiz.TypeSelectFormula, quiz.TypeCloze:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View())
	case quiz.TypeMatch:
		return s.renderBoard(width)
	case quiz.TypeArrange:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.tiles.View())
	case quiz.TypeInput:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
	}
	return ""
}

func (s *LessonScreen) renderBoard(width int) string {
	cards := s.board.Cards()
	var b strings.Builder
	for i, card := range cards {
		if i > 0 && card.Face != cards[i-1].Face {
			b.WriteString("\n")
		}

		prefix := "  "
		if i == s.boardCursor {
			prefix = "▸ "
		}
		line := prefix + "[" + card.Content + "]"

		var style lipgloss.Style
		switch {
		case s.board.Resolved(card.ID):
			style = lipgloss.NewStyle().Foreground(theme.Border)
		case s.board.SelectedID() == card.ID:
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		case i == s.boardCursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *LessonScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.session.Status() == drill.StatusCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render(s.session.Feedback()))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render(s.session.Feedback()))
	}
	return b.String()
}

func (s *LessonScreen) renderGameOver(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Out of hearts!"))
	b.WriteString("\n\n")

	if wait, ok := s.profile.Economy.TimeUntilNextHeart(time.Now()); ok {
		mins := int(wait.Minutes())
		secs := int(wait.Seconds()) % 60
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Next heart in %d:%02d — the lesson resumes automatically.", mins, secs)))
		b.WriteString("\n\n")
	}

	if s.profile.Economy.ShareRemaining(time.Now()) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render("[S] Share with a friend for an extra heart"))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("[Esc] Back to the unit map"))

	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this lesson?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Lesson progress is lost. Hearts and XP are kept."))
	b.WriteString("\n\n")

	yes := components.NewButton("Y  Leave", false, nil)
	no := components.NewButton("N  Keep going", true, nil)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		yes.View()+"   "+no.View()))

	return b.String()
}
