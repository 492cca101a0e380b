package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/texdrill/internal/router"
	"github.com/abhisek/texdrill/internal/screen"
	"github.com/abhisek/texdrill/internal/ui/layout"
	"github.com/abhisek/texdrill/internal/ui/theme"
)

// Result carries everything the summary needs from a finished lesson.
type Result struct {
	LessonTitle string
	Score       float64
	XPEarned    int
	TotalXP     int
	Streak      int
	Missed      int
	Questions   int
	Mastered    bool
}

// SummaryScreen displays the lesson result.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Lesson Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Lesson complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(r.LessonTitle))
	b.WriteString("\n\n")

	// Stats line.
	correct := r.Questions - r.Missed
	statsLine := fmt.Sprintf("Questions: %d        First try: %d        Score: %.0f%%",
		r.Questions, correct, r.Score*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	// XP and streak.
	xpLine := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("+%d XP", r.XPEarned))
	totalLine := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  (%d total)", r.TotalXP))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, xpLine+totalLine))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d day streak", r.Streak)))
	b.WriteString("\n\n")

	if r.Mastered {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("★ Lesson mastered! ★"))
		b.WriteString("\n\n")
	} else if r.Missed > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d to review. Replay the lesson to master it.", r.Missed)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to continue"))

	return b.String()
}
