package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/router"
	"github.com/abhisek/texdrill/internal/screen"
	"github.com/abhisek/texdrill/internal/screens/home"
	"github.com/abhisek/texdrill/internal/store"
	"github.com/abhisek/texdrill/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	profile *profile.Profile
	router  *router.Router
	width   int
	height  int
}

// newAppModel creates the root model with the home screen on the stack.
func newAppModel(p *profile.Profile, catalog *quiz.Catalog, snapRepo store.SnapshotRepo) AppModel {
	homeScreen := home.New(p, catalog, snapRepo)
	return AppModel{
		profile: p,
		router:  router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens with confirmation overlays own the Esc key.
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	stats := layout.HeaderStats{
		XP:        m.profile.Ledger.XP,
		Streak:    m.profile.Ledger.Streak,
		Hearts:    m.profile.Economy.Hearts(),
		MaxHearts: m.profile.Economy.Max(),
	}
	header := layout.RenderHeader(title, stats, m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen first, then falls back on stock
// hints for the stack position.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program over a loaded profile. The profile
// is saved once more on exit so heart regen earned while the UI was
// open survives.
func Run(p *profile.Profile, catalog *quiz.Catalog, snapRepo store.SnapshotRepo) error {
	prog := tea.NewProgram(newAppModel(p, catalog, snapRepo))
	if _, err := prog.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}

	p.Economy.CheckRegen(time.Now())
	return p.Save(context.Background(), snapRepo, catalog)
}
