package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/texdrill/internal/ui/layout"
	"github.com/abhisek/texdrill/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, h.renderHeartLine(width))
	lines = append(lines, "")

	for i, r := range h.rows {
		switch r.kind {
		case rowUnitHeader:
			lines = append(lines, h.renderUnitHeader(i, width))
		case rowLesson:
			lines = append(lines, h.renderLessonRow(i, width))
		}
	}

	if h.notice != "" {
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(h.notice))
	}

	body := strings.Join(lines, "\n")
	return h.clipToViewport(body, height)
}

// clipToViewport keeps the cursor row visible when the map is taller
// than the content area.
func (h *HomeScreen) clipToViewport(body string, height int) string {
	rows := strings.Split(body, "\n")
	if len(rows) <= height || height <= 0 {
		return body
	}

	// The cursor's screen line: 3 fixed lines above the map plus one
	// line per row before it.
	cursorLine := 3 + h.cursor
	top := cursorLine - height/2
	if top < 0 {
		top = 0
	}
	if top+height > len(rows) {
		top = len(rows) - height
	}
	return strings.Join(rows[top:top+height], "\n")
}

func (h *HomeScreen) renderHeartLine(width int) string {
	eco := h.profile.Economy
	meter := lipgloss.NewStyle().
		Foreground(theme.Heart).
		Render(layout.RenderHearts(eco.Hearts(), eco.Max()))

	line := meter
	if regen := h.regenLine(time.Now()); regen != "" {
		line += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("   " + regen)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(line)
}

func (h *HomeScreen) renderUnitHeader(i, width int) string {
	unit := h.rows[i].unit
	name := strings.ToUpper(unit.Title)

	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if !h.profile.Ledger.UnitUnlocked(h.catalog, unit.ID) {
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
		name += "  🔒"
	}
	return "  " + style.Render(name)
}

func (h *HomeScreen) renderLessonRow(i, width int) string {
	r := h.rows[i]
	available := h.profile.Ledger.LessonAvailable(h.catalog, r.lesson.ID)

	marker := h.star(r.lesson)
	if !available {
		marker = "🔒"
	}

	scoreStr := ""
	if score, ok := h.profile.Ledger.BestScore(r.lesson.ID); ok {
		scoreStr = fmt.Sprintf("  %d%%", int(score*100))
	}

	line := fmt.Sprintf("    %s  %s%s", marker, r.lesson.Title, scoreStr)

	var style lipgloss.Style
	switch {
	case i == h.cursor && available:
		line = "  ▸" + line[3:]
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	case i == h.cursor:
		line = "  ▸" + line[3:]
		style = lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	case available:
		style = lipgloss.NewStyle().Foreground(theme.Text)
	default:
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}
	return style.Render(line)
}
