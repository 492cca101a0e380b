package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/texdrill/internal/ui/theme"
)

// TileBank lets the user build a token sequence by picking tiles from a
// shuffled bank. Placed tiles leave the bank; backspace returns the
// most recent one.
type TileBank struct {
	tiles    []string
	used     []bool
	cursor   int
	placed   []int
	resolved bool
	correct  bool
}

// NewTileBank creates a bank over the given tile contents.
func NewTileBank(tiles []string) TileBank {
	return TileBank{
		tiles: tiles,
		used:  make([]bool, len(tiles)),
	}
}

// Update handles tile navigation, placement and removal.
func (t TileBank) Update(msg tea.Msg) (TileBank, tea.Cmd) {
	if t.resolved {
		return t, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch kmsg.String() {
	case "left", "h":
		t.cursor = t.prevFree(t.cursor)
	case "right", "l":
		t.cursor = t.nextFree(t.cursor)
	case "enter", " ":
		if t.cursor >= 0 && t.cursor < len(t.tiles) && !t.used[t.cursor] {
			t.used[t.cursor] = true
			t.placed = append(t.placed, t.cursor)
			t.cursor = t.nextFree(t.cursor)
		}
	case "backspace":
		if n := len(t.placed); n > 0 {
			last := t.placed[n-1]
			t.placed = t.placed[:n-1]
			t.used[last] = false
			t.cursor = last
		}
	}

	return t, nil
}

// prevFree returns the nearest unused tile index left of from, or from.
func (t TileBank) prevFree(from int) int {
	for i := from - 1; i >= 0; i-- {
		if !t.used[i] {
			return i
		}
	}
	return from
}

// nextFree returns the nearest unused tile index right of from, falling
// back to the first unused tile anywhere.
func (t TileBank) nextFree(from int) int {
	for i := from + 1; i < len(t.tiles); i++ {
		if !t.used[i] {
			return i
		}
	}
	for i := 0; i < len(t.tiles); i++ {
		if !t.used[i] {
			return i
		}
	}
	return from
}

// Sequence returns the placed tile contents in order.
func (t TileBank) Sequence() []string {
	out := make([]string, 0, len(t.placed))
	for _, idx := range t.placed {
		out = append(out, t.tiles[idx])
	}
	return out
}

// HasPlacement reports whether at least one tile has been placed.
func (t TileBank) HasPlacement() bool {
	return len(t.placed) > 0
}

// Resolve locks the bank and colors the built sequence.
func (t *TileBank) Resolve(correct bool) {
	t.resolved = true
	t.correct = correct
}

// Reset clears placements for another attempt.
func (t *TileBank) Reset() {
	t.placed = t.placed[:0]
	for i := range t.used {
		t.used[i] = false
	}
	t.cursor = 0
	t.resolved = false
	t.correct = false
}

// View renders the built sequence above the remaining bank.
func (t TileBank) View() string {
	var b strings.Builder

	seqStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if t.resolved {
		if t.correct {
			seqStyle = seqStyle.Foreground(theme.Success)
		} else {
			seqStyle = seqStyle.Foreground(theme.Error)
		}
	}

	seq := strings.Join(t.Sequence(), " ")
	if seq == "" {
		seq = "·"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answer:  "))
	b.WriteString(seqStyle.Render(seq))
	b.WriteString("\n\n")

	for i, tile := range t.tiles {
		var style lipgloss.Style
		switch {
		case t.used[i]:
			style = lipgloss.NewStyle().Foreground(theme.Border)
		case i == t.cursor && !t.resolved:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render("[" + tile + "]"))
		b.WriteString(" ")
	}

	return b.String()
}
