package lesson

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/texdrill/internal/quiz"
)

func testPairs() []quiz.Pair {
	return []quiz.Pair{
		{Tex: "x²", Code: "x^2"},
		{Tex: "x₂", Code: "x_2"},
		{Tex: "√x", Code: "\\sqrt{x}"},
	}
}

func TestBoardLayout(t *testing.T) {
	b := NewBoard(testPairs(), rand.New(rand.NewPCG(1, 2)))
	cards := b.Cards()
	if len(cards) != 6 {
		t.Fatalf("got %d cards, want 6", len(cards))
	}
	tex, code := 0, 0
	for _, c := range cards {
		switch c.Face {
		case FaceTex:
			tex++
		case FaceCode:
			code++
		}
	}
	if tex != 3 || code != 3 {
		t.Errorf("faces = %d tex / %d code, want 3/3", tex, code)
	}
	if b.Done() {
		t.Error("fresh board reports Done")
	}
}

func TestSelectPairProtocol(t *testing.T) {
	b := NewBoard(testPairs(), nil)

	if got := b.Select("tex-0"); got != OutcomeSelected {
		t.Fatalf("first click = %v, want OutcomeSelected", got)
	}
	if b.SelectedID() != "tex-0" {
		t.Errorf("SelectedID() = %q, want tex-0", b.SelectedID())
	}
	if got := b.Select("code-0"); got != OutcomeMatched {
		t.Fatalf("matching click = %v, want OutcomeMatched", got)
	}
	if !b.Resolved("tex-0") || !b.Resolved("code-0") {
		t.Error("matched cards not resolved")
	}
	if b.SelectedID() != "" {
		t.Errorf("selection not cleared after match: %q", b.SelectedID())
	}
}

func TestSelectMismatch(t *testing.T) {
	b := NewBoard(testPairs(), nil)

	b.Select("tex-0")
	if got := b.Select("code-1"); got != OutcomeMismatched {
		t.Fatalf("mismatching click = %v, want OutcomeMismatched", got)
	}
	if b.Resolved("tex-0") || b.Resolved("code-1") {
		t.Error("mismatched cards were resolved")
	}
	if b.SelectedID() != "" {
		t.Error("selection survived mismatch")
	}
}

func TestSelectSameFaceSwaps(t *testing.T) {
	b := NewBoard(testPairs(), nil)

	b.Select("tex-0")
	if got := b.Select("tex-1"); got != OutcomeSelected {
		t.Fatalf("same-face click = %v, want OutcomeSelected", got)
	}
	if b.SelectedID() != "tex-1" {
		t.Errorf("SelectedID() = %q, want tex-1", b.SelectedID())
	}
}

func TestSelectDeselects(t *testing.T) {
	b := NewBoard(testPairs(), nil)

	b.Select("tex-0")
	if got := b.Select("tex-0"); got != OutcomeDeselected {
		t.Fatalf("repeat click = %v, want OutcomeDeselected", got)
	}
	if b.SelectedID() != "" {
		t.Error("selection survived deselect")
	}
}

func TestLastMatchReportsDone(t *testing.T) {
	b := NewBoard(testPairs(), nil)

	b.Select("tex-0")
	b.Select("code-0")
	b.Select("tex-1")
	b.Select("code-1")
	b.Select("tex-2")
	if got := b.Select("code-2"); got != OutcomeDone {
		t.Fatalf("final match = %v, want OutcomeDone", got)
	}
	if !b.Done() {
		t.Error("Done() = false after all pairs matched")
	}
}

func TestResolvedAndUnknownCardsIgnored(t *testing.T) {
	b := NewBoard(testPairs(), nil)

	b.Select("tex-0")
	b.Select("code-0")
	if got := b.Select("tex-0"); got != OutcomeIgnored {
		t.Errorf("resolved card click = %v, want OutcomeIgnored", got)
	}
	if got := b.Select("nope"); got != OutcomeIgnored {
		t.Errorf("unknown card click = %v, want OutcomeIgnored", got)
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := NewBoard(testPairs(), rand.New(rand.NewPCG(7, 7)))
	b := NewBoard(testPairs(), rand.New(rand.NewPCG(7, 7)))
	ca, cb := a.Cards(), b.Cards()
	for i := range ca {
		if ca[i].ID != cb[i].ID {
			t.Fatalf("card %d differs: %q vs %q", i, ca[i].ID, cb[i].ID)
		}
	}
}
