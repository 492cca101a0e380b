package lesson

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/texdrill/internal/quiz"
)

// CardFace says which side of a pairing a card shows.
type CardFace int

const (
	// FaceTex shows rendered notation.
	FaceTex CardFace = iota
	// FaceCode shows the raw source.
	FaceCode
)

// Card is one selectable tile on a match board. Cards sharing a pair
// index belong together.
type Card struct {
	ID      string
	Content string
	Face    CardFace
	pair    int
}

// Outcome is the result of selecting a card.
type Outcome int

const (
	// OutcomeIgnored means the selection had no effect.
	OutcomeIgnored Outcome = iota
	// OutcomeSelected means the card is now the pending half of a pair.
	OutcomeSelected
	// OutcomeDeselected means the pending card was clicked again.
	OutcomeDeselected
	// OutcomeMatched means the two selected cards belong together.
	OutcomeMatched
	// OutcomeMismatched means the two selected cards do not belong together.
	OutcomeMismatched
	// OutcomeDone means the match completed the board.
	OutcomeDone
)

// Board is the state of a pair-matching question: every tex card must
// be joined to its code card. Mismatches are reported to the caller,
// which treats them as wrong answers.
type Board struct {
	cards    []Card
	resolved map[string]bool
	selected string
	pairs    int
	matched  int
}

// NewBoard lays out a board from the question's pairs. Both faces are
// shuffled independently so pairs never line up by position.
func NewBoard(pairs []quiz.Pair, rng *rand.Rand) *Board {
	b := &Board{
		resolved: make(map[string]bool),
		pairs:    len(pairs),
	}
	tex := make([]Card, 0, len(pairs))
	code := make([]Card, 0, len(pairs))
	for i, p := range pairs {
		tex = append(tex, Card{
			ID:      fmt.Sprintf("tex-%d", i),
			Content: p.Tex,
			Face:    FaceTex,
			pair:    i,
		})
		code = append(code, Card{
			ID:      fmt.Sprintf("code-%d", i),
			Content: p.Code,
			Face:    FaceCode,
			pair:    i,
		})
	}
	if rng != nil {
		rng.Shuffle(len(tex), func(i, j int) { tex[i], tex[j] = tex[j], tex[i] })
		rng.Shuffle(len(code), func(i, j int) { code[i], code[j] = code[j], code[i] })
	}
	b.cards = append(tex, code...)
	return b
}

// Cards returns every card in display order: tex faces first, then code.
func (b *Board) Cards() []Card {
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Resolved reports whether a card has been matched away.
func (b *Board) Resolved(id string) bool { return b.resolved[id] }

// SelectedID returns the pending card's ID, or "" when none is pending.
func (b *Board) SelectedID() string { return b.selected }

// Done reports whether every pair has been matched.
func (b *Board) Done() bool { return b.matched == b.pairs }

// Select processes a click on a card. The first click of a pair marks
// the card pending; the second resolves the pair or reports a mismatch.
// Resolved or unknown cards are ignored. Selecting two cards of the
// same face swaps the pending card instead of comparing.
func (b *Board) Select(id string) Outcome {
	card := b.find(id)
	if card == nil || b.resolved[id] || b.Done() {
		return OutcomeIgnored
	}
	if b.selected == "" {
		b.selected = id
		return OutcomeSelected
	}
	if b.selected == id {
		b.selected = ""
		return OutcomeDeselected
	}
	prev := b.find(b.selected)
	if prev.Face == card.Face {
		b.selected = id
		return OutcomeSelected
	}
	if prev.pair == card.pair {
		b.resolved[prev.ID] = true
		b.resolved[card.ID] = true
		b.selected = ""
		b.matched++
		if b.Done() {
			return OutcomeDone
		}
		return OutcomeMatched
	}
	b.selected = ""
	return OutcomeMismatched
}

func (b *Board) find(id string) *Card {
	for i := range b.cards {
		if b.cards[i].ID == id {
			return &b.cards[i]
		}
	}
	return nil
}
