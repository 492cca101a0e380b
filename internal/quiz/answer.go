package quiz

import (
	"sort"
	"strings"
	"unicode"
)

// Submission is the typed answer a learner hands in. The concrete shape
// depends on the question variant:
//
//	SELECT_CODE / SELECT_FORMULA  ChoiceSubmission (the chosen string)
//	MATCH                         MatchSubmission (true once the board resolves)
//	CLOZE                         ClozeSubmission (blank segment index → choice)
//	ARRANGE                       SequenceSubmission (tile contents in order)
//	INPUT                         TextSubmission (raw typed string)
type Submission interface{ isSubmission() }

type ChoiceSubmission string

type MatchSubmission bool

type ClozeSubmission map[int]string

type SequenceSubmission []string

type TextSubmission string

func (ChoiceSubmission) isSubmission()   {}
func (MatchSubmission) isSubmission()    {}
func (ClozeSubmission) isSubmission()    {}
func (SequenceSubmission) isSubmission() {}
func (TextSubmission) isSubmission()     {}

// Grade reports whether the submission answers the question correctly.
// It is pure: no side effects, safe to call repeatedly. A submission whose
// shape does not fit the question's variant, or a question of unknown type,
// grades as incorrect rather than panicking; content is validated at load
// but bad data must never crash a session.
func Grade(q *Question, sub Submission) bool {
	if q == nil || sub == nil {
		return false
	}

	switch q.Type {
	case TypeSelectCode, TypeSelectFormula:
		choice, ok := sub.(ChoiceSubmission)
		return ok && string(choice) == q.CorrectAnalysis

	case TypeMatch:
		// Correctness of a MATCH question is a process outcome: the board
		// reports true when every pair has been reciprocally matched.
		done, ok := sub.(MatchSubmission)
		return ok && bool(done)

	case TypeCloze:
		filled, ok := sub.(ClozeSubmission)
		if !ok {
			return false
		}
		return gradeCloze(q.Segments, filled)

	case TypeArrange:
		seq, ok := sub.(SequenceSubmission)
		if !ok {
			return false
		}
		return gradeArrange(q, seq)

	case TypeInput:
		text, ok := sub.(TextSubmission)
		if !ok {
			return false
		}
		return gradeInput(q.Acceptable, string(text))
	}

	return false
}

// gradeCloze requires every blank segment to be filled with exactly its
// content. Comparison is case-sensitive with no trimming; static segments
// are ignored.
func gradeCloze(segments []Segment, filled ClozeSubmission) bool {
	blanks := 0
	for i, seg := range segments {
		if seg.Type != SegmentBlank {
			continue
		}
		blanks++
		if seg.Content == "" {
			return false // ungradable blank
		}
		if filled[i] != seg.Content {
			return false
		}
	}
	return blanks > 0
}

// gradeArrange checks the primary sequence, then alternatives, then falls
// back to multiset equality when tile order is declared insignificant.
func gradeArrange(q *Question, seq []string) bool {
	if len(q.CorrectSequence) == 0 {
		return false
	}
	if equalSeq(seq, q.CorrectSequence) {
		return true
	}
	for _, alt := range q.AlternativeSequences {
		if equalSeq(seq, alt) {
			return true
		}
	}
	if !q.OrderSensitive() {
		return equalMultiset(seq, q.CorrectSequence)
	}
	return false
}

// gradeInput strips all whitespace from both sides and compares bytes.
// No case folding and no LaTeX-semantic equivalence: `x ^ 2` matches
// `x^2` but `X^2` does not.
func gradeInput(acceptable []string, text string) bool {
	got := stripWhitespace(text)
	if got == "" {
		return false
	}
	for _, acc := range acceptable {
		if got == stripWhitespace(acc) {
			return true
		}
	}
	return false
}

func equalSeq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	return equalSeq(as, bs)
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
