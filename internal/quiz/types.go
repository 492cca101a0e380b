package quiz

// QuestionType identifies one of the six drill variants.
type QuestionType string

const (
	// TypeSelectCode shows a rendered formula; the learner picks the code.
	TypeSelectCode QuestionType = "SELECT_CODE"
	// TypeSelectFormula shows code; the learner picks the formula it renders.
	TypeSelectFormula QuestionType = "SELECT_FORMULA"
	// TypeMatch pairs code cards with display cards.
	TypeMatch QuestionType = "MATCH"
	// TypeCloze fills blanks in a template from a set of options.
	TypeCloze QuestionType = "CLOZE"
	// TypeArrange orders tiles into a target sequence.
	TypeArrange QuestionType = "ARRANGE"
	// TypeInput accepts free-typed LaTeX.
	TypeInput QuestionType = "INPUT"
)

// SegmentType distinguishes fixed text from fillable blanks in a CLOZE template.
type SegmentType string

const (
	SegmentStatic SegmentType = "static"
	SegmentBlank  SegmentType = "blank"
)

// Segment is one piece of a CLOZE template. For a blank segment,
// Content is the correct answer for that blank.
type Segment struct {
	Type    SegmentType `json:"type"`
	Content string      `json:"content"`
}

// Pair is one code/display pairing in a MATCH question.
type Pair struct {
	Tex  string `json:"tex"`
	Code string `json:"code"`
}

// TileType categorizes an ARRANGE tile for display purposes only.
type TileType string

const (
	TileCommand  TileType = "command"
	TileOperator TileType = "operator"
	TileGroup    TileType = "group"
	TileAtom     TileType = "atom"
)

// Tile is a draggable token in an ARRANGE question.
type Tile struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Type    TileType `json:"type"`
}

// Question is the tagged union over all six variants. Type selects which
// fields apply; unused fields are zero. The catalog validator enforces the
// per-variant field invariants so grading can assume well-formed data, but
// Grade still fails closed on anything malformed.
type Question struct {
	ID     string       `json:"id"`
	Type   QuestionType `json:"type"`
	Prompt string       `json:"prompt"`

	// SELECT_CODE: Formula is the rendered target. SELECT_FORMULA: Code is
	// the source shown. INPUT: Formula is the display target (may be empty).
	Formula string `json:"formula,omitempty"`
	Code    string `json:"code,omitempty"`

	// SELECT_CODE / SELECT_FORMULA / CLOZE.
	Choices         []string `json:"choices,omitempty"`
	CorrectAnalysis string   `json:"correctAnalysis,omitempty"`

	// MATCH.
	Pairs []Pair `json:"pairs,omitempty"`

	// CLOZE. Model is display-only.
	Model    string    `json:"model,omitempty"`
	Template string    `json:"template,omitempty"`
	Segments []Segment `json:"segments,omitempty"`

	// ARRANGE. AlternativeSequences are accepted in addition to
	// CorrectSequence. OrderMatters defaults to true; when explicitly
	// false the sequence is graded as a multiset.
	InitialTiles         []Tile     `json:"initialTiles,omitempty"`
	CorrectSequence      []string   `json:"correctSequence,omitempty"`
	Distractors          []Tile     `json:"distractors,omitempty"`
	AlternativeSequences [][]string `json:"alternativeSequences,omitempty"`
	OrderMatters         *bool      `json:"orderMatters,omitempty"`

	// INPUT. Acceptable lists the canonical correct spellings.
	Acceptable  []string `json:"acceptable,omitempty"`
	Image       string   `json:"image,omitempty"`
	Instruction string   `json:"instruction,omitempty"`
}

// OrderSensitive reports whether an ARRANGE question requires the exact
// tile order. Absent means true.
func (q *Question) OrderSensitive() bool {
	return q.OrderMatters == nil || *q.OrderMatters
}

// Lesson is an ordered run of questions with a mastery threshold.
type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Threshold   float64    `json:"threshold"`
	Questions   []Question `json:"questions"`
}

// Unit groups lessons. Units unlock sequentially.
type Unit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}
