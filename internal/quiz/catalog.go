package quiz

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed content.json
var builtinContent []byte

// Catalog is the immutable question bank: an ordered list of units, with
// lookup indexes by lesson and question id. Loaded once at startup;
// sessions snapshot lesson question lists and never mutate the catalog.
type Catalog struct {
	Units []Unit

	lessonsByID   map[string]*Lesson
	unitByLesson  map[string]*Unit
	questionsByID map[string]*Question
}

// LoadCatalog parses and validates a content file.
func LoadCatalog(raw []byte) (*Catalog, error) {
	if err := validateRaw(raw); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}

	var doc struct {
		Units []Unit `json:"units"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	if err := validateCatalog(doc.Units); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{
		Units:         doc.Units,
		lessonsByID:   make(map[string]*Lesson),
		unitByLesson:  make(map[string]*Unit),
		questionsByID: make(map[string]*Question),
	}
	for ui := range c.Units {
		u := &c.Units[ui]
		for li := range u.Lessons {
			l := &u.Lessons[li]
			c.lessonsByID[l.ID] = l
			c.unitByLesson[l.ID] = u
			for qi := range l.Questions {
				q := &l.Questions[qi]
				c.questionsByID[q.ID] = q
			}
		}
	}
	return c, nil
}

// Builtin loads the embedded question bank. The embedded content is
// validated like any external file; an error here is a packaging bug.
func Builtin() (*Catalog, error) {
	return LoadCatalog(builtinContent)
}

// Lesson returns the lesson with the given id, or nil.
func (c *Catalog) Lesson(id string) *Lesson {
	return c.lessonsByID[id]
}

// UnitOf returns the unit containing the given lesson id, or nil.
func (c *Catalog) UnitOf(lessonID string) *Unit {
	return c.unitByLesson[lessonID]
}

// Question returns the question with the given id, or nil.
func (c *Catalog) Question(id string) *Question {
	return c.questionsByID[id]
}
