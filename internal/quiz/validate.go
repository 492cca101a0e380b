package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateRaw checks a content file against the catalog JSON schema.
func validateRaw(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema compiles the catalog schema once and caches it.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw
		// bytes. Round-trip the definition to get a clean representation.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://catalog.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateCatalog enforces the cross-field invariants the JSON schema
// cannot express: global id uniqueness, per-variant required fields, and
// ARRANGE tile/sequence agreement.
func validateCatalog(units []Unit) error {
	lessonIDs := make(map[string]bool)
	questionIDs := make(map[string]bool)

	for _, u := range units {
		for _, l := range u.Lessons {
			if lessonIDs[l.ID] {
				return fmt.Errorf("duplicate lesson id %q", l.ID)
			}
			lessonIDs[l.ID] = true

			for i := range l.Questions {
				q := &l.Questions[i]
				if questionIDs[q.ID] {
					return fmt.Errorf("duplicate question id %q", q.ID)
				}
				questionIDs[q.ID] = true

				if err := validateQuestion(q); err != nil {
					return fmt.Errorf("question %q: %w", q.ID, err)
				}
			}
		}
	}
	return nil
}

func validateQuestion(q *Question) error {
	switch q.Type {
	case TypeSelectCode, TypeSelectFormula:
		if len(q.Choices) < 2 {
			return fmt.Errorf("needs at least 2 choices, got %d", len(q.Choices))
		}
		seen := make(map[string]bool, len(q.Choices))
		found := false
		for _, c := range q.Choices {
			if seen[c] {
				return fmt.Errorf("duplicate choice %q", c)
			}
			seen[c] = true
			if c == q.CorrectAnalysis {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("correctAnalysis %q is not among the choices", q.CorrectAnalysis)
		}

	case TypeMatch:
		if len(q.Pairs) == 0 {
			return fmt.Errorf("needs at least one pair")
		}

	case TypeCloze:
		blanks := 0
		for i, seg := range q.Segments {
			if seg.Type == SegmentBlank {
				blanks++
				if seg.Content == "" {
					return fmt.Errorf("blank segment %d has empty content", i)
				}
			}
		}
		if blanks == 0 {
			return fmt.Errorf("needs at least one blank segment")
		}
		if len(q.Choices) == 0 {
			return fmt.Errorf("needs fill choices")
		}

	case TypeArrange:
		if len(q.CorrectSequence) != len(q.InitialTiles) {
			return fmt.Errorf("correctSequence length %d != initialTiles length %d",
				len(q.CorrectSequence), len(q.InitialTiles))
		}
		contents := make([]string, len(q.InitialTiles))
		for i, t := range q.InitialTiles {
			contents[i] = t.Content
		}
		if !equalMultiset(contents, q.CorrectSequence) {
			return fmt.Errorf("initialTiles contents do not match correctSequence")
		}
		for i, alt := range q.AlternativeSequences {
			if !equalMultiset(alt, q.CorrectSequence) {
				return fmt.Errorf("alternativeSequences[%d] is not a permutation of correctSequence", i)
			}
		}

	case TypeInput:
		if len(q.Acceptable) == 0 {
			return fmt.Errorf("needs at least one acceptable answer")
		}

	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
