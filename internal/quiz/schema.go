package quiz

// catalogSchema is the JSON schema every content file must satisfy before
// the catalog accepts it. Structural constraints only; cross-field
// invariants (unique ids, tile/sequence agreement) are checked in
// validate.go after decoding.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"units": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"title":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"lessons": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    lessonSchema,
					},
				},
				"required":             []any{"id", "title", "lessons"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"units"},
	"additionalProperties": false,
}

var lessonSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":          map[string]any{"type": "string", "minLength": 1},
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"threshold":   map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    questionSchema,
		},
	},
	"required":             []any{"id", "title", "threshold", "questions"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{"type": "string", "minLength": 1},
		"type": map[string]any{
			"enum": []any{
				"SELECT_CODE", "SELECT_FORMULA", "MATCH",
				"CLOZE", "ARRANGE", "INPUT",
			},
		},
		"prompt":          map[string]any{"type": "string"},
		"formula":         map[string]any{"type": "string"},
		"code":            map[string]any{"type": "string"},
		"choices":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"correctAnalysis": map[string]any{"type": "string"},
		"pairs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tex":  map[string]any{"type": "string"},
					"code": map[string]any{"type": "string"},
				},
				"required":             []any{"tex", "code"},
				"additionalProperties": false,
			},
		},
		"model":    map[string]any{"type": "string"},
		"template": map[string]any{"type": "string"},
		"segments": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type":    map[string]any{"enum": []any{"static", "blank"}},
					"content": map[string]any{"type": "string"},
				},
				"required":             []any{"type", "content"},
				"additionalProperties": false,
			},
		},
		"initialTiles":    map[string]any{"type": "array", "items": tileSchema},
		"correctSequence": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"distractors":     map[string]any{"type": "array", "items": tileSchema},
		"alternativeSequences": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"orderMatters": map[string]any{"type": "boolean"},
		"acceptable":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"image":        map[string]any{"type": "string"},
		"instruction":  map[string]any{"type": "string"},
	},
	"required":             []any{"id", "type", "prompt"},
	"additionalProperties": false,
}

var tileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": "string", "minLength": 1},
		"content": map[string]any{"type": "string"},
		"type":    map[string]any{"enum": []any{"command", "operator", "group", "atom"}},
	},
	"required":             []any{"id", "content", "type"},
	"additionalProperties": false,
}
