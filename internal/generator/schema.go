package generator

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Compiled schemas for every structured response the gateway accepts.
// Shape mismatches become upstream errors instead of malformed data
// reaching the stores.
var (
	categoriesSchema    = mustCompile("categories", categoriesDefinition)
	subcategoriesSchema = mustCompile("subcategories", subcategoriesDefinition)
	questionSchema      = mustCompile("question", questionDefinition)
	evaluationSchema    = mustCompile("evaluation", evaluationDefinition)
)

var categoriesDefinition = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"name", "description"},
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"trending":    map[string]any{"type": "boolean"},
			"cachedId":    map[string]any{"type": "string"},
		},
	},
}

var subcategoriesDefinition = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"name", "description"},
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"trending":    map[string]any{"type": "boolean"},
			"new":         map[string]any{"type": "boolean"},
			"usersTaken":  map[string]any{"type": "number"},
			"color":       map[string]any{"type": "string"},
		},
	},
}

var questionDefinition = map[string]any{
	"type":     "object",
	"required": []any{"questionText", "options"},
	"properties": map[string]any{
		"questionText": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"questionType":    map[string]any{"type": "string"},
		"difficultyLevel": map[string]any{"type": "number", "minimum": 1, "maximum": 5},
	},
}

var evaluationDefinition = map[string]any{
	"type":     "object",
	"required": []any{"wasCorrect", "correctAnswer", "score"},
	"properties": map[string]any{
		"wasCorrect":    map[string]any{"type": "boolean"},
		"correctAnswer": map[string]any{"type": "string"},
		"score":         map[string]any{"type": "number", "minimum": 0, "maximum": 10},
		"explanation":   map[string]any{"type": "string"},
	},
}

func mustCompile(name string, definition map[string]any) *jsonschema.Schema {
	// The compiler wants a parsed JSON value; round-trip the definition to
	// get a clean any representation.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		panic(fmt.Sprintf("marshal schema %s: %v", name, err))
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		panic(fmt.Sprintf("parse schema %s: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return compiled
}
