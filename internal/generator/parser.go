package generator

import (
	"encoding/json"
	"strings"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// parseJSON strips markdown fences, parses the provider's reply, validates
// it against the schema, and decodes it into out. Any mismatch is an
// upstream error — malformed model output never reaches the caller.
func parseJSON(raw string, schema *jsonschema.Schema, out any) error {
	cleaned := stripCodeFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "malformed AI response", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "AI response failed schema validation", err)
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "decode AI response", err)
	}
	return nil
}

// stripCodeFences removes a ```json ... ``` wrapper if the model ignored
// the formatting instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
