package generator

import (
	"testing"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

func TestParseJSONQuestion(t *testing.T) {
	raw := `{"questionText":"What is 2+2?","options":["3","4","5","6"],"questionType":"multiple_choice","difficultyLevel":2}`

	var question models.Question
	if err := parseJSON(raw, questionSchema, &question); err != nil {
		t.Fatalf("parseJSON: %v", err)
	}
	if question.QuestionText != "What is 2+2?" || len(question.Options) != 4 {
		t.Errorf("decoded question = %+v", question)
	}
}

func TestParseJSONStripsFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"wasCorrect\":true,\"correctAnswer\":\"4\",\"score\":10,\"explanation\":\"right\"}\n```"},
		{"bare fence", "```\n{\"wasCorrect\":true,\"correctAnswer\":\"4\",\"score\":10,\"explanation\":\"right\"}\n```"},
		{"surrounding whitespace", "  \n{\"wasCorrect\":true,\"correctAnswer\":\"4\",\"score\":10,\"explanation\":\"right\"}\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var evaluation models.Evaluation
			if err := parseJSON(tt.raw, evaluationSchema, &evaluation); err != nil {
				t.Fatalf("parseJSON: %v", err)
			}
			if !evaluation.WasCorrect || evaluation.Score != 10 {
				t.Errorf("decoded evaluation = %+v", evaluation)
			}
		})
	}
}

func TestParseJSONRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I cannot answer that."},
		{"wrong shape", `{"questionText":"ok"}`},
		{"wrong type", `{"questionText":"ok","options":"not-a-list","questionType":"multiple_choice","difficultyLevel":3}`},
		{"difficulty out of range", `{"questionText":"ok","options":[],"questionType":"descriptive","difficultyLevel":9}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var question models.Question
			err := parseJSON(tt.raw, questionSchema, &question)
			if err == nil {
				t.Fatal("expected an error")
			}
			if apperr.KindOf(err) != apperr.KindUpstream {
				t.Errorf("error kind = %v, want upstream", apperr.KindOf(err))
			}
		})
	}
}

func TestParseJSONCategories(t *testing.T) {
	raw := `[{"name":"History","description":"Past events","trending":true},
	        {"name":"Science","description":"Natural world","trending":false,"cachedId":"cat_abc"}]`

	var categories []models.Category
	if err := parseJSON(raw, categoriesSchema, &categories); err != nil {
		t.Fatalf("parseJSON: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(categories))
	}
	if categories[1].CachedID != "cat_abc" {
		t.Errorf("cachedId = %q, want cat_abc", categories[1].CachedID)
	}
}
