package generator

import (
	"strings"
	"testing"

	"github.com/quizwhiz/backend/internal/models"
)

func TestBuildCategoriesPrompt(t *testing.T) {
	prompt := BuildCategoriesPrompt(
		[]string{"History", "Science"},
		[][2]string{{"cat_123", "React"}},
	)

	required := []string{"exactly 30", "History, Science", "SERVER CACHE", `"React" → cat_123`, "cachedId", "ONLY valid JSON"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("categories prompt missing %q", keyword)
		}
	}
}

func TestBuildCategoriesPromptEmptyContext(t *testing.T) {
	prompt := BuildCategoriesPrompt(nil, nil)

	if !strings.Contains(prompt, "DO NOT generate any of these existing categories: none") {
		t.Error("empty exclusion list should render as \"none\"")
	}
	if !strings.Contains(prompt, "No cached categories yet") {
		t.Error("empty cache should render its placeholder")
	}
}

func TestBuildCategorySearchPrompt(t *testing.T) {
	prompt := BuildCategorySearchPrompt("space", nil, nil)

	if !strings.Contains(prompt, `"space"`) {
		t.Error("search prompt missing the search term")
	}
	if !strings.Contains(prompt, "EMPTY ARRAY") {
		t.Error("search prompt missing the meaningless-query instruction")
	}
}

func TestBuildQuestionPrompt(t *testing.T) {
	tests := []struct {
		name         string
		questionType models.QuestionType
		required     []string
	}{
		{
			"multiple choice",
			models.TypeMultipleChoice,
			[]string{"multiple choice quiz question", "exactly 4 options", "DIFFICULTY: 4/5", "multiple_choice"},
		},
		{
			"descriptive",
			models.TypeDescriptive,
			[]string{"descriptive question", "1-2 sentences", "DIFFICULTY: 4/5", `"options":[]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildQuestionPrompt("Science", "Botany", 4, tt.questionType)
			for _, keyword := range tt.required {
				if !strings.Contains(prompt, keyword) {
					t.Errorf("question prompt missing %q", keyword)
				}
			}
		})
	}
}

func TestBuildEvaluationPromptScoringRules(t *testing.T) {
	mc := &models.Question{
		QuestionText: "2+2?",
		Options:      []string{"3", "4"},
		QuestionType: models.TypeMultipleChoice,
	}
	prompt := BuildEvaluationPrompt(mc, "4", "Math", "Arithmetic")

	if !strings.Contains(prompt, "Score: 10 if correct, 0 if wrong") {
		t.Error("multiple choice evaluation should be all-or-nothing")
	}
	if !strings.Contains(prompt, "OPTIONS: 3, 4") {
		t.Error("evaluation prompt missing the options line")
	}

	descriptive := &models.Question{
		QuestionText: "Define photosynthesis.",
		QuestionType: models.TypeDescriptive,
	}
	prompt = BuildEvaluationPrompt(descriptive, "plants make food", "Science", "Botany")

	if !strings.Contains(prompt, "completeness and accuracy (0-10)") {
		t.Error("descriptive evaluation should grade on a 0-10 scale")
	}
	if strings.Contains(prompt, "OPTIONS:") {
		t.Error("descriptive evaluation should not carry an options line")
	}
}

func TestBuildFeedbackPrompt(t *testing.T) {
	prompt := BuildFeedbackPrompt(25, 30, 3, 2)

	required := []string{"evaluation and feedback for a quiz performance", "25/30", "TOTAL QUESTIONS: 3"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("feedback prompt missing %q", keyword)
		}
	}
}
