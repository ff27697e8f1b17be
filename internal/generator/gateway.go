// Package generator wraps the external text-generation model behind typed
// methods. It is the sole source of quiz questions, category lists, and
// answer grading.
package generator

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/quizwhiz/backend/internal/models"
)

type Gateway struct {
	provider Provider
}

func NewGateway(provider Provider) *Gateway {
	return &Gateway{provider: provider}
}

// GenerateCategories asks for a fresh category batch, excluding titles the
// client already has. cached is the (id, title) id-reuse context the model
// consults for semantic de-duplication.
func (g *Gateway) GenerateCategories(ctx context.Context, existingTitles []string, cached [][2]string) ([]models.Category, error) {
	raw, err := g.provider.Generate(ctx, BuildCategoriesPrompt(existingTitles, cached))
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := parseJSON(raw, categoriesSchema, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SearchCategories generates categories related to the search term. A term
// the model judges meaningless yields an empty list, not an error.
func (g *Gateway) SearchCategories(ctx context.Context, search string, existingTitles []string, cached [][2]string) ([]models.Category, error) {
	raw, err := g.provider.Generate(ctx, BuildCategorySearchPrompt(search, existingTitles, cached))
	if err != nil {
		return nil, err
	}
	categories := []models.Category{}
	if err := parseJSON(raw, categoriesSchema, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (g *Gateway) GenerateSubcategories(ctx context.Context, category string, existing []string) ([]models.Subcategory, error) {
	raw, err := g.provider.Generate(ctx, BuildSubcategoriesPrompt(category, existing))
	if err != nil {
		return nil, err
	}
	var subcategories []models.Subcategory
	if err := parseJSON(raw, subcategoriesSchema, &subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (g *Gateway) SearchSubcategories(ctx context.Context, categoryTitle, search string, existing []string) ([]models.Subcategory, error) {
	raw, err := g.provider.Generate(ctx, BuildSubcategorySearchPrompt(categoryTitle, search, existing))
	if err != nil {
		return nil, err
	}
	subcategories := []models.Subcategory{}
	if err := parseJSON(raw, subcategoriesSchema, &subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

// GenerateQuestion produces one question stamped with a fresh question id
// and the requested difficulty and type, regardless of what the model
// echoed back.
func (g *Gateway) GenerateQuestion(ctx context.Context, categoryTitle, subcategoryTitle string, difficulty int, questionType models.QuestionType) (*models.Question, error) {
	raw, err := g.provider.Generate(ctx, BuildQuestionPrompt(categoryTitle, subcategoryTitle, difficulty, questionType))
	if err != nil {
		return nil, err
	}

	var question models.Question
	if err := parseJSON(raw, questionSchema, &question); err != nil {
		return nil, err
	}

	question.QuestionID = "q_" + uuid.NewString()
	question.QuestionType = questionType
	question.DifficultyLevel = difficulty
	if question.Options == nil {
		question.Options = []string{}
	}
	return &question, nil
}

func (g *Gateway) EvaluateAnswer(ctx context.Context, question *models.Question, userAnswer, category, subcategory string) (*models.Evaluation, error) {
	raw, err := g.provider.Generate(ctx, BuildEvaluationPrompt(question, userAnswer, category, subcategory))
	if err != nil {
		return nil, err
	}

	var evaluation models.Evaluation
	if err := parseJSON(raw, evaluationSchema, &evaluation); err != nil {
		return nil, err
	}

	if evaluation.Score < 0 {
		evaluation.Score = 0
	}
	if evaluation.Score > 10 {
		evaluation.Score = 10
	}
	return &evaluation, nil
}

// GenerateQuizFeedback returns a short qualitative evaluation of the whole
// quiz. This is the one gateway call with a deterministic local fallback:
// a provider failure here must not fail quiz completion.
func (g *Gateway) GenerateQuizFeedback(ctx context.Context, totalScore, maxPossibleScore int, records []models.QuizRecord) string {
	goodAnswers := 0
	for _, record := range records {
		if record.Score > 5 {
			goodAnswers++
		}
	}

	raw, err := g.provider.Generate(ctx, BuildFeedbackPrompt(totalScore, maxPossibleScore, len(records), goodAnswers))
	if err != nil {
		log.Printf("[generator] quiz feedback generation failed, using fallback: %v", err)
		return FallbackFeedback(totalScore, maxPossibleScore)
	}
	return stripCodeFences(raw)
}

// FallbackFeedback buckets the score percentage into one of three fixed
// messages.
func FallbackFeedback(totalScore, maxPossibleScore int) string {
	if maxPossibleScore <= 0 {
		return "No questions were answered."
	}
	ratio := float64(totalScore) / float64(maxPossibleScore)
	switch {
	case ratio >= 0.8:
		return "Great job! You demonstrated excellent understanding of the material."
	case ratio >= 0.5:
		return "Good work! You have a solid foundation. Keep practicing to improve further."
	default:
		return "You're on the right track! Review the concepts and try again to improve your score."
	}
}
