package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quizwhiz/backend/internal/models"
)

type fakeLister struct {
	quizzes []models.Quiz
}

func (f *fakeLister) ListQuizzes(_ context.Context, _ int64) ([]models.Quiz, error) {
	return f.quizzes, nil
}

func (f *fakeLister) CountCategoryQuizzes(_ context.Context, _ int64, categoryID string) (int, error) {
	count := 0
	for _, quiz := range f.quizzes {
		if quiz.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func completedQuiz(id int64, category string, finalScore, questionsCount int, completedAt time.Time) models.Quiz {
	return models.Quiz{
		ID:             id,
		CategoryID:     "cat_" + category,
		CategoryTitle:  category,
		QuestionsCount: questionsCount,
		Status:         models.QuizCompleted,
		StartedAt:      completedAt.Add(-10 * time.Minute),
		CompletedAt:    &completedAt,
		FinalScore:     &finalScore,
	}
}

func TestUserAnalyticsEmpty(t *testing.T) {
	service := NewService(&fakeLister{})

	analytics, err := service.UserAnalytics(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}

	if analytics.TotalQuizzes != 0 || analytics.AverageScore != 0 || analytics.HighestScore != 0 {
		t.Errorf("expected zeroed figures, got %+v", analytics)
	}
	if analytics.CategoryProgress == nil || analytics.CategoryDistribution == nil || analytics.QuizHistory == nil {
		t.Error("empty analytics must serialize as empty arrays, not null")
	}
}

func TestUserAnalyticsScores(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(&fakeLister{quizzes: []models.Quiz{
		completedQuiz(3, "History", 25, 3, day.Add(48*time.Hour)), // 83.3%
		completedQuiz(2, "History", 10, 2, day.Add(24*time.Hour)), // 50%
		completedQuiz(1, "Science", 30, 3, day),                   // 100%
	}})

	analytics, err := service.UserAnalytics(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}

	if analytics.TotalQuizzes != 3 {
		t.Errorf("total quizzes = %d, want 3", analytics.TotalQuizzes)
	}
	if analytics.HighestScore != 100 {
		t.Errorf("highest score = %v, want 100", analytics.HighestScore)
	}
	// (83.3 + 50 + 100) / 3 rounded to one decimal.
	if analytics.AverageScore != 77.8 {
		t.Errorf("average score = %v, want 77.8", analytics.AverageScore)
	}
}

func TestUserAnalyticsSkipsUnfinished(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inProgress := models.Quiz{
		ID:             2,
		CategoryTitle:  "History",
		QuestionsCount: 3,
		Status:         models.QuizInProgress,
		StartedAt:      day.Add(time.Hour),
	}
	service := NewService(&fakeLister{quizzes: []models.Quiz{
		inProgress,
		completedQuiz(1, "Science", 20, 2, day), // 100%
	}})

	analytics, err := service.UserAnalytics(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}

	// In-progress quizzes count toward totals and history but not scores.
	if analytics.TotalQuizzes != 2 {
		t.Errorf("total quizzes = %d, want 2", analytics.TotalQuizzes)
	}
	if analytics.AverageScore != 100 {
		t.Errorf("average score = %v, want 100", analytics.AverageScore)
	}
	if len(analytics.CategoryProgress) != 1 || analytics.CategoryProgress[0].Category != "Science" {
		t.Errorf("category progress = %+v, want Science only", analytics.CategoryProgress)
	}
	if len(analytics.QuizHistory) != 2 {
		t.Errorf("history = %d items, want 2", len(analytics.QuizHistory))
	}
	if analytics.QuizHistory[0].Score != 0 {
		t.Errorf("in-progress history score = %d, want 0", analytics.QuizHistory[0].Score)
	}
}

func TestUserAnalyticsDistribution(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(&fakeLister{quizzes: []models.Quiz{
		completedQuiz(3, "History", 10, 1, day.Add(2*time.Hour)),
		completedQuiz(2, "History", 10, 1, day.Add(time.Hour)),
		completedQuiz(1, "Science", 10, 1, day),
	}})

	analytics, err := service.UserAnalytics(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}

	if len(analytics.CategoryDistribution) != 2 {
		t.Fatalf("distribution = %d entries, want 2", len(analytics.CategoryDistribution))
	}
	history := analytics.CategoryDistribution[0]
	if history.Category != "History" || history.Count != 2 || history.Percentage != 66.7 {
		t.Errorf("history share = %+v, want 2 quizzes at 66.7%%", history)
	}
	science := analytics.CategoryDistribution[1]
	if science.Count != 1 || science.Percentage != 33.3 {
		t.Errorf("science share = %+v, want 1 quiz at 33.3%%", science)
	}
}

func TestCategoryProgressOrder(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(&fakeLister{quizzes: []models.Quiz{
		completedQuiz(2, "History", 30, 3, day.Add(48*time.Hour)), // 100%
		completedQuiz(1, "History", 15, 3, day),                   // 50%
	}})

	analytics, err := service.UserAnalytics(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}

	if len(analytics.CategoryProgress) != 1 {
		t.Fatalf("progress = %d entries, want 1", len(analytics.CategoryProgress))
	}
	progress := analytics.CategoryProgress[0]
	if len(progress.Scores) != 2 || len(progress.Dates) != 2 || len(progress.QuestionsCounts) != 2 {
		t.Fatalf("series not index-aligned: %+v", progress)
	}
	// Most recent completion first.
	if progress.Dates[0] != "2026-03-03" || progress.Dates[1] != "2026-03-01" {
		t.Errorf("dates = %v, want newest first", progress.Dates)
	}
	if progress.Scores[0] != 100 || progress.Scores[1] != 50 {
		t.Errorf("scores = %v, want [100 50]", progress.Scores)
	}
}

func TestQuizHistoryCap(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var quizzes []models.Quiz
	for i := 0; i < 20; i++ {
		quizzes = append(quizzes, completedQuiz(int64(20-i), fmt.Sprintf("Cat%d", i), 10, 1, day.Add(-time.Duration(i)*time.Hour)))
	}
	service := NewService(&fakeLister{quizzes: quizzes})

	analytics, err := service.UserAnalytics(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}

	if len(analytics.QuizHistory) != historyLimit {
		t.Errorf("history = %d items, want %d", len(analytics.QuizHistory), historyLimit)
	}
	if analytics.QuizHistory[0].ID != 20 {
		t.Errorf("first history item id = %d, want the most recent quiz", analytics.QuizHistory[0].ID)
	}
}

func TestCategoryAnalytics(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(&fakeLister{quizzes: []models.Quiz{
		completedQuiz(1, "Science", 10, 1, day),
		completedQuiz(2, "Science", 10, 1, day),
		completedQuiz(3, "History", 10, 1, day),
	}})

	analytics, err := service.CategoryAnalytics(context.Background(), 1, "cat_Science")
	if err != nil {
		t.Fatalf("CategoryAnalytics: %v", err)
	}
	if analytics.CategoryID != "cat_Science" || analytics.QuizCount != 2 {
		t.Errorf("analytics = %+v, want 2 Science quizzes", analytics)
	}
}
