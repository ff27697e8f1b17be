package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/quizwhiz/backend/internal/models"
)

const historyLimit = 15

const dateLayout = "2006-01-02"

type quizLister interface {
	ListQuizzes(ctx context.Context, userID int64) ([]models.Quiz, error)
	CountCategoryQuizzes(ctx context.Context, userID int64, categoryID string) (int, error)
}

type Service struct {
	store quizLister
}

func NewService(store quizLister) *Service {
	return &Service{store: store}
}

func (s *Service) UserAnalytics(ctx context.Context, userID int64) (*models.UserAnalytics, error) {
	quizzes, err := s.store.ListQuizzes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildUserAnalytics(quizzes), nil
}

func (s *Service) CategoryAnalytics(ctx context.Context, userID int64, categoryID string) (*models.CategoryAnalytics, error) {
	count, err := s.store.CountCategoryQuizzes(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	return &models.CategoryAnalytics{CategoryID: categoryID, QuizCount: count}, nil
}

// buildUserAnalytics computes the whole dashboard from the quiz list.
// Scores are percentages of the maximum possible (10 points per
// question), rounded to one decimal. Quizzes arrive most recently
// started first and the history preserves that order.
func buildUserAnalytics(quizzes []models.Quiz) *models.UserAnalytics {
	analytics := &models.UserAnalytics{
		CategoryProgress:     []models.CategoryProgress{},
		CategoryDistribution: []models.CategoryShare{},
		QuizHistory:          []models.QuizHistoryItem{},
	}
	if len(quizzes) == 0 {
		return analytics
	}
	analytics.TotalQuizzes = len(quizzes)

	var completed []models.Quiz
	for _, quiz := range quizzes {
		if quiz.Status == models.QuizCompleted && quiz.FinalScore != nil {
			completed = append(completed, quiz)
		}
	}

	if len(completed) > 0 {
		total := 0.0
		highest := 0.0
		for _, quiz := range completed {
			score := percentageScore(quiz)
			total += score
			if score > highest {
				highest = score
			}
		}
		analytics.AverageScore = round1(total / float64(len(completed)))
		analytics.HighestScore = highest
	}

	// Distribution buckets keep first-seen order, i.e. by most recent
	// quiz per category.
	counts := map[string]int{}
	var order []string
	for _, quiz := range quizzes {
		if _, seen := counts[quiz.CategoryTitle]; !seen {
			order = append(order, quiz.CategoryTitle)
		}
		counts[quiz.CategoryTitle]++
	}
	for _, category := range order {
		analytics.CategoryDistribution = append(analytics.CategoryDistribution, models.CategoryShare{
			Category:   category,
			Count:      counts[category],
			Percentage: round1(float64(counts[category]) / float64(len(quizzes)) * 100),
		})
	}

	analytics.CategoryProgress = buildCategoryProgress(completed)

	history := quizzes
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	for _, quiz := range history {
		score := 0
		if quiz.FinalScore != nil {
			score = *quiz.FinalScore
		}
		analytics.QuizHistory = append(analytics.QuizHistory, models.QuizHistoryItem{
			ID:             quiz.ID,
			Date:           quiz.StartedAt.Format(dateLayout),
			Category:       quiz.CategoryTitle,
			Subcategory:    quiz.SubcategoryTitle,
			Score:          score,
			QuestionsCount: quiz.QuestionsCount,
			TimeSpent:      quiz.TotalTimeSpent,
			Status:         quiz.Status,
		})
	}

	return analytics
}

type progressPoint struct {
	score          float64
	date           string
	questionsCount int
}

func buildCategoryProgress(completed []models.Quiz) []models.CategoryProgress {
	points := map[string][]progressPoint{}
	var order []string
	for _, quiz := range completed {
		date := ""
		if quiz.CompletedAt != nil {
			date = quiz.CompletedAt.Format(dateLayout)
		}
		if _, seen := points[quiz.CategoryTitle]; !seen {
			order = append(order, quiz.CategoryTitle)
		}
		points[quiz.CategoryTitle] = append(points[quiz.CategoryTitle], progressPoint{
			score:          percentageScore(quiz),
			date:           date,
			questionsCount: quiz.QuestionsCount,
		})
	}

	progress := []models.CategoryProgress{}
	for _, category := range order {
		series := points[category]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].date > series[j].date
		})

		entry := models.CategoryProgress{
			Category:        category,
			Scores:          make([]float64, 0, len(series)),
			Dates:           make([]string, 0, len(series)),
			QuestionsCounts: make([]int, 0, len(series)),
		}
		for _, point := range series {
			entry.Scores = append(entry.Scores, point.score)
			entry.Dates = append(entry.Dates, point.date)
			entry.QuestionsCounts = append(entry.QuestionsCounts, point.questionsCount)
		}
		progress = append(progress, entry)
	}
	return progress
}

func percentageScore(quiz models.Quiz) float64 {
	if quiz.QuestionsCount <= 0 || quiz.FinalScore == nil {
		return 0
	}
	return round1(float64(*quiz.FinalScore) / float64(quiz.QuestionsCount*10) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
