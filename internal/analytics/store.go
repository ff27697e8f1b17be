// Package analytics aggregates a user's quiz history into dashboard
// figures: score averages, per-category progress series, and a recent
// history list.
package analytics

import (
	"context"
	"database/sql"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListQuizzes returns every quiz of the user, most recently started
// first.
func (s *Store) ListQuizzes(ctx context.Context, userID int64) ([]models.Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category_id, category_title, subcategory_title,
		        questions_count, total_time_enabled, total_time_limit,
		        question_time_enabled, question_time_limit,
		        current_question_number, status, started_at, completed_at,
		        last_activity_at, total_time_spent, correct_answers, final_score
		 FROM quizzes WHERE user_id = $1
		 ORDER BY started_at DESC`,
		userID,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "list quizzes", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var quiz models.Quiz
		var completedAt, lastActivityAt sql.NullTime
		var finalScore sql.NullInt64

		err := rows.Scan(
			&quiz.ID, &quiz.UserID, &quiz.CategoryID, &quiz.CategoryTitle, &quiz.SubcategoryTitle,
			&quiz.QuestionsCount,
			&quiz.TimeSettings.TotalTimeEnabled, &quiz.TimeSettings.TotalTimeLimit,
			&quiz.TimeSettings.QuestionTimeEnabled, &quiz.TimeSettings.QuestionTimeLimit,
			&quiz.CurrentQuestionNumber, &quiz.Status, &quiz.StartedAt, &completedAt,
			&lastActivityAt, &quiz.TotalTimeSpent, &quiz.CorrectAnswers, &finalScore,
		)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindPersistence, "scan quiz", err)
		}

		if completedAt.Valid {
			quiz.CompletedAt = &completedAt.Time
		}
		if lastActivityAt.Valid {
			quiz.LastActivityAt = &lastActivityAt.Time
		}
		if finalScore.Valid {
			score := int(finalScore.Int64)
			quiz.FinalScore = &score
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "list quizzes", err)
	}
	return quizzes, nil
}

func (s *Store) CountCategoryQuizzes(ctx context.Context, userID int64, categoryID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quizzes WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindPersistence, "count category quizzes", err)
	}
	return count, nil
}
