package quiz

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quizzes
		 (user_id, category_id, category_title, subcategory_title, questions_count,
		  total_time_enabled, total_time_limit, question_time_enabled, question_time_limit,
		  current_question_number, status, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, started_at`,
		quiz.UserID, quiz.CategoryID, quiz.CategoryTitle, quiz.SubcategoryTitle,
		quiz.QuestionsCount,
		quiz.TimeSettings.TotalTimeEnabled, quiz.TimeSettings.TotalTimeLimit,
		quiz.TimeSettings.QuestionTimeEnabled, quiz.TimeSettings.QuestionTimeLimit,
		quiz.CurrentQuestionNumber, quiz.Status, time.Now(),
	).Scan(&quiz.ID, &quiz.StartedAt)
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "create quiz", err)
	}
	return nil
}

const quizColumns = `id, user_id, category_id, category_title, subcategory_title,
	questions_count, total_time_enabled, total_time_limit,
	question_time_enabled, question_time_limit,
	current_question_number, status, started_at, completed_at,
	last_activity_at, total_time_spent, correct_answers, final_score`

func (s *Store) GetQuiz(ctx context.Context, quizID, userID int64) (*models.Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1 AND user_id = $2`,
		quizID, userID,
	)
	quiz, err := scanQuiz(row)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "Quiz not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "get quiz", err)
	}
	return quiz, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuiz(row rowScanner) (*models.Quiz, error) {
	var quiz models.Quiz
	var completedAt, lastActivityAt sql.NullTime
	var finalScore sql.NullInt64

	err := row.Scan(
		&quiz.ID, &quiz.UserID, &quiz.CategoryID, &quiz.CategoryTitle, &quiz.SubcategoryTitle,
		&quiz.QuestionsCount,
		&quiz.TimeSettings.TotalTimeEnabled, &quiz.TimeSettings.TotalTimeLimit,
		&quiz.TimeSettings.QuestionTimeEnabled, &quiz.TimeSettings.QuestionTimeLimit,
		&quiz.CurrentQuestionNumber, &quiz.Status, &quiz.StartedAt, &completedAt,
		&lastActivityAt, &quiz.TotalTimeSpent, &quiz.CorrectAnswers, &finalScore,
	)
	if err != nil {
		return nil, err
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
	return &quiz, nil
}

// RecordAnswer is the whole submission write path in one transaction:
// sequence guard, record insert, quiz advance, and (for the final answer)
// score finalization. The FOR UPDATE lock serializes concurrent
// submissions for the same quiz; a duplicate or out-of-order submission
// fails the guard and nothing is written.
func (s *Store) RecordAnswer(ctx context.Context, record *models.QuizRecord, wasCorrect, finalize bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindPersistence, "begin tx", err)
	}
	defer tx.Rollback()

	var status models.QuizStatus
	var currentNumber int
	err = tx.QueryRowContext(ctx,
		`SELECT status, current_question_number FROM quizzes
		 WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		record.QuizID, record.UserID,
	).Scan(&status, &currentNumber)
	if err == sql.ErrNoRows {
		return 0, apperr.New(apperr.KindNotFound, "Quiz not found")
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.KindPersistence, "lock quiz", err)
	}

	if status == models.QuizCompleted {
		return 0, apperr.New(apperr.KindConflict, "Quiz already completed")
	}
	if record.QuestionNumber != currentNumber {
		return 0, apperr.New(apperr.KindConflict, "Answer does not match the current question")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quiz_records
		 (quiz_id, user_id, category_id, category_title, subcategory_title,
		  question_id, question_number, question, options, user_answer,
		  correct_answer, score, explanation, difficulty_level, question_type, time_spent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		record.QuizID, record.UserID, record.CategoryID, record.CategoryTitle,
		record.SubcategoryTitle, record.QuestionID, record.QuestionNumber,
		record.Question, pq.Array(record.Options), record.UserAnswer,
		record.CorrectAnswer, record.Score, record.Explanation,
		record.DifficultyLevel, record.QuestionType, record.TimeSpent,
	)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindPersistence, "insert quiz record", err)
	}

	correctInc := 0
	if wasCorrect {
		correctInc = 1
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE quizzes
		 SET current_question_number = current_question_number + 1,
		     total_time_spent = total_time_spent + $1,
		     correct_answers = correct_answers + $2,
		     last_activity_at = NOW()
		 WHERE id = $3`,
		record.TimeSpent, correctInc, record.QuizID,
	)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindPersistence, "update quiz", err)
	}

	finalScore := 0
	if finalize {
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(score), 0) FROM quiz_records WHERE quiz_id = $1`,
			record.QuizID,
		).Scan(&finalScore)
		if err != nil {
			return 0, apperr.Wrap(apperr.KindPersistence, "sum record scores", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE quizzes SET status = $1, final_score = $2, completed_at = NOW() WHERE id = $3`,
			models.QuizCompleted, finalScore, record.QuizID,
		)
		if err != nil {
			return 0, apperr.Wrap(apperr.KindPersistence, "finalize quiz", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.Wrap(apperr.KindPersistence, "commit submission", err)
	}
	return finalScore, nil
}

func (s *Store) ListRecords(ctx context.Context, quizID, userID int64) ([]models.QuizRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, user_id, category_id, category_title, subcategory_title,
		        question_id, question_number, question, options, user_answer,
		        correct_answer, score, explanation, difficulty_level, question_type,
		        time_spent, created_at
		 FROM quiz_records WHERE quiz_id = $1 AND user_id = $2
		 ORDER BY question_number ASC`,
		quizID, userID,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "list quiz records", err)
	}
	defer rows.Close()

	var records []models.QuizRecord
	for rows.Next() {
		var record models.QuizRecord
		err := rows.Scan(
			&record.ID, &record.QuizID, &record.UserID, &record.CategoryID,
			&record.CategoryTitle, &record.SubcategoryTitle, &record.QuestionID,
			&record.QuestionNumber, &record.Question, pq.Array(&record.Options),
			&record.UserAnswer, &record.CorrectAnswer, &record.Score,
			&record.Explanation, &record.DifficultyLevel, &record.QuestionType,
			&record.TimeSpent, &record.CreatedAt,
		)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindPersistence, "scan quiz record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "list quiz records", err)
	}
	return records, nil
}

// LastRecord returns the most recently answered question of a quiz, or
// nil when nothing has been answered yet.
func (s *Store) LastRecord(ctx context.Context, quizID, userID int64) (*models.QuizRecord, error) {
	var record models.QuizRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_id, user_id, category_id, category_title, subcategory_title,
		        question_id, question_number, question, options, user_answer,
		        correct_answer, score, explanation, difficulty_level, question_type,
		        time_spent, created_at
		 FROM quiz_records WHERE quiz_id = $1 AND user_id = $2
		 ORDER BY question_number DESC LIMIT 1`,
		quizID, userID,
	).Scan(
		&record.ID, &record.QuizID, &record.UserID, &record.CategoryID,
		&record.CategoryTitle, &record.SubcategoryTitle, &record.QuestionID,
		&record.QuestionNumber, &record.Question, pq.Array(&record.Options),
		&record.UserAnswer, &record.CorrectAnswer, &record.Score,
		&record.Explanation, &record.DifficultyLevel, &record.QuestionType,
		&record.TimeSpent, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "last quiz record", err)
	}
	return &record, nil
}
