package quiz

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

type quizStore interface {
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	GetQuiz(ctx context.Context, quizID, userID int64) (*models.Quiz, error)
	RecordAnswer(ctx context.Context, record *models.QuizRecord, wasCorrect, finalize bool) (int, error)
	ListRecords(ctx context.Context, quizID, userID int64) ([]models.QuizRecord, error)
	LastRecord(ctx context.Context, quizID, userID int64) (*models.QuizRecord, error)
}

type questionGateway interface {
	GenerateQuestion(ctx context.Context, categoryTitle, subcategoryTitle string, difficulty int, questionType models.QuestionType) (*models.Question, error)
	EvaluateAnswer(ctx context.Context, question *models.Question, userAnswer, category, subcategory string) (*models.Evaluation, error)
	GenerateQuizFeedback(ctx context.Context, totalScore, maxPossibleScore int, records []models.QuizRecord) string
}

// Service runs quiz sessions: starting them, grading submissions, adapting
// difficulty, and finalizing scores.
type Service struct {
	store   quizStore
	gateway questionGateway

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(store quizStore, gateway questionGateway) *Service {
	return &Service{
		store:   store,
		gateway: gateway,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) nextType() models.QuestionType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NextQuestionType(s.rng)
}

// Start creates a quiz and generates its first question. The first
// question is always multiple choice at the middle difficulty.
func (s *Service) Start(ctx context.Context, userID int64, req *models.StartQuizRequest) (*models.StartQuizResponse, error) {
	questionsCount := req.QuestionsCount
	if questionsCount <= 0 {
		questionsCount = models.DefaultQuestionsCount
	}

	timeSettings := models.TimeSettings{}
	if req.TimeSettings != nil {
		timeSettings = *req.TimeSettings
	}

	quiz := &models.Quiz{
		UserID:                userID,
		CategoryID:            req.CategoryID,
		CategoryTitle:         req.CategoryTitle,
		SubcategoryTitle:      req.SubcategoryTitle,
		QuestionsCount:        questionsCount,
		TimeSettings:          timeSettings,
		CurrentQuestionNumber: 1,
		Status:                models.QuizInProgress,
	}
	if err := s.store.CreateQuiz(ctx, quiz); err != nil {
		return nil, err
	}

	question, err := s.gateway.GenerateQuestion(ctx,
		req.CategoryTitle, req.SubcategoryTitle,
		models.StartDifficulty, models.TypeMultipleChoice)
	if err != nil {
		return nil, err
	}

	return &models.StartQuizResponse{
		QuizID:                quiz.ID,
		Question:              question,
		CurrentQuestionNumber: 1,
		TimeSettings:          timeSettings,
	}, nil
}

// SubmitAnswer grades the answer, records it, and either serves the next
// question or finalizes the quiz. Recording is transactional with a
// sequence guard, so a stale or duplicate submission is rejected without
// side effects.
func (s *Service) SubmitAnswer(ctx context.Context, userID int64, req *models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	evaluation, err := s.gateway.EvaluateAnswer(ctx,
		req.CurrentQuestion, req.UserAnswer,
		req.QuizData.CategoryTitle, req.QuizData.SubcategoryTitle)
	if err != nil {
		return nil, err
	}

	timeSpent := req.TimeSpent
	if math.IsNaN(timeSpent) || timeSpent < 0 {
		timeSpent = 0
	}

	record := &models.QuizRecord{
		QuizID:           req.QuizData.QuizID,
		UserID:           userID,
		CategoryID:       req.QuizData.CategoryID,
		CategoryTitle:    req.QuizData.CategoryTitle,
		SubcategoryTitle: req.QuizData.SubcategoryTitle,
		QuestionID:       req.CurrentQuestion.QuestionID,
		QuestionNumber:   req.Progress.Current,
		Question:         req.CurrentQuestion.QuestionText,
		Options:          req.CurrentQuestion.Options,
		UserAnswer:       req.UserAnswer,
		CorrectAnswer:    evaluation.CorrectAnswer,
		Score:            evaluation.Score,
		Explanation:      evaluation.Explanation,
		DifficultyLevel:  req.CurrentQuestion.DifficultyLevel,
		QuestionType:     req.CurrentQuestion.QuestionType,
		TimeSpent:        timeSpent,
	}

	finalize := req.Progress.Current >= req.Progress.Total
	finalScore, err := s.store.RecordAnswer(ctx, record, evaluation.WasCorrect, finalize)
	if err != nil {
		return nil, err
	}

	if finalize {
		records, err := s.store.ListRecords(ctx, req.QuizData.QuizID, userID)
		if err != nil {
			return nil, err
		}
		feedback := s.gateway.GenerateQuizFeedback(ctx,
			finalScore, req.Progress.Total*10, records)

		return &models.SubmitAnswerResponse{
			Evaluation:    evaluation,
			QuizCompleted: true,
			FinalScore:    &finalScore,
			FinalFeedback: feedback,
		}, nil
	}

	nextDifficulty := NextDifficulty(req.CurrentQuestion.DifficultyLevel, evaluation.WasCorrect)
	nextQuestion, err := s.gateway.GenerateQuestion(ctx,
		req.QuizData.CategoryTitle, req.QuizData.SubcategoryTitle,
		nextDifficulty, s.nextType())
	if err != nil {
		return nil, err
	}

	return &models.SubmitAnswerResponse{
		Evaluation:            evaluation,
		NextQuestion:          nextQuestion,
		Progress:              &models.Progress{Current: req.Progress.Current + 1, Total: req.Progress.Total},
		CurrentQuestionNumber: req.Progress.Current + 1,
	}, nil
}

// Resume serves a fresh question for an in-progress quiz. The difficulty
// picks up where the last graded answer left off.
func (s *Service) Resume(ctx context.Context, userID, quizID int64) (*models.ResumeQuizResponse, error) {
	quiz, err := s.store.GetQuiz(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if quiz.Status == models.QuizCompleted {
		return nil, apperr.New(apperr.KindConflict, "Quiz already completed")
	}

	difficulty := models.StartDifficulty
	questionType := models.TypeMultipleChoice

	last, err := s.store.LastRecord(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		difficulty = NextDifficulty(last.DifficultyLevel, last.Score > 5)
		questionType = s.nextType()
	}

	question, err := s.gateway.GenerateQuestion(ctx,
		quiz.CategoryTitle, quiz.SubcategoryTitle, difficulty, questionType)
	if err != nil {
		return nil, err
	}

	return &models.ResumeQuizResponse{
		QuizID:                quiz.ID,
		Question:              question,
		CurrentQuestionNumber: quiz.CurrentQuestionNumber,
		Progress:              models.Progress{Current: quiz.CurrentQuestionNumber, Total: quiz.QuestionsCount},
		TimeSettings:          quiz.TimeSettings,
	}, nil
}

// Preview returns a quiz with all its graded records and the running
// score total.
func (s *Service) Preview(ctx context.Context, userID, quizID int64) (*models.QuizPreviewResponse, error) {
	quiz, err := s.store.GetQuiz(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRecords(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	totalScore := 0
	for _, record := range records {
		totalScore += record.Score
	}

	return &models.QuizPreviewResponse{
		Quiz:       quiz,
		Records:    records,
		TotalScore: totalScore,
	}, nil
}
