package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

// fakeStore keeps quizzes and records in memory and enforces the same
// sequence guard as the SQL store.
type fakeStore struct {
	nextID  int64
	quizzes map[int64]*models.Quiz
	records map[int64][]models.QuizRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quizzes: make(map[int64]*models.Quiz),
		records: make(map[int64][]models.QuizRecord),
	}
}

func (s *fakeStore) CreateQuiz(_ context.Context, quiz *models.Quiz) error {
	s.nextID++
	quiz.ID = s.nextID
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *fakeStore) GetQuiz(_ context.Context, quizID, userID int64) (*models.Quiz, error) {
	quiz, ok := s.quizzes[quizID]
	if !ok || quiz.UserID != userID {
		return nil, apperr.New(apperr.KindNotFound, "Quiz not found")
	}
	clone := *quiz
	return &clone, nil
}

func (s *fakeStore) RecordAnswer(_ context.Context, record *models.QuizRecord, wasCorrect, finalize bool) (int, error) {
	quiz, ok := s.quizzes[record.QuizID]
	if !ok || quiz.UserID != record.UserID {
		return 0, apperr.New(apperr.KindNotFound, "Quiz not found")
	}
	if quiz.Status == models.QuizCompleted {
		return 0, apperr.New(apperr.KindConflict, "Quiz already completed")
	}
	if record.QuestionNumber != quiz.CurrentQuestionNumber {
		return 0, apperr.New(apperr.KindConflict, "Answer does not match the current question")
	}

	s.records[record.QuizID] = append(s.records[record.QuizID], *record)
	quiz.CurrentQuestionNumber++
	quiz.TotalTimeSpent += record.TimeSpent
	if wasCorrect {
		quiz.CorrectAnswers++
	}

	finalScore := 0
	if finalize {
		for _, r := range s.records[record.QuizID] {
			finalScore += r.Score
		}
		quiz.Status = models.QuizCompleted
		quiz.FinalScore = &finalScore
	}
	return finalScore, nil
}

func (s *fakeStore) ListRecords(_ context.Context, quizID, _ int64) ([]models.QuizRecord, error) {
	return s.records[quizID], nil
}

func (s *fakeStore) LastRecord(_ context.Context, quizID, _ int64) (*models.QuizRecord, error) {
	records := s.records[quizID]
	if len(records) == 0 {
		return nil, nil
	}
	last := records[len(records)-1]
	return &last, nil
}

// fakeGateway grades every answer the same way and serves canned
// questions, remembering what it was asked for.
type fakeGateway struct {
	evaluation     models.Evaluation
	questionCalls  []int
	feedbackCalled bool
}

func (g *fakeGateway) GenerateQuestion(_ context.Context, _, _ string, difficulty int, questionType models.QuestionType) (*models.Question, error) {
	g.questionCalls = append(g.questionCalls, difficulty)
	return &models.Question{
		QuestionID:      fmt.Sprintf("q_%d", len(g.questionCalls)),
		QuestionText:    "What is the capital of France?",
		Options:         []string{"Paris", "London", "Berlin", "Madrid"},
		QuestionType:    questionType,
		DifficultyLevel: difficulty,
	}, nil
}

func (g *fakeGateway) EvaluateAnswer(_ context.Context, _ *models.Question, _, _, _ string) (*models.Evaluation, error) {
	eval := g.evaluation
	return &eval, nil
}

func (g *fakeGateway) GenerateQuizFeedback(_ context.Context, _, _ int, _ []models.QuizRecord) string {
	g.feedbackCalled = true
	return "Well done."
}

func startQuiz(t *testing.T, service *Service, userID int64) *models.StartQuizResponse {
	t.Helper()
	resp, err := service.Start(context.Background(), userID, &models.StartQuizRequest{
		CategoryID:       "cat_1",
		CategoryTitle:    "Geography",
		SubcategoryTitle: "European Capitals",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return resp
}

func TestStartDefaults(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: true, Score: 10}}
	service := NewService(store, gateway)

	resp := startQuiz(t, service, 7)

	if resp.QuizID == 0 {
		t.Fatal("expected a quiz id")
	}
	if resp.CurrentQuestionNumber != 1 {
		t.Errorf("current question = %d, want 1", resp.CurrentQuestionNumber)
	}
	if resp.Question.DifficultyLevel != models.StartDifficulty {
		t.Errorf("first difficulty = %d, want %d", resp.Question.DifficultyLevel, models.StartDifficulty)
	}
	if resp.Question.QuestionType != models.TypeMultipleChoice {
		t.Errorf("first question type = %q, want multiple choice", resp.Question.QuestionType)
	}

	quiz := store.quizzes[resp.QuizID]
	if quiz.QuestionsCount != models.DefaultQuestionsCount {
		t.Errorf("questions count = %d, want default %d", quiz.QuestionsCount, models.DefaultQuestionsCount)
	}
	if quiz.TimeSettings.TotalTimeEnabled || quiz.TimeSettings.QuestionTimeEnabled {
		t.Error("time limits should default to disabled")
	}
}

func TestSubmitAnswerFullSession(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: true, CorrectAnswer: "Paris", Score: 10}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	question := start.Question
	progress := &models.Progress{Current: 1, Total: 3}

	for i := 0; i < 2; i++ {
		resp, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
			QuizData:        models.QuizRef{QuizID: start.QuizID, CategoryTitle: "Geography", SubcategoryTitle: "European Capitals"},
			CurrentQuestion: question,
			UserAnswer:      "Paris",
			Progress:        progress,
			TimeSpent:       12.5,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i+1, err)
		}
		if resp.QuizCompleted {
			t.Fatalf("quiz completed after %d answers", i+1)
		}
		if resp.NextQuestion == nil {
			t.Fatal("expected a next question")
		}

		want := NextDifficulty(question.DifficultyLevel, true)
		if resp.NextQuestion.DifficultyLevel != want {
			t.Errorf("next difficulty = %d, want %d", resp.NextQuestion.DifficultyLevel, want)
		}
		question = resp.NextQuestion
		progress = resp.Progress
	}

	final, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID, CategoryTitle: "Geography", SubcategoryTitle: "European Capitals"},
		CurrentQuestion: question,
		UserAnswer:      "Paris",
		Progress:        progress,
		TimeSpent:       8,
	})
	if err != nil {
		t.Fatalf("final SubmitAnswer: %v", err)
	}
	if !final.QuizCompleted {
		t.Fatal("expected quiz to complete on the last answer")
	}
	if final.FinalScore == nil || *final.FinalScore != 30 {
		t.Errorf("final score = %v, want 30", final.FinalScore)
	}
	if final.FinalFeedback == "" || !gateway.feedbackCalled {
		t.Error("expected final feedback from the gateway")
	}

	quiz := store.quizzes[start.QuizID]
	if quiz.Status != models.QuizCompleted {
		t.Errorf("quiz status = %q, want completed", quiz.Status)
	}
	if quiz.CorrectAnswers != 3 {
		t.Errorf("correct answers = %d, want 3", quiz.CorrectAnswers)
	}
	if quiz.TotalTimeSpent != 33 {
		t.Errorf("total time spent = %v, want 33", quiz.TotalTimeSpent)
	}
}

func TestSubmitAnswerZeroFinalScoreSerialized(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: false, Score: 0}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	final, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID},
		CurrentQuestion: start.Question,
		UserAnswer:      "London",
		Progress:        &models.Progress{Current: 1, Total: 1},
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if final.FinalScore == nil || *final.FinalScore != 0 {
		t.Fatalf("final score = %v, want 0", final.FinalScore)
	}

	// An all-wrong quiz still reports its score on the wire.
	payload, err := json.Marshal(final)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	if !strings.Contains(string(payload), `"finalScore":0`) {
		t.Errorf("completion payload %s missing finalScore", payload)
	}
}

func TestSubmitAnswerSequenceGuard(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: true, Score: 10}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	req := &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID, CategoryTitle: "Geography", SubcategoryTitle: "European Capitals"},
		CurrentQuestion: start.Question,
		UserAnswer:      "Paris",
		Progress:        &models.Progress{Current: 1, Total: 3},
	}

	if _, err := service.SubmitAnswer(context.Background(), 7, req); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	// Replaying the same submission must be rejected without writing.
	_, err := service.SubmitAnswer(context.Background(), 7, req)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate submission error = %v, want conflict", err)
	}
	if len(store.records[start.QuizID]) != 1 {
		t.Errorf("records = %d, want 1", len(store.records[start.QuizID]))
	}
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: false, Score: 0}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	req := &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID},
		CurrentQuestion: start.Question,
		UserAnswer:      "London",
		Progress:        &models.Progress{Current: 1, Total: 1},
	}

	if _, err := service.SubmitAnswer(context.Background(), 7, req); err != nil {
		t.Fatalf("final submission: %v", err)
	}

	_, err := service.SubmitAnswer(context.Background(), 7, req)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("post-completion submission error = %v, want conflict", err)
	}
}

func TestSubmitAnswerCoercesBadTime(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: true, Score: 10}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	_, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID},
		CurrentQuestion: start.Question,
		UserAnswer:      "Paris",
		Progress:        &models.Progress{Current: 1, Total: 3},
		TimeSpent:       math.NaN(),
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if got := store.quizzes[start.QuizID].TotalTimeSpent; got != 0 {
		t.Errorf("total time spent = %v, want 0", got)
	}
}

func TestResume(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: false, Score: 2}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	if _, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID},
		CurrentQuestion: start.Question,
		UserAnswer:      "London",
		Progress:        &models.Progress{Current: 1, Total: 3},
	}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	resp, err := service.Resume(context.Background(), 7, start.QuizID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resp.CurrentQuestionNumber != 2 {
		t.Errorf("current question = %d, want 2", resp.CurrentQuestionNumber)
	}
	if resp.Progress.Current != 2 || resp.Progress.Total != 3 {
		t.Errorf("progress = %+v, want 2/3", resp.Progress)
	}
	// Incorrect last answer lowers the difficulty from the start level.
	if resp.Question.DifficultyLevel != models.StartDifficulty-1 {
		t.Errorf("resume difficulty = %d, want %d", resp.Question.DifficultyLevel, models.StartDifficulty-1)
	}
}

func TestResumeCompletedQuiz(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: true, Score: 10}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	if _, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
		QuizData:        models.QuizRef{QuizID: start.QuizID},
		CurrentQuestion: start.Question,
		UserAnswer:      "Paris",
		Progress:        &models.Progress{Current: 1, Total: 1},
	}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	_, err := service.Resume(context.Background(), 7, start.QuizID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("resume of completed quiz error = %v, want conflict", err)
	}
}

func TestPreview(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{evaluation: models.Evaluation{WasCorrect: true, Score: 8}}
	service := NewService(store, gateway)

	start := startQuiz(t, service, 7)
	question := start.Question
	progress := &models.Progress{Current: 1, Total: 2}
	for i := 0; i < 2; i++ {
		resp, err := service.SubmitAnswer(context.Background(), 7, &models.SubmitAnswerRequest{
			QuizData:        models.QuizRef{QuizID: start.QuizID},
			CurrentQuestion: question,
			UserAnswer:      "Paris",
			Progress:        progress,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i+1, err)
		}
		if resp.NextQuestion != nil {
			question = resp.NextQuestion
			progress = resp.Progress
		}
	}

	preview, err := service.Preview(context.Background(), 7, start.QuizID)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(preview.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(preview.Records))
	}
	if preview.TotalScore != 16 {
		t.Errorf("total score = %d, want 16", preview.TotalScore)
	}
	if preview.Quiz.Status != models.QuizCompleted {
		t.Errorf("status = %q, want completed", preview.Quiz.Status)
	}
}

func TestPreviewUnknownQuiz(t *testing.T) {
	service := NewService(newFakeStore(), &fakeGateway{})

	_, err := service.Preview(context.Background(), 7, 42)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}
