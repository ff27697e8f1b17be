package models

import "time"

type QuizStatus string

const (
	QuizInProgress QuizStatus = "in_progress"
	QuizCompleted  QuizStatus = "completed"
)

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeDescriptive    QuestionType = "descriptive"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	// StartDifficulty is the difficulty of the first question of every quiz.
	StartDifficulty = 3

	DefaultQuestionsCount = 3
)

// TimeSettings carries the optional per-quiz time limits. Everything
// defaults to disabled.
type TimeSettings struct {
	TotalTimeEnabled    bool `json:"totalTimeEnabled"`
	TotalTimeLimit      int  `json:"totalTimeLimit"`
	QuestionTimeEnabled bool `json:"questionTimeEnabled"`
	QuestionTimeLimit   int  `json:"questionTimeLimit"`
}

// Quiz is one user's attempt at a subcategory, tracked start-to-finish.
// Never deleted; completed quizzes serve as history.
type Quiz struct {
	ID                    int64        `json:"id"`
	UserID                int64        `json:"userId"`
	CategoryID            string       `json:"categoryId"`
	CategoryTitle         string       `json:"categoryTitle"`
	SubcategoryTitle      string       `json:"subcategoryTitle"`
	QuestionsCount        int          `json:"questionsCount"`
	TimeSettings          TimeSettings `json:"timeSettings"`
	CurrentQuestionNumber int          `json:"currentQuestionNumber"`
	Status                QuizStatus   `json:"status"`
	StartedAt             time.Time    `json:"startedAt"`
	CompletedAt           *time.Time   `json:"completedAt,omitempty"`
	LastActivityAt        *time.Time   `json:"lastActivityAt,omitempty"`
	TotalTimeSpent        float64      `json:"totalTimeSpent"`
	CorrectAnswers        int          `json:"correctAnswers"`
	FinalScore            *int         `json:"finalScore,omitempty"`
}

// QuizRecord is one graded question/answer pair within a quiz. Immutable
// once written.
type QuizRecord struct {
	ID               int64        `json:"id"`
	QuizID           int64        `json:"quizId"`
	UserID           int64        `json:"userId"`
	CategoryID       string       `json:"categoryId"`
	CategoryTitle    string       `json:"categoryTitle"`
	SubcategoryTitle string       `json:"subcategoryTitle"`
	QuestionID       string       `json:"questionId"`
	QuestionNumber   int          `json:"questionNumber"`
	Question         string       `json:"question"`
	Options          []string     `json:"options"`
	UserAnswer       string       `json:"userAnswer"`
	CorrectAnswer    string       `json:"correctAnswer"`
	Score            int          `json:"score"`
	Explanation      string       `json:"explanation"`
	DifficultyLevel  int          `json:"difficultyLevel"`
	QuestionType     QuestionType `json:"questionType"`
	TimeSpent        float64      `json:"timeSpent"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// Question is a generated question as served to the client. Options is
// empty for descriptive questions.
type Question struct {
	QuestionID      string       `json:"questionId"`
	QuestionText    string       `json:"questionText"`
	Options         []string     `json:"options"`
	QuestionType    QuestionType `json:"questionType"`
	DifficultyLevel int          `json:"difficultyLevel"`
}

// Evaluation is the gateway's grading of a single answer.
type Evaluation struct {
	WasCorrect    bool   `json:"wasCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	Explanation   string `json:"explanation"`
}

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type StartQuizRequest struct {
	UserID           int64         `json:"userId"`
	CategoryID       string        `json:"categoryId"`
	CategoryTitle    string        `json:"categoryTitle"`
	SubcategoryTitle string        `json:"subcategoryTitle"`
	QuestionsCount   int           `json:"questionsCount"`
	TimeSettings     *TimeSettings `json:"timeSettings"`
}

type StartQuizResponse struct {
	QuizID                int64        `json:"quizId"`
	Question              *Question    `json:"question"`
	CurrentQuestionNumber int          `json:"currentQuestionNumber"`
	TimeSettings          TimeSettings `json:"timeSettings"`
}

// QuizRef identifies the quiz a submission belongs to, echoing the
// denormalized titles the client received at start.
type QuizRef struct {
	QuizID           int64   `json:"quizId"`
	UserID           int64   `json:"userId"`
	CategoryID       string  `json:"categoryId"`
	CategoryTitle    string  `json:"categoryTitle"`
	SubcategoryTitle string  `json:"subcategoryTitle"`
	TotalTimeSpent   float64 `json:"totalTimeSpent"`
}

type SubmitAnswerRequest struct {
	QuizData        QuizRef   `json:"quizData"`
	CurrentQuestion *Question `json:"currentQuestion"`
	UserAnswer      string    `json:"userAnswer"`
	Progress        *Progress `json:"progress"`
	TimeSpent       float64   `json:"timeSpent"`
}

type SubmitAnswerResponse struct {
	Evaluation    *Evaluation `json:"evaluation"`
	QuizCompleted bool        `json:"quizCompleted,omitempty"`
	// Pointer so a zero final score still serializes on completion.
	FinalScore            *int      `json:"finalScore,omitempty"`
	FinalFeedback         string    `json:"finalFeedback,omitempty"`
	NextQuestion          *Question `json:"nextQuestion,omitempty"`
	Progress              *Progress `json:"progress,omitempty"`
	CurrentQuestionNumber int       `json:"currentQuestionNumber,omitempty"`
}

type ResumeQuizRequest struct {
	UserID int64 `json:"userId"`
	QuizID int64 `json:"quizId"`
}

type ResumeQuizResponse struct {
	QuizID                int64        `json:"quizId"`
	Question              *Question    `json:"question"`
	CurrentQuestionNumber int          `json:"currentQuestionNumber"`
	Progress              Progress     `json:"progress"`
	TimeSettings          TimeSettings `json:"timeSettings"`
}

type QuizPreviewResponse struct {
	Quiz       *Quiz        `json:"quiz"`
	Records    []QuizRecord `json:"records"`
	TotalScore int          `json:"totalScore"`
}
