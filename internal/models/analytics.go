package models

// CategoryShare is one slice of the category-count distribution.
type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryProgress is a per-category time series of completed quizzes,
// most recent first. The three slices are index-aligned.
type CategoryProgress struct {
	Category        string    `json:"category"`
	Scores          []float64 `json:"scores"`
	Dates           []string  `json:"dates"`
	QuestionsCounts []int     `json:"questionsCounts"`
}

// QuizHistoryItem is one row of the flattened quiz history list.
type QuizHistoryItem struct {
	ID             int64      `json:"id"`
	Date           string     `json:"date"`
	Category       string     `json:"category"`
	Subcategory    string     `json:"subcategory"`
	Score          int        `json:"score"`
	QuestionsCount int        `json:"questionsCount"`
	TimeSpent      float64    `json:"timeSpent"`
	Status         QuizStatus `json:"status"`
}

type UserAnalytics struct {
	TotalQuizzes         int                `json:"totalQuizzes"`
	AverageScore         float64            `json:"averageScore"`
	HighestScore         float64            `json:"highestScore"`
	CategoryProgress     []CategoryProgress `json:"categoryProgress"`
	CategoryDistribution []CategoryShare    `json:"categoryDistribution"`
	QuizHistory          []QuizHistoryItem  `json:"quizHistory"`
}

type CategoryAnalytics struct {
	CategoryID string `json:"categoryId"`
	QuizCount  int    `json:"quizCount"`
}

type QuizHistoryRequest struct {
	Limit int `json:"limit"`
}

// QuizHistoryPage is the truncated history list plus the untruncated
// total.
type QuizHistoryPage struct {
	QuizHistory []QuizHistoryItem `json:"quizHistory"`
	Total       int               `json:"total"`
}

type UserAnalyticsRequest struct {
	UserID int64 `json:"userId"`
}

type CategoryAnalyticsRequest struct {
	UserID     int64  `json:"userId"`
	CategoryID string `json:"categoryId"`
}
