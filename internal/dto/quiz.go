package dto

import "time"

// GenerateQuizRequest is the body of POST /api/quizzes/generate. The same
// shape (without the file) parametrizes the multipart PDF route.
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// OptionResponse is an answer choice as shown to the quiz taker. Correctness
// is deliberately absent; it only appears in results.
type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse is a question as shown to the quiz taker.
type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Options []OptionResponse `json:"options"`
}

// QuizResponse is a quiz as shown to the quiz taker.
type QuizResponse struct {
	ID          string             `json:"id"`
	Topic       string             `json:"topic"`
	Difficulty  string             `json:"difficulty"`
	Description string             `json:"description,omitempty"`
	SourceType  string             `json:"sourceType"`
	CreatedAt   time.Time          `json:"createdAt"`
	Questions   []QuestionResponse `json:"questions"`
}

// SubmittedAnswer is one selected option in a submission body.
type SubmittedAnswer struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// SubmitQuizRequest is the body of POST /api/quizzes/:id/submit.
type SubmitQuizRequest struct {
	Answers   []SubmittedAnswer `json:"answers"`
	TimeTaken int               `json:"timeTaken"`
}

// SubmitQuizResponse summarizes a scored submission.
type SubmitQuizResponse struct {
	ResultID       string          `json:"resultId"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Percentage     float64         `json:"percentage"`
	PerQuestion    map[string]bool `json:"perQuestionCorrectness"`
	Feedback       string          `json:"feedback"`
	StrengthBand   string          `json:"strengthBand"`
}

// AnswerDetail is the per-question breakdown in a results view.
type AnswerDetail struct {
	QuestionID     string `json:"questionId"`
	QuestionText   string `json:"questionText"`
	SelectedOption string `json:"selectedOption"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	Explanation    string `json:"explanation,omitempty"`
}

// QuizResultsResponse is the full results view for a completed quiz.
type QuizResultsResponse struct {
	QuizID         string         `json:"quizId"`
	Topic          string         `json:"topic"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Percentage     float64        `json:"percentage"`
	StrengthBand   string         `json:"strengthBand"`
	Feedback       string         `json:"feedback"`
	TimeTaken      int            `json:"timeTaken,omitempty"`
	CompletedAt    time.Time      `json:"completedAt"`
	Answers        []AnswerDetail `json:"answers"`
}

// HistoryEntryResponse is one row of GET /api/quizzes/history.
type HistoryEntryResponse struct {
	QuizID         string     `json:"quizId"`
	Topic          string     `json:"topic"`
	Difficulty     string     `json:"difficulty"`
	CreatedAt      time.Time  `json:"createdAt"`
	Score          *int       `json:"score,omitempty"`
	TotalQuestions *int       `json:"totalQuestions,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	TimeTaken      *int       `json:"timeTaken,omitempty"`
}

// TopicPerformanceResponse aggregates average score per topic.
type TopicPerformanceResponse struct {
	Topic    string  `json:"topic"`
	AvgScore float64 `json:"avgScore"`
	Attempts int     `json:"attempts"`
}

// SourceBreakdownResponse counts quizzes per source type.
type SourceBreakdownResponse struct {
	SourceType string `json:"sourceType"`
	Count      int    `json:"count"`
}

// UserStatsResponse is the body of GET /api/quizzes/user/stats.
type UserStatsResponse struct {
	TotalQuizzes     int                        `json:"totalQuizzes"`
	CompletedQuizzes int                        `json:"completedQuizzes"`
	AverageScore     float64                    `json:"averageScore"`
	TopTopics        []TopicPerformanceResponse `json:"topPerformingTopics"`
	RecentActivity   []HistoryEntryResponse     `json:"recentActivity"`
	QuizSources      []SourceBreakdownResponse  `json:"quizSources"`
}

// ErrorResponse is the uniform error body produced by the error handler.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
