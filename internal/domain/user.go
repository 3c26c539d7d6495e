package domain

import "time"

// User represents an authenticated account. Password login and Google OAuth
// both resolve to the same record; PasswordHash is empty for OAuth-only users.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	GoogleID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// QuizHistoryEntry is one row of a user's quiz history: a quiz joined with
// its result, if the quiz was completed.
type QuizHistoryEntry struct {
	QuizID         string
	Topic          string
	Difficulty     string
	CreatedAt      time.Time
	Score          *int
	TotalQuestions *int
	CompletedAt    *time.Time
	TimeTaken      *int
}

// TopicPerformance aggregates a user's average score for one topic.
type TopicPerformance struct {
	Topic    string  `json:"topic"`
	AvgScore float64 `json:"avgScore"`
	Attempts int     `json:"attempts"`
}

// SourceBreakdown counts a user's quizzes per source type.
type SourceBreakdown struct {
	SourceType string `json:"sourceType"`
	Count      int    `json:"count"`
}

// UserStats aggregates a user's dashboard statistics.
type UserStats struct {
	TotalQuizzes     int                `json:"totalQuizzes"`
	CompletedQuizzes int                `json:"completedQuizzes"`
	AverageScore     float64            `json:"averageScore"`
	TopTopics        []TopicPerformance `json:"topPerformingTopics"`
	RecentActivity   []QuizHistoryEntry `json:"-"`
	QuizSources      []SourceBreakdown  `json:"quizSources"`
}
