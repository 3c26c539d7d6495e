package domain

import (
	"context"
	"io"
	"time"
)

// QuizGenerationService produces a canonical quiz for a topic. It degrades to
// deterministic fallback content internally and only fails when even the
// fallback path yields nothing.
type QuizGenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (*GeneratedQuiz, error)
}

// GenerationRequest carries the parameters of one generation call.
// SourceText, when set, grounds the quiz in an uploaded document's text.
type GenerationRequest struct {
	Topic        string
	Difficulty   string
	NumQuestions int
	SourceText   string
}

// QuizRepository persists and retrieves quizzes.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, userID string, quiz *GeneratedQuiz) (*Quiz, error)
	GetQuizByID(ctx context.Context, quizID, userID string) (*Quiz, error)
	GetQuizHistory(ctx context.Context, userID string) ([]QuizHistoryEntry, error)
}

// ResultRepository persists scored results and serves aggregate queries.
type ResultRepository interface {
	SaveResult(ctx context.Context, quizID, userID string, result *ScoredResult, timeTaken int) (string, error)
	GetResultByQuizID(ctx context.Context, quizID, userID string) (*StoredResult, error)
	CountQuizzes(ctx context.Context, userID string) (int, error)
	CountResults(ctx context.Context, userID string) (int, error)
	AverageScore(ctx context.Context, userID string) (float64, error)
	TopTopics(ctx context.Context, userID string, limit int) ([]TopicPerformance, error)
	RecentActivity(ctx context.Context, userID string, limit int) ([]QuizHistoryEntry, error)
	SourceBreakdown(ctx context.Context, userID string) ([]SourceBreakdown, error)
}

// StoredResult is a persisted quiz result with its per-answer records.
type StoredResult struct {
	ID             string
	QuizID         string
	UserID         string
	Score          int
	TotalQuestions int
	TimeTaken      int
	CompletedAt    time.Time
	Answers        []AnswerResult
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}

// Cache is the port for the Redis-backed response cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DocumentTextExtractor is the external collaborator that turns an uploaded
// document into plain text. Callers enforce minimum-length checks.
type DocumentTextExtractor interface {
	ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}
