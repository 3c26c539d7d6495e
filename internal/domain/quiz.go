package domain

import (
	"strings"
	"time"
)

// Difficulty levels accepted by the generation pipeline.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Source types recorded against a persisted quiz.
const (
	SourceAIGenerated = "ai_generated"
	SourceFallback    = "fallback"
	SourcePDF         = "pdf"
)

// NormalizeDifficulty maps arbitrary input onto a known difficulty level,
// defaulting to medium.
func NormalizeDifficulty(diff string) string {
	switch strings.ToLower(diff) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// GeneratedQuestion is a question in its canonical pre-persistence form:
// plain option texts with the correct answer identified by value.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Validate checks the invariants every canonical question must hold:
// non-empty text, at least two options, and a correct answer that appears
// verbatim among the options.
func (q *GeneratedQuestion) Validate() error {
	if q.Question == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewValidationError("question must have at least 2 options")
	}
	if q.CorrectAnswer == "" {
		return NewValidationError("question is missing correct answer")
	}
	found := false
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return NewValidationError("correct answer must be included in the options")
	}
	return nil
}

// GeneratedQuiz is the canonical quiz shape every generation source is
// normalized to before persistence.
type GeneratedQuiz struct {
	Topic       string              `json:"topic"`
	Description string              `json:"description,omitempty"`
	Difficulty  string              `json:"difficulty"`
	SourceType  string              `json:"sourceType"`
	Questions   []GeneratedQuestion `json:"questions"`
}

// Validate validates the quiz and every question in it.
func (g *GeneratedQuiz) Validate() error {
	if len(g.Questions) == 0 {
		return NewValidationError("quiz must contain at least one question")
	}
	for i := range g.Questions {
		if err := g.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Option is a persisted answer choice. IsCorrect is the stored correctness
// flag the scoring engine reads; it is never recomputed from text.
type Option struct {
	ID        string
	Text      string
	IsCorrect bool
}

// Question is a persisted quiz question with its options.
type Question struct {
	ID            string
	Text          string
	CorrectAnswer string
	Explanation   string
	Options       []Option
}

// Quiz is a persisted quiz. Immutable once created; there is no update path.
type Quiz struct {
	ID          string
	UserID      string
	Topic       string
	Difficulty  string
	Description string
	SourceType  string
	CreatedAt   time.Time
	Questions   []Question
}

// SubmissionAnswer is one selected option in a quiz submission.
type SubmissionAnswer struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// AnswerResult records the evaluated outcome for one submitted answer.
type AnswerResult struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
}

// ScoredResult is the outcome of scoring one submission. Computed fresh per
// submission and persisted as a historical record, never mutated.
type ScoredResult struct {
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Percentage     float64         `json:"percentage"`
	PerQuestion    map[string]bool `json:"perQuestionCorrectness"`
	AnswerResults  []AnswerResult  `json:"-"`
	Feedback       string          `json:"feedback"`
	StrengthBand   string          `json:"strengthBand"`
}
