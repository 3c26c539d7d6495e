package models

import (
	"database/sql"
	"time"
)

// QuizResult is the quiz_results table row. TotalQuestions is the number of
// submitted answers, not the quiz's question count.
type QuizResult struct {
	ID             string        `db:"id"`
	QuizID         string        `db:"quiz_id"`
	UserID         string        `db:"user_id"`
	Score          int           `db:"score"`
	TotalQuestions int           `db:"total_questions"`
	TimeTaken      sql.NullInt64 `db:"time_taken"`
	CompletedAt    time.Time     `db:"completed_at"`
}

// UserAnswer is the user_answers table row, one per submitted answer.
type UserAnswer struct {
	ID               string `db:"id"`
	ResultID         string `db:"result_id"`
	QuestionID       string `db:"question_id"`
	SelectedOptionID string `db:"selected_option_id"`
	IsCorrect        bool   `db:"is_correct"`
}
