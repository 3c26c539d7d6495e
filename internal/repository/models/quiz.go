package models

import (
	"database/sql"
	"time"
)

// Quiz is the quizzes table row.
type Quiz struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Topic       string         `db:"topic"`
	Difficulty  string         `db:"difficulty"`
	Description sql.NullString `db:"description"`
	SourceType  string         `db:"source_type"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Question is the questions table row. Position preserves generation order.
type Question struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	Text          string         `db:"question_text"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	Position      int            `db:"position"`
}

// Option is the options table row.
type Option struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	Text       string `db:"option_text"`
	IsCorrect  bool   `db:"is_correct"`
	Position   int    `db:"position"`
}
