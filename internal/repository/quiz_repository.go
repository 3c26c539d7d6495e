package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/repository/models"
	"github.com/Swayamo/quizverse/internal/util"
	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new quiz repository backed by sqlx.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

// CreateQuiz persists a generated quiz with its questions and options in one
// transaction. Option rows carry the stored correctness flag the scoring
// engine later reads.
func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, userID string, quiz *domain.GeneratedQuiz) (*domain.Quiz, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	quizRow := &models.Quiz{
		ID:          util.NewULID(),
		UserID:      userID,
		Topic:       quiz.Topic,
		Difficulty:  quiz.Difficulty,
		Description: sql.NullString{String: quiz.Description, Valid: quiz.Description != ""},
		SourceType:  quiz.SourceType,
		CreatedAt:   now,
	}

	quizQuery := `INSERT INTO quizzes (id, user_id, topic, difficulty, description, source_type, created_at)
	              VALUES (:id, :user_id, :topic, :difficulty, :description, :source_type, :created_at)`
	if _, err := tx.NamedExecContext(ctx, quizQuery, quizRow); err != nil {
		return nil, fmt.Errorf("failed to insert quiz: %w", err)
	}

	questionQuery := `INSERT INTO questions (id, quiz_id, question_text, correct_answer, explanation, position)
	                  VALUES (:id, :quiz_id, :question_text, :correct_answer, :explanation, :position)`
	optionQuery := `INSERT INTO options (id, question_id, option_text, is_correct, position)
	                VALUES (:id, :question_id, :option_text, :is_correct, :position)`

	persisted := &domain.Quiz{
		ID:          quizRow.ID,
		UserID:      userID,
		Topic:       quiz.Topic,
		Difficulty:  quiz.Difficulty,
		Description: quiz.Description,
		SourceType:  quiz.SourceType,
		CreatedAt:   now,
	}

	for qi, gq := range quiz.Questions {
		questionRow := &models.Question{
			ID:            util.NewULID(),
			QuizID:        quizRow.ID,
			Text:          gq.Question,
			CorrectAnswer: gq.CorrectAnswer,
			Explanation:   sql.NullString{String: gq.Explanation, Valid: gq.Explanation != ""},
			Position:      qi,
		}
		if _, err := tx.NamedExecContext(ctx, questionQuery, questionRow); err != nil {
			return nil, fmt.Errorf("failed to insert question: %w", err)
		}

		question := domain.Question{
			ID:            questionRow.ID,
			Text:          gq.Question,
			CorrectAnswer: gq.CorrectAnswer,
			Explanation:   gq.Explanation,
		}

		for oi, optText := range gq.Options {
			optionRow := &models.Option{
				ID:         util.NewULID(),
				QuestionID: questionRow.ID,
				Text:       optText,
				IsCorrect:  optText == gq.CorrectAnswer,
				Position:   oi,
			}
			if _, err := tx.NamedExecContext(ctx, optionQuery, optionRow); err != nil {
				return nil, fmt.Errorf("failed to insert option: %w", err)
			}
			question.Options = append(question.Options, domain.Option{
				ID:        optionRow.ID,
				Text:      optText,
				IsCorrect: optionRow.IsCorrect,
			})
		}

		persisted.Questions = append(persisted.Questions, question)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return persisted, nil
}

// GetQuizByID loads a quiz with its questions and options. The quiz must
// belong to userID; another user's quiz reads as not found.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, quizID, userID string) (*domain.Quiz, error) {
	var quizRow models.Quiz
	quizQuery := `SELECT id, user_id, topic, difficulty, description, source_type, created_at
	              FROM quizzes WHERE id = $1 AND user_id = $2`

	if err := r.db.GetContext(ctx, &quizRow, quizQuery, quizID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	var questionRows []models.Question
	questionQuery := `SELECT id, quiz_id, question_text, correct_answer, explanation, position
	                  FROM questions WHERE quiz_id = $1 ORDER BY position`
	if err := r.db.SelectContext(ctx, &questionRows, questionQuery, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	var optionRows []models.Option
	optionQuery := `SELECT o.id, o.question_id, o.option_text, o.is_correct, o.position
	                FROM options o
	                JOIN questions q ON q.id = o.question_id
	                WHERE q.quiz_id = $1 ORDER BY o.question_id, o.position`
	if err := r.db.SelectContext(ctx, &optionRows, optionQuery, quizID); err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	optionsByQuestion := make(map[string][]domain.Option, len(questionRows))
	for _, o := range optionRows {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], domain.Option{
			ID:        o.ID,
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
		})
	}

	quiz := &domain.Quiz{
		ID:          quizRow.ID,
		UserID:      quizRow.UserID,
		Topic:       quizRow.Topic,
		Difficulty:  quizRow.Difficulty,
		Description: quizRow.Description.String,
		SourceType:  quizRow.SourceType,
		CreatedAt:   quizRow.CreatedAt,
	}
	for _, q := range questionRows {
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:            q.ID,
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation.String,
			Options:       optionsByQuestion[q.ID],
		})
	}
	return quiz, nil
}

// historyRow joins a quiz with its most recent result, if any.
type historyRow struct {
	QuizID         string        `db:"id"`
	Topic          string        `db:"topic"`
	Difficulty     string        `db:"difficulty"`
	CreatedAt      time.Time     `db:"created_at"`
	Score          sql.NullInt64 `db:"score"`
	TotalQuestions sql.NullInt64 `db:"total_questions"`
	CompletedAt    sql.NullTime  `db:"completed_at"`
	TimeTaken      sql.NullInt64 `db:"time_taken"`
}

// GetQuizHistory returns the user's quizzes newest first, each joined with
// its latest result when one exists.
func (r *sqlxQuizRepository) GetQuizHistory(ctx context.Context, userID string) ([]domain.QuizHistoryEntry, error) {
	query := `SELECT q.id, q.topic, q.difficulty, q.created_at,
	                 r.score, r.total_questions, r.completed_at, r.time_taken
	          FROM quizzes q
	          LEFT JOIN LATERAL (
	              SELECT score, total_questions, completed_at, time_taken
	              FROM quiz_results
	              WHERE quiz_id = q.id
	              ORDER BY completed_at DESC
	              LIMIT 1
	          ) r ON true
	          WHERE q.user_id = $1
	          ORDER BY q.created_at DESC`

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get quiz history: %w", err)
	}

	entries := make([]domain.QuizHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.QuizHistoryEntry{
			QuizID:     row.QuizID,
			Topic:      row.Topic,
			Difficulty: row.Difficulty,
			CreatedAt:  row.CreatedAt,
		}
		if row.Score.Valid {
			score := int(row.Score.Int64)
			entry.Score = &score
		}
		if row.TotalQuestions.Valid {
			total := int(row.TotalQuestions.Int64)
			entry.TotalQuestions = &total
		}
		if row.CompletedAt.Valid {
			completedAt := row.CompletedAt.Time
			entry.CompletedAt = &completedAt
		}
		if row.TimeTaken.Valid {
			taken := int(row.TimeTaken.Int64)
			entry.TimeTaken = &taken
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
