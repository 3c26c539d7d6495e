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

// sqlxResultRepository implements domain.ResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new result repository backed by sqlx.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

// SaveResult persists a scored result with its per-answer records in one
// transaction and returns the new result's ID.
func (r *sqlxResultRepository) SaveResult(ctx context.Context, quizID, userID string, result *domain.ScoredResult, timeTaken int) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	resultRow := &models.QuizResult{
		ID:             util.NewULID(),
		QuizID:         quizID,
		UserID:         userID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		TimeTaken:      sql.NullInt64{Int64: int64(timeTaken), Valid: timeTaken > 0},
		CompletedAt:    time.Now(),
	}

	resultQuery := `INSERT INTO quiz_results (id, quiz_id, user_id, score, total_questions, time_taken, completed_at)
	                VALUES (:id, :quiz_id, :user_id, :score, :total_questions, :time_taken, :completed_at)`
	if _, err := tx.NamedExecContext(ctx, resultQuery, resultRow); err != nil {
		return "", fmt.Errorf("failed to insert quiz result: %w", err)
	}

	answerQuery := `INSERT INTO user_answers (id, result_id, question_id, selected_option_id, is_correct)
	                VALUES (:id, :result_id, :question_id, :selected_option_id, :is_correct)`
	for _, answer := range result.AnswerResults {
		answerRow := &models.UserAnswer{
			ID:               util.NewULID(),
			ResultID:         resultRow.ID,
			QuestionID:       answer.QuestionID,
			SelectedOptionID: answer.SelectedOptionID,
			IsCorrect:        answer.IsCorrect,
		}
		if _, err := tx.NamedExecContext(ctx, answerQuery, answerRow); err != nil {
			return "", fmt.Errorf("failed to insert user answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return resultRow.ID, nil
}

// GetResultByQuizID loads the most recent result for a quiz together with its
// per-answer records. Returns a not-found domain error when the quiz was
// never completed.
func (r *sqlxResultRepository) GetResultByQuizID(ctx context.Context, quizID, userID string) (*domain.StoredResult, error) {
	var resultRow models.QuizResult
	resultQuery := `SELECT id, quiz_id, user_id, score, total_questions, time_taken, completed_at
	                FROM quiz_results
	                WHERE quiz_id = $1 AND user_id = $2
	                ORDER BY completed_at DESC
	                LIMIT 1`

	if err := r.db.GetContext(ctx, &resultRow, resultQuery, quizID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("no results found for quiz: %s", quizID))
		}
		return nil, fmt.Errorf("failed to get quiz result: %w", err)
	}

	var answerRows []models.UserAnswer
	answerQuery := `SELECT id, result_id, question_id, selected_option_id, is_correct
	                FROM user_answers WHERE result_id = $1`
	if err := r.db.SelectContext(ctx, &answerRows, answerQuery, resultRow.ID); err != nil {
		return nil, fmt.Errorf("failed to get user answers: %w", err)
	}

	stored := &domain.StoredResult{
		ID:             resultRow.ID,
		QuizID:         resultRow.QuizID,
		UserID:         resultRow.UserID,
		Score:          resultRow.Score,
		TotalQuestions: resultRow.TotalQuestions,
		TimeTaken:      int(resultRow.TimeTaken.Int64),
		CompletedAt:    resultRow.CompletedAt,
	}
	for _, a := range answerRows {
		stored.Answers = append(stored.Answers, domain.AnswerResult{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        a.IsCorrect,
		})
	}
	return stored, nil
}

// CountQuizzes counts all quizzes a user has generated.
func (r *sqlxResultRepository) CountQuizzes(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM quizzes WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	return count, nil
}

// CountResults counts quizzes the user has completed at least once.
func (r *sqlxResultRepository) CountResults(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT quiz_id) FROM quiz_results WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

// AverageScore returns the user's mean score percentage across all results,
// zero when the user has no results.
func (r *sqlxResultRepository) AverageScore(ctx context.Context, userID string) (float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(score * 100.0 / NULLIF(total_questions, 0))
	          FROM quiz_results WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &avg, query, userID); err != nil {
		return 0, fmt.Errorf("failed to compute average score: %w", err)
	}
	return avg.Float64, nil
}

// TopTopics returns the user's best-performing topics by average score.
func (r *sqlxResultRepository) TopTopics(ctx context.Context, userID string, limit int) ([]domain.TopicPerformance, error) {
	query := `SELECT q.topic,
	                 AVG(r.score * 100.0 / NULLIF(r.total_questions, 0)) AS avg_score,
	                 COUNT(r.id) AS attempts
	          FROM quiz_results r
	          JOIN quizzes q ON q.id = r.quiz_id
	          WHERE r.user_id = $1
	          GROUP BY q.topic
	          ORDER BY avg_score DESC
	          LIMIT $2`

	rows, err := r.db.QueryxContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.TopicPerformance
	for rows.Next() {
		var topic string
		var avgScore sql.NullFloat64
		var attempts int
		if err := rows.Scan(&topic, &avgScore, &attempts); err != nil {
			return nil, fmt.Errorf("failed to scan topic performance: %w", err)
		}
		topics = append(topics, domain.TopicPerformance{
			Topic:    topic,
			AvgScore: avgScore.Float64,
			Attempts: attempts,
		})
	}
	return topics, rows.Err()
}

// RecentActivity returns the user's most recently completed quizzes.
func (r *sqlxResultRepository) RecentActivity(ctx context.Context, userID string, limit int) ([]domain.QuizHistoryEntry, error) {
	query := `SELECT q.id, q.topic, q.difficulty, q.created_at,
	                 r.score, r.total_questions, r.completed_at, r.time_taken
	          FROM quiz_results r
	          JOIN quizzes q ON q.id = r.quiz_id
	          WHERE r.user_id = $1
	          ORDER BY r.completed_at DESC
	          LIMIT $2`

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}

	entries := make([]domain.QuizHistoryEntry, 0, len(rows))
	for _, row := range rows {
		score := int(row.Score.Int64)
		total := int(row.TotalQuestions.Int64)
		completedAt := row.CompletedAt.Time
		entry := domain.QuizHistoryEntry{
			QuizID:         row.QuizID,
			Topic:          row.Topic,
			Difficulty:     row.Difficulty,
			CreatedAt:      row.CreatedAt,
			Score:          &score,
			TotalQuestions: &total,
			CompletedAt:    &completedAt,
		}
		if row.TimeTaken.Valid {
			taken := int(row.TimeTaken.Int64)
			entry.TimeTaken = &taken
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SourceBreakdown counts the user's quizzes per source type.
func (r *sqlxResultRepository) SourceBreakdown(ctx context.Context, userID string) ([]domain.SourceBreakdown, error) {
	query := `SELECT source_type, COUNT(*) AS count
	          FROM quizzes
	          WHERE user_id = $1
	          GROUP BY source_type
	          ORDER BY count DESC`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get source breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []domain.SourceBreakdown
	for rows.Next() {
		var entry domain.SourceBreakdown
		if err := rows.Scan(&entry.SourceType, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan source breakdown: %w", err)
		}
		breakdown = append(breakdown, entry)
	}
	return breakdown, rows.Err()
}
