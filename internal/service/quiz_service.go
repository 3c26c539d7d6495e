package service

import (
	"context"
	"io"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/Swayamo/quizverse/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultTopicQuestionCount    = 3
	defaultDocumentQuestionCount = 5
	minDocumentTextLength        = 100
)

// QuizService defines the interface for quiz-related operations.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	GenerateQuizFromDocument(ctx context.Context, userID string, req *dto.GenerateQuizRequest, file io.ReaderAt, size int64) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetQuizResults(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error)
	GetQuizHistory(ctx context.Context, userID string) ([]dto.HistoryEntryResponse, error)
}

type quizService struct {
	generator  domain.QuizGenerationService
	quizRepo   domain.QuizRepository
	resultRepo domain.ResultRepository
	extractor  domain.DocumentTextExtractor
}

// NewQuizService creates a new quizService.
func NewQuizService(
	generator domain.QuizGenerationService,
	quizRepo domain.QuizRepository,
	resultRepo domain.ResultRepository,
	extractor domain.DocumentTextExtractor,
) QuizService {
	return &quizService{
		generator:  generator,
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		extractor:  extractor,
	}
}

// GenerateQuiz orchestrates topic-based generation and persists the result.
func (s *quizService) GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	count := req.NumQuestions
	if count <= 0 {
		count = defaultTopicQuestionCount
	}

	generated, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		NumQuestions: count,
	})
	if err != nil {
		return nil, err
	}

	return s.persistQuiz(ctx, userID, generated)
}

// GenerateQuizFromDocument extracts text from an uploaded document and
// generates a quiz grounded in it. Documents yielding fewer than
// minDocumentTextLength characters of text are rejected.
func (s *quizService) GenerateQuizFromDocument(ctx context.Context, userID string, req *dto.GenerateQuizRequest, file io.ReaderAt, size int64) (*dto.QuizResponse, error) {
	text, err := s.extractor.ExtractText(ctx, file, size)
	if err != nil {
		return nil, err
	}
	if len(text) < minDocumentTextLength {
		return nil, domain.NewExtractionError("could not extract sufficient text from the document")
	}

	count := req.NumQuestions
	if count <= 0 {
		count = defaultDocumentQuestionCount
	}

	generated, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		NumQuestions: count,
		SourceText:   text,
	})
	if err != nil {
		return nil, err
	}

	return s.persistQuiz(ctx, userID, generated)
}

func (s *quizService) persistQuiz(ctx context.Context, userID string, generated *domain.GeneratedQuiz) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.CreateQuiz(ctx, userID, generated)
	if err != nil {
		return nil, domain.NewInternalError("failed to persist quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.String("sourceType", quiz.SourceType),
		zap.Int("questions", len(quiz.Questions)))

	return toQuizResponse(quiz), nil
}

// GetQuiz loads a quiz for taking. Option correctness stays server-side.
func (s *quizService) GetQuiz(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	return toQuizResponse(quiz), nil
}

// SubmitQuiz scores a submission against the persisted correctness flags and
// records the result.
func (s *quizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	answers := make([]domain.SubmissionAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.SubmissionAnswer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
		})
	}

	result := domain.ScoreSubmission(quiz, answers)

	// Scoring is pure; only persist if the caller is still waiting.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resultID, err := s.resultRepo.SaveResult(ctx, quizID, userID, result, req.TimeTaken)
	if err != nil {
		return nil, domain.NewInternalError("failed to save quiz result", err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("quizID", quizID),
		zap.String("userID", userID),
		zap.Int("score", result.Score),
		zap.Int("totalQuestions", result.TotalQuestions))

	return &dto.SubmitQuizResponse{
		ResultID:       resultID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		PerQuestion:    result.PerQuestion,
		Feedback:       result.Feedback,
		StrengthBand:   result.StrengthBand,
	}, nil
}

// GetQuizResults returns the latest result for a quiz with a per-question
// breakdown and the derived analysis bands.
func (s *quizService) GetQuizResults(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.resultRepo.GetResultByQuizID(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	questionsByID := make(map[string]domain.Question, len(quiz.Questions))
	optionTexts := make(map[string]string)
	for _, q := range quiz.Questions {
		questionsByID[q.ID] = q
		for _, o := range q.Options {
			optionTexts[o.ID] = o.Text
		}
	}

	answers := make([]dto.AnswerDetail, 0, len(stored.Answers))
	for _, a := range stored.Answers {
		question := questionsByID[a.QuestionID]
		answers = append(answers, dto.AnswerDetail{
			QuestionID:     a.QuestionID,
			QuestionText:   question.Text,
			SelectedOption: optionTexts[a.SelectedOptionID],
			CorrectAnswer:  question.CorrectAnswer,
			IsCorrect:      a.IsCorrect,
			Explanation:    question.Explanation,
		})
	}

	percentage := domain.Percentage(stored.Score, stored.TotalQuestions)
	return &dto.QuizResultsResponse{
		QuizID:         quizID,
		Topic:          quiz.Topic,
		Score:          stored.Score,
		TotalQuestions: stored.TotalQuestions,
		Percentage:     percentage,
		StrengthBand:   domain.StrengthBand(percentage),
		Feedback:       domain.FeedbackBand(percentage),
		TimeTaken:      stored.TimeTaken,
		CompletedAt:    stored.CompletedAt,
		Answers:        answers,
	}, nil
}

// GetQuizHistory returns the user's quizzes joined with their results.
func (s *quizService) GetQuizHistory(ctx context.Context, userID string) ([]dto.HistoryEntryResponse, error) {
	entries, err := s.quizRepo.GetQuizHistory(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz history", err)
	}

	responses := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toHistoryEntryResponse(e))
	}
	return responses, nil
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	resp := &dto.QuizResponse{
		ID:          quiz.ID,
		Topic:       quiz.Topic,
		Difficulty:  quiz.Difficulty,
		Description: quiz.Description,
		SourceType:  quiz.SourceType,
		CreatedAt:   quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		question := dto.QuestionResponse{ID: q.ID, Text: q.Text}
		for _, o := range q.Options {
			question.Options = append(question.Options, dto.OptionResponse{ID: o.ID, Text: o.Text})
		}
		resp.Questions = append(resp.Questions, question)
	}
	return resp
}

func toHistoryEntryResponse(e domain.QuizHistoryEntry) dto.HistoryEntryResponse {
	return dto.HistoryEntryResponse{
		QuizID:         e.QuizID,
		Topic:          e.Topic,
		Difficulty:     e.Difficulty,
		CreatedAt:      e.CreatedAt,
		Score:          e.Score,
		TotalQuestions: e.TotalQuestions,
		CompletedAt:    e.CompletedAt,
		TimeTaken:      e.TimeTaken,
	}
}
