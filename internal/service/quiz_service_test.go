package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func persistedQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:         "quiz1",
		UserID:     "user1",
		Topic:      "Go",
		Difficulty: "easy",
		SourceType: domain.SourceAIGenerated,
		CreatedAt:  time.Now(),
		Questions: []domain.Question{
			{
				ID: "q1", Text: "What is a goroutine?", CorrectAnswer: "A lightweight thread",
				Options: []domain.Option{
					{ID: "o1", Text: "A thread", IsCorrect: false},
					{ID: "o2", Text: "A lightweight thread", IsCorrect: true},
				},
			},
			{
				ID: "q2", Text: "What does go fmt do?", CorrectAnswer: "Formats code",
				Options: []domain.Option{
					{ID: "o3", Text: "Formats code", IsCorrect: true},
					{ID: "o4", Text: "Runs tests", IsCorrect: false},
				},
			},
		},
	}
}

func TestGenerateQuiz(t *testing.T) {
	generator := new(MockQuizGenerationService)
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(generator, quizRepo, new(MockResultRepository), new(MockDocumentTextExtractor))

	generated := &domain.GeneratedQuiz{
		Topic:      "Go",
		Difficulty: "easy",
		SourceType: domain.SourceAIGenerated,
		Questions: []domain.GeneratedQuestion{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	}

	generator.On("Generate", mock.Anything, domain.GenerationRequest{
		Topic:        "Go",
		Difficulty:   "easy",
		NumQuestions: 3,
	}).Return(generated, nil)
	quizRepo.On("CreateQuiz", mock.Anything, "user1", generated).Return(persistedQuiz(), nil)

	resp, err := svc.GenerateQuiz(context.Background(), "user1", &dto.GenerateQuizRequest{
		Topic:      "Go",
		Difficulty: "easy",
	})

	require.NoError(t, err)
	assert.Equal(t, "quiz1", resp.ID)
	generator.AssertExpectations(t)
	quizRepo.AssertExpectations(t)
}

// The quiz handed to clients must not reveal which option is correct.
func TestGetQuizHidesCorrectness(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(new(MockQuizGenerationService), quizRepo, new(MockResultRepository), new(MockDocumentTextExtractor))

	quizRepo.On("GetQuizByID", mock.Anything, "quiz1", "user1").Return(persistedQuiz(), nil)

	resp, err := svc.GetQuiz(context.Background(), "user1", "quiz1")
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	require.Len(t, resp.Questions[0].Options, 2)
	assert.Equal(t, "A thread", resp.Questions[0].Options[0].Text)
}

func TestGenerateQuizFromDocument(t *testing.T) {
	generator := new(MockQuizGenerationService)
	quizRepo := new(MockQuizRepository)
	extractor := new(MockDocumentTextExtractor)
	svc := NewQuizService(generator, quizRepo, new(MockResultRepository), extractor)

	longText := string(bytes.Repeat([]byte("concurrency in go is built on goroutines and channels. "), 5))
	file := bytes.NewReader([]byte("%PDF-1.4"))

	extractor.On("ExtractText", mock.Anything, file, int64(8)).Return(longText, nil)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(req domain.GenerationRequest) bool {
		return req.SourceText == longText && req.NumQuestions == 5
	})).Return(&domain.GeneratedQuiz{
		Topic:      "Go",
		Difficulty: "medium",
		SourceType: domain.SourcePDF,
		Questions:  []domain.GeneratedQuestion{{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"}},
	}, nil)
	quizRepo.On("CreateQuiz", mock.Anything, "user1", mock.Anything).Return(persistedQuiz(), nil)

	_, err := svc.GenerateQuizFromDocument(context.Background(), "user1", &dto.GenerateQuizRequest{Topic: "Go"}, file, 8)
	require.NoError(t, err)
	generator.AssertExpectations(t)
}

// Documents yielding too little text are rejected before the LLM is called.
func TestGenerateQuizFromDocumentShortText(t *testing.T) {
	extractor := new(MockDocumentTextExtractor)
	svc := NewQuizService(new(MockQuizGenerationService), new(MockQuizRepository), new(MockResultRepository), extractor)

	file := bytes.NewReader([]byte("%PDF-1.4"))
	extractor.On("ExtractText", mock.Anything, file, int64(8)).Return("too short", nil)

	_, err := svc.GenerateQuizFromDocument(context.Background(), "user1", &dto.GenerateQuizRequest{Topic: "Go"}, file, 8)
	assert.True(t, domain.IsCode(err, domain.CodeExtraction))
}

func TestSubmitQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	resultRepo := new(MockResultRepository)
	svc := NewQuizService(new(MockQuizGenerationService), quizRepo, resultRepo, new(MockDocumentTextExtractor))

	quizRepo.On("GetQuizByID", mock.Anything, "quiz1", "user1").Return(persistedQuiz(), nil)
	resultRepo.On("SaveResult", mock.Anything, "quiz1", "user1", mock.Anything, 120).Return("res1", nil)

	resp, err := svc.SubmitQuiz(context.Background(), "user1", "quiz1", &dto.SubmitQuizRequest{
		Answers: []dto.SubmittedAnswer{
			{QuestionID: "q1", SelectedOptionID: "o2"}, // correct
			{QuestionID: "q2", SelectedOptionID: "o4"}, // incorrect
		},
		TimeTaken: 120,
	})

	require.NoError(t, err)
	assert.Equal(t, "res1", resp.ResultID)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Equal(t, 50.0, resp.Percentage)
	assert.Equal(t, domain.StrengthNeedsPractice, resp.StrengthBand)
	assert.Equal(t, domain.FeedbackKeepPracticing, resp.Feedback)
	resultRepo.AssertExpectations(t)
}

// A cancelled context stops the submission before anything is written.
func TestSubmitQuizCancelledContext(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	resultRepo := new(MockResultRepository)
	svc := NewQuizService(new(MockQuizGenerationService), quizRepo, resultRepo, new(MockDocumentTextExtractor))

	quizRepo.On("GetQuizByID", mock.Anything, "quiz1", "user1").Return(persistedQuiz(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SubmitQuiz(ctx, "user1", "quiz1", &dto.SubmitQuizRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	resultRepo.AssertNotCalled(t, "SaveResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetQuizResults(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	resultRepo := new(MockResultRepository)
	svc := NewQuizService(new(MockQuizGenerationService), quizRepo, resultRepo, new(MockDocumentTextExtractor))

	completedAt := time.Now()
	quizRepo.On("GetQuizByID", mock.Anything, "quiz1", "user1").Return(persistedQuiz(), nil)
	resultRepo.On("GetResultByQuizID", mock.Anything, "quiz1", "user1").Return(&domain.StoredResult{
		ID:             "res1",
		QuizID:         "quiz1",
		UserID:         "user1",
		Score:          1,
		TotalQuestions: 2,
		TimeTaken:      90,
		CompletedAt:    completedAt,
		Answers: []domain.AnswerResult{
			{QuestionID: "q1", SelectedOptionID: "o2", IsCorrect: true},
			{QuestionID: "q2", SelectedOptionID: "o4", IsCorrect: false},
		},
	}, nil)

	resp, err := svc.GetQuizResults(context.Background(), "user1", "quiz1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Percentage)
	assert.Equal(t, domain.StrengthNeedsPractice, resp.StrengthBand)
	require.Len(t, resp.Answers, 2)
	assert.Equal(t, "What is a goroutine?", resp.Answers[0].QuestionText)
	assert.Equal(t, "A lightweight thread", resp.Answers[0].SelectedOption)
	assert.True(t, resp.Answers[0].IsCorrect)
	assert.Equal(t, "Runs tests", resp.Answers[1].SelectedOption)
	assert.Equal(t, "Formats code", resp.Answers[1].CorrectAnswer)
}

func TestGetQuizHistory(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(new(MockQuizGenerationService), quizRepo, new(MockResultRepository), new(MockDocumentTextExtractor))

	score := 2
	quizRepo.On("GetQuizHistory", mock.Anything, "user1").Return([]domain.QuizHistoryEntry{
		{QuizID: "quiz1", Topic: "Go", Difficulty: "easy", Score: &score},
		{QuizID: "quiz2", Topic: "Python", Difficulty: "medium"},
	}, nil)

	entries, err := svc.GetQuizHistory(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Score)
	assert.Equal(t, 2, *entries[0].Score)
	assert.Nil(t, entries[1].Score)
}
