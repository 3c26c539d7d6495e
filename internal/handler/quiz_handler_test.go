package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/Swayamo/quizverse/internal/middleware"
	"github.com/Swayamo/quizverse/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testQuizID = "01HZXW3A5B7C9DEFGHJKMNPQRS"

// --- MockQuizService ---

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GenerateQuizFromDocument(ctx context.Context, userID string, req *dto.GenerateQuizRequest, file io.ReaderAt, size int64) (*dto.QuizResponse, error) {
	args := m.Called(ctx, userID, req, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	args := m.Called(ctx, userID, quizID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmitQuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuizResults(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResultsResponse), args.Error(1)
}

func (m *MockQuizService) GetQuizHistory(ctx context.Context, userID string) ([]dto.HistoryEntryResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.HistoryEntryResponse), args.Error(1)
}

// --- MockStatsService ---

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserStatsResponse), args.Error(1)
}

func (m *MockStatsService) InvalidateUserStats(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// fakeAuth injects a fixed user ID, standing in for the JWT middleware.
func fakeAuth(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, userID)
		return c.Next()
	}
}

func quizTestApp(quizSvc *MockQuizService, statsSvc *MockStatsService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewQuizHandler(quizSvc, statsSvc, validation.NewValidator())

	api := app.Group("/api", fakeAuth("user1"))
	api.Get("/quizzes/history", h.GetQuizHistory)
	api.Get("/quizzes/user/stats", h.GetUserStats)
	api.Post("/quizzes/generate", h.GenerateQuiz)
	api.Get("/quizzes/:id", h.GetQuiz)
	api.Post("/quizzes/:id/submit", h.SubmitQuiz)
	api.Get("/quizzes/:id/results", h.GetQuizResults)
	return app
}

func TestGenerateQuizHandler(t *testing.T) {
	quizSvc := new(MockQuizService)
	app := quizTestApp(quizSvc, new(MockStatsService))

	quizSvc.On("GenerateQuiz", mock.Anything, "user1", &dto.GenerateQuizRequest{
		Topic:        "Go",
		Difficulty:   "easy",
		NumQuestions: 3,
	}).Return(&dto.QuizResponse{ID: testQuizID, Topic: "Go"}, nil)

	body, _ := json.Marshal(dto.GenerateQuizRequest{Topic: "Go", Difficulty: "easy", NumQuestions: 3})
	req := httptest.NewRequest("POST", "/api/quizzes/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var quiz dto.QuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	assert.Equal(t, testQuizID, quiz.ID)
	quizSvc.AssertExpectations(t)
}

func TestGenerateQuizHandlerValidation(t *testing.T) {
	app := quizTestApp(new(MockQuizService), new(MockStatsService))

	body, _ := json.Marshal(dto.GenerateQuizRequest{Topic: "   "})
	req := httptest.NewRequest("POST", "/api/quizzes/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetQuizHandlerNotFound(t *testing.T) {
	quizSvc := new(MockQuizService)
	app := quizTestApp(quizSvc, new(MockStatsService))

	quizSvc.On("GetQuiz", mock.Anything, "user1", testQuizID).
		Return(nil, domain.NewQuizNotFoundError(testQuizID))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/"+testQuizID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetQuizHandlerRejectsMalformedID(t *testing.T) {
	app := quizTestApp(new(MockQuizService), new(MockStatsService))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/not-a-ulid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitQuizHandler(t *testing.T) {
	quizSvc := new(MockQuizService)
	statsSvc := new(MockStatsService)
	app := quizTestApp(quizSvc, statsSvc)

	submission := &dto.SubmitQuizRequest{
		Answers:   []dto.SubmittedAnswer{{QuestionID: "q1", SelectedOptionID: "o1"}},
		TimeTaken: 60,
	}
	quizSvc.On("SubmitQuiz", mock.Anything, "user1", testQuizID, submission).
		Return(&dto.SubmitQuizResponse{ResultID: "res1", Score: 1, TotalQuestions: 1, Percentage: 100}, nil)
	statsSvc.On("InvalidateUserStats", mock.Anything, "user1").Return(nil)

	body, _ := json.Marshal(submission)
	req := httptest.NewRequest("POST", "/api/quizzes/"+testQuizID+"/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.SubmitQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "res1", result.ResultID)
	statsSvc.AssertExpectations(t)
}

func TestGetUserStatsHandler(t *testing.T) {
	statsSvc := new(MockStatsService)
	app := quizTestApp(new(MockQuizService), statsSvc)

	statsSvc.On("GetUserStats", mock.Anything, "user1").
		Return(&dto.UserStatsResponse{TotalQuizzes: 3}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/user/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats dto.UserStatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 3, stats.TotalQuizzes)
}

func TestGetQuizHistoryHandler(t *testing.T) {
	quizSvc := new(MockQuizService)
	app := quizTestApp(quizSvc, new(MockStatsService))

	quizSvc.On("GetQuizHistory", mock.Anything, "user1").
		Return([]dto.HistoryEntryResponse{{QuizID: testQuizID, Topic: "Go"}}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entries []dto.HistoryEntryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Go", entries[0].Topic)
}
