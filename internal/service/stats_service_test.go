package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectStatsQueries(repo *MockResultRepository) {
	repo.On("CountQuizzes", mock.Anything, "user1").Return(10, nil)
	repo.On("CountResults", mock.Anything, "user1").Return(7, nil)
	repo.On("AverageScore", mock.Anything, "user1").Return(72.5, nil)
	repo.On("TopTopics", mock.Anything, "user1", topTopicsLimit).Return([]domain.TopicPerformance{
		{Topic: "Go", AvgScore: 85.0, Attempts: 4},
	}, nil)
	repo.On("RecentActivity", mock.Anything, "user1", recentLimit).Return([]domain.QuizHistoryEntry{
		{QuizID: "quiz1", Topic: "Go"},
	}, nil)
	repo.On("SourceBreakdown", mock.Anything, "user1").Return([]domain.SourceBreakdown{
		{SourceType: "ai_generated", Count: 8},
		{SourceType: "fallback", Count: 2},
	}, nil)
}

func TestGetUserStats(t *testing.T) {
	repo := new(MockResultRepository)
	cacheMock := new(MockCache)
	svc := NewStatsService(repo, cacheMock)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, statsCacheTTL).Return(nil)
	expectStatsQueries(repo)

	stats, err := svc.GetUserStats(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalQuizzes)
	assert.Equal(t, 7, stats.CompletedQuizzes)
	assert.Equal(t, 72.5, stats.AverageScore)
	require.Len(t, stats.TopTopics, 1)
	assert.Equal(t, "Go", stats.TopTopics[0].Topic)
	require.Len(t, stats.QuizSources, 2)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

// A cache hit short-circuits all repository queries.
func TestGetUserStatsCacheHit(t *testing.T) {
	repo := new(MockResultRepository)
	cacheMock := new(MockCache)
	svc := NewStatsService(repo, cacheMock)

	cached, err := json.Marshal(&dto.UserStatsResponse{TotalQuizzes: 42})
	require.NoError(t, err)
	cacheMock.On("Get", mock.Anything, statsCacheKey("user1")).Return(string(cached), nil)

	stats, err := svc.GetUserStats(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalQuizzes)
	repo.AssertNotCalled(t, "CountQuizzes", mock.Anything, mock.Anything)
}

func TestGetUserStatsQueryFailure(t *testing.T) {
	repo := new(MockResultRepository)
	svc := NewStatsService(repo, nil)

	repo.On("CountQuizzes", mock.Anything, "user1").Return(0, assert.AnError)
	repo.On("CountResults", mock.Anything, "user1").Return(0, nil).Maybe()
	repo.On("AverageScore", mock.Anything, "user1").Return(0.0, nil).Maybe()
	repo.On("TopTopics", mock.Anything, "user1", topTopicsLimit).Return(nil, nil).Maybe()
	repo.On("RecentActivity", mock.Anything, "user1", recentLimit).Return(nil, nil).Maybe()
	repo.On("SourceBreakdown", mock.Anything, "user1").Return(nil, nil).Maybe()

	_, err := svc.GetUserStats(context.Background(), "user1")
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

func TestInvalidateUserStats(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewStatsService(new(MockResultRepository), cacheMock)

	cacheMock.On("Delete", mock.Anything, statsCacheKey("user1")).Return(nil)
	assert.NoError(t, svc.InvalidateUserStats(context.Background(), "user1"))
	cacheMock.AssertExpectations(t)

	// Nil cache is a no-op.
	assert.NoError(t, NewStatsService(new(MockResultRepository), nil).InvalidateUserStats(context.Background(), "user1"))
}
