package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Swayamo/quizverse/internal/cache"
	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/Swayamo/quizverse/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	statsCacheTTL  = 5 * time.Minute
	topTopicsLimit = 5
	recentLimit    = 5
)

// StatsService serves the user dashboard aggregates.
type StatsService interface {
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	InvalidateUserStats(ctx context.Context, userID string) error
}

type statsService struct {
	resultRepo domain.ResultRepository
	cache      domain.Cache
}

// NewStatsService creates a new StatsService. cache may be nil, in which case
// every call computes fresh.
func NewStatsService(resultRepo domain.ResultRepository, cacheClient domain.Cache) StatsService {
	return &statsService{resultRepo: resultRepo, cache: cacheClient}
}

func statsCacheKey(userID string) string {
	return cache.GenerateCacheKey("stats", "user", userID)
}

// GetUserStats fans the aggregate queries out concurrently and caches the
// assembled response for a short interval.
func (s *statsService) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	appLogger := logger.Get()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsCacheKey(userID))
		if err == nil {
			var stats dto.UserStatsResponse
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
			appLogger.Warn("Discarding unreadable cached stats", zap.String("userID", userID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			appLogger.Warn("Stats cache read failed", zap.Error(err))
		}
	}

	var (
		totalQuizzes     int
		completedQuizzes int
		averageScore     float64
		topTopics        []domain.TopicPerformance
		recentActivity   []domain.QuizHistoryEntry
		sources          []domain.SourceBreakdown
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalQuizzes, err = s.resultRepo.CountQuizzes(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		completedQuizzes, err = s.resultRepo.CountResults(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		averageScore, err = s.resultRepo.AverageScore(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		topTopics, err = s.resultRepo.TopTopics(gctx, userID, topTopicsLimit)
		return err
	})
	g.Go(func() (err error) {
		recentActivity, err = s.resultRepo.RecentActivity(gctx, userID, recentLimit)
		return err
	})
	g.Go(func() (err error) {
		sources, err = s.resultRepo.SourceBreakdown(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to compute user stats", err)
	}

	stats := &dto.UserStatsResponse{
		TotalQuizzes:     totalQuizzes,
		CompletedQuizzes: completedQuizzes,
		AverageScore:     averageScore,
		TopTopics:        make([]dto.TopicPerformanceResponse, 0, len(topTopics)),
		RecentActivity:   make([]dto.HistoryEntryResponse, 0, len(recentActivity)),
		QuizSources:      make([]dto.SourceBreakdownResponse, 0, len(sources)),
	}
	for _, tp := range topTopics {
		stats.TopTopics = append(stats.TopTopics, dto.TopicPerformanceResponse(tp))
	}
	for _, e := range recentActivity {
		stats.RecentActivity = append(stats.RecentActivity, toHistoryEntryResponse(e))
	}
	for _, sb := range sources {
		stats.QuizSources = append(stats.QuizSources, dto.SourceBreakdownResponse(sb))
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey(userID), string(payload), statsCacheTTL); err != nil {
				appLogger.Warn("Stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

// InvalidateUserStats drops the cached stats entry, typically after a new
// submission changes the aggregates.
func (s *statsService) InvalidateUserStats(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, statsCacheKey(userID))
}
