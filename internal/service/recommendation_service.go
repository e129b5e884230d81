package service

import (
	"context"
	"sync"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
)

// CachedResult is a refresher-produced result with its fetch time, served to
// clients that want instant content while a live fetch runs.
type CachedResult struct {
	Result    *advisor.Result `json:"result"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// RecommendationService runs recommendation fetches through the fallback
// orchestrator and keeps the last good result for cached reads. Each Fetch
// call is an independent logical request; the cache is only ever written from
// Refresh so live failures cannot clobber known-good data.
type RecommendationService struct {
	orchestrator *advisor.Orchestrator

	mu     sync.RWMutex
	cached map[bool]*CachedResult // keyed by useDefaults
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(orchestrator *advisor.Orchestrator) *RecommendationService {
	return &RecommendationService{
		orchestrator: orchestrator,
		cached:       make(map[bool]*CachedResult),
	}
}

// Fetch runs one logical recommendation request to completion.
func (s *RecommendationService) Fetch(ctx context.Context, useDefaults bool) (*advisor.Result, error) {
	return s.orchestrator.Fetch(ctx, useDefaults)
}

// RetryFallback restarts a failed request from fallback attempt 1, backing
// the caller's manual retry affordance.
func (s *RecommendationService) RetryFallback(ctx context.Context, useDefaults bool) (*advisor.Result, error) {
	return s.orchestrator.Retry(ctx, useDefaults)
}

// Refresh performs a warm fetch and stores the result on success. Used by the
// background refresher; failures leave the previous cached result in place.
func (s *RecommendationService) Refresh(ctx context.Context, useDefaults bool) error {
	result, err := s.orchestrator.Fetch(ctx, useDefaults)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached[useDefaults] = &CachedResult{Result: result, FetchedAt: time.Now().UTC()}
	s.mu.Unlock()
	return nil
}

// Cached returns the last good refresher result for the given variant.
func (s *RecommendationService) Cached(useDefaults bool) (*CachedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.cached[useDefaults]
	if !ok {
		return nil, apperrors.ErrNoCachedResult
	}
	return cached, nil
}
