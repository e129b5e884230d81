package service

import (
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/wellness"
)

// WellnessResult wraps a computed score with the calculation timestamp. The
// score itself is derived and ephemeral; nothing here is persisted.
type WellnessResult struct {
	wellness.Score
	CalculatedAt time.Time `json:"calculatedAt"`
}

// WellnessService handles wellness scoring business logic.
type WellnessService struct{}

// NewWellnessService creates a new WellnessService.
func NewWellnessService() *WellnessService {
	return &WellnessService{}
}

// ComputeScore maps a portfolio snapshot to its wellness score. The
// computation never fails; sparse snapshots degrade to documented defaults.
func (s *WellnessService) ComputeScore(snapshot wellness.PortfolioSnapshot) WellnessResult {
	return WellnessResult{
		Score:        wellness.Compute(snapshot),
		CalculatedAt: time.Now().UTC(),
	}
}
