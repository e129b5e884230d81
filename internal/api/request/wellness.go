package request

import (
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/wellness"
)

// WellnessScoreRequest carries a caller-owned portfolio snapshot to score.
type WellnessScoreRequest struct {
	wellness.PortfolioSnapshot
}
