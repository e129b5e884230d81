package wellness

import (
	"math"
	"strings"
)

// Defaults applied when a snapshot field is not reported.
const (
	defaultVolatility       = 15.0
	defaultMaxDrawdown      = 10.0
	defaultSharpeRatio      = 1.0
	defaultCapitalGainsRate = 15.0
	defaultLiquidAssets     = 0.0
)

// Composite weights per dimension. Fixed by the product contract.
const (
	weightDiversification = 0.25
	weightRiskManagement  = 0.25
	weightTaxEfficiency   = 0.20
	weightPerformance     = 0.20
	weightLiquidity       = 0.10
)

// Compute maps a portfolio snapshot to a wellness score. Pure and
// deterministic: no side effects, no error paths; missing inputs degrade to
// defaults. Each sub-score is clamped to [0, 100] and rounded half away from
// zero (math.Round); the composite is the weighted sum of the rounded
// sub-scores, rounded the same way.
func Compute(snapshot PortfolioSnapshot) Score {
	metrics := Metrics{
		Diversification: scoreInt(diversificationScore(snapshot.Allocation)),
		RiskManagement:  scoreInt(riskScore(snapshot)),
		TaxEfficiency:   scoreInt(taxEfficiencyScore(snapshot)),
		Performance:     scoreInt(performanceScore(snapshot.Returns)),
		Liquidity:       scoreInt(liquidityScore(snapshot)),
	}

	composite := weightDiversification*float64(metrics.Diversification) +
		weightRiskManagement*float64(metrics.RiskManagement) +
		weightTaxEfficiency*float64(metrics.TaxEfficiency) +
		weightPerformance*float64(metrics.Performance) +
		weightLiquidity*float64(metrics.Liquidity)

	return Score{
		Overall: int(math.Round(composite)),
		Metrics: metrics,
		Advice:  adviceFor(metrics),
	}
}

// diversificationScore: base 70, bonus for breadth capped at 30, penalty of
// half the excess when a single allocation exceeds 50% weight.
func diversificationScore(allocation map[string]float64) float64 {
	score := 70.0

	assetCount := len(allocation)
	score += math.Min(float64(assetCount)*10, 30)

	maxWeight := 0.0
	for _, weight := range allocation {
		if weight > maxWeight {
			maxWeight = weight
		}
	}
	if maxWeight > 50 {
		score -= (maxWeight - 50) * 0.5
	}

	return score
}

// riskScore: mean of a volatility component, a drawdown component, and a
// Sharpe component.
func riskScore(snapshot PortfolioSnapshot) float64 {
	volatility := orDefault(snapshot.Volatility, defaultVolatility)
	maxDrawdown := orDefault(snapshot.MaxDrawdown, defaultMaxDrawdown)
	sharpe := orDefault(snapshot.SharpeRatio, defaultSharpeRatio)

	volComponent := math.Max(0, 100-volatility*2)
	drawdownComponent := math.Max(0, 100-maxDrawdown*3)
	sharpeComponent := math.Min(100, sharpe*30)

	return (volComponent + drawdownComponent + sharpeComponent) / 3
}

// taxEfficiencyScore: base 50 plus fixed bonuses for harvesting, advantaged
// accounts, and a low capital-gains rate.
func taxEfficiencyScore(snapshot PortfolioSnapshot) float64 {
	score := 50.0
	if snapshot.TaxLossHarvesting {
		score += 20
	}
	if snapshot.TaxAdvantagedAccounts > 0 {
		score += 15
	}
	if orDefault(snapshot.CapitalGainsRate, defaultCapitalGainsRate) < 15 {
		score += 15
	}
	return score
}

// performanceScore: 50 centered on benchmark-relative YTD return, two points
// per percentage point of excess return.
func performanceScore(returns map[string]float64) float64 {
	return 50 + (returns["ytd"]-returns["benchmark"])*2
}

// liquidityScore: rewards a cash buffer strictly between 5% and 20% and a
// high liquid-asset share; penalizes cash hoarding.
func liquidityScore(snapshot PortfolioSnapshot) float64 {
	score := 50.0

	cash := cashWeight(snapshot.Allocation)
	if cash > 5 && cash < 20 {
		score += 20
	}
	if cash > 20 {
		score -= 10
	}
	if orDefault(snapshot.LiquidAssets, defaultLiquidAssets) > 80 {
		score += 20
	}

	return score
}

// cashWeight finds the cash allocation entry, tolerating key casing.
func cashWeight(allocation map[string]float64) float64 {
	for name, weight := range allocation {
		if strings.EqualFold(name, "cash") {
			return weight
		}
	}
	return 0
}

// scoreInt clamps to [0, 100] and rounds half away from zero.
func scoreInt(score float64) int {
	return int(math.Round(math.Min(100, math.Max(0, score))))
}

func orDefault(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
