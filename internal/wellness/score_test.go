package wellness_test

import (
	"reflect"
	"testing"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/testutil"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/wellness"
)

// TestCompute_Defaults tests scoring of sparse snapshots.
//
// WHY: The mobile client often has only partial portfolio data. Missing fields
// must degrade to documented defaults and produce a sane mid-range score, not
// zero or an alarming one.
func TestCompute_Defaults(t *testing.T) {
	t.Run("empty snapshot scores mid-range from defaults", func(t *testing.T) {
		// Execute
		score := wellness.Compute(wellness.PortfolioSnapshot{})

		// Assert: each dimension lands on its documented default-derived value
		want := wellness.Metrics{
			Diversification: 70,
			RiskManagement:  57,
			TaxEfficiency:   50,
			Performance:     50,
			Liquidity:       50,
		}
		if score.Metrics != want {
			t.Errorf("Expected metrics %+v, got %+v", want, score.Metrics)
		}

		// Composite: .25*70 + .25*57 + .2*50 + .2*50 + .1*50 = 56.75 -> 57
		if score.Overall != 57 {
			t.Errorf("Expected overall score 57, got %d", score.Overall)
		}
	})

	t.Run("nil pointer fields behave like unreported fields", func(t *testing.T) {
		explicit := wellness.PortfolioSnapshot{
			Volatility:       testutil.FloatPtr(15),
			MaxDrawdown:      testutil.FloatPtr(10),
			SharpeRatio:      testutil.FloatPtr(1.0),
			CapitalGainsRate: testutil.FloatPtr(15),
			LiquidAssets:     testutil.FloatPtr(0),
		}

		if got, want := wellness.Compute(explicit), wellness.Compute(wellness.PortfolioSnapshot{}); !reflect.DeepEqual(got, want) {
			t.Errorf("Explicit defaults scored %+v, empty snapshot scored %+v", got, want)
		}
	})
}

// TestCompute_Deterministic tests that scoring is a pure function.
//
// WHY: The score is recomputed on every request and compared across devices;
// the same snapshot must always yield the identical result.
func TestCompute_Deterministic(t *testing.T) {
	snapshot := testutil.CreateTestSnapshot()

	first := wellness.Compute(snapshot)
	for i := 0; i < 10; i++ {
		if got := wellness.Compute(snapshot); !reflect.DeepEqual(got, first) {
			t.Fatalf("Run %d scored %+v, first run scored %+v", i, got, first)
		}
	}
}

// TestCompute_Dimensions tests the individual sub-score formulas.
//
// WHY: Each dimension has a documented formula the client's coaching copy is
// built around; a silent formula drift would change every user's score.
func TestCompute_Dimensions(t *testing.T) {
	t.Run("diversification penalizes concentration", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Allocation: map[string]float64{"A": 90, "B": 10},
		})

		// Base 70 + breadth 20 - concentration (90-50)*0.5 = 70
		if score.Metrics.Diversification != 70 {
			t.Errorf("Expected diversification 70, got %d", score.Metrics.Diversification)
		}
	})

	t.Run("diversification breadth bonus caps at 30", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Allocation: map[string]float64{
				"a": 20, "b": 20, "c": 20, "d": 20, "e": 10, "f": 10,
			},
		})

		if score.Metrics.Diversification != 100 {
			t.Errorf("Expected diversification 100, got %d", score.Metrics.Diversification)
		}
	})

	t.Run("risk management averages volatility, drawdown, and sharpe", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Volatility:  testutil.FloatPtr(12),
			MaxDrawdown: testutil.FloatPtr(8),
			SharpeRatio: testutil.FloatPtr(1.4),
		})

		// (76 + 76 + 42) / 3 = 64.67 -> 65
		if score.Metrics.RiskManagement != 65 {
			t.Errorf("Expected risk management 65, got %d", score.Metrics.RiskManagement)
		}
	})

	t.Run("tax efficiency stacks fixed bonuses", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			TaxLossHarvesting:     true,
			TaxAdvantagedAccounts: 1,
			CapitalGainsRate:      testutil.FloatPtr(10),
		})

		if score.Metrics.TaxEfficiency != 100 {
			t.Errorf("Expected tax efficiency 100, got %d", score.Metrics.TaxEfficiency)
		}
	})

	t.Run("performance is centered on benchmark-relative return", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Returns: map[string]float64{"ytd": 12, "benchmark": 7},
		})

		// 50 + (12-7)*2 = 60
		if score.Metrics.Performance != 60 {
			t.Errorf("Expected performance 60, got %d", score.Metrics.Performance)
		}
	})

	t.Run("liquidity rewards a moderate cash buffer", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Allocation:   map[string]float64{"stocks": 90, "Cash": 10},
			LiquidAssets: testutil.FloatPtr(85),
		})

		// 50 + 20 (cash in range, case-insensitive key) + 20 (liquid > 80) = 90
		if score.Metrics.Liquidity != 90 {
			t.Errorf("Expected liquidity 90, got %d", score.Metrics.Liquidity)
		}
	})

	t.Run("liquidity penalizes cash hoarding", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Allocation: map[string]float64{"cash": 40, "stocks": 60},
		})

		if score.Metrics.Liquidity != 40 {
			t.Errorf("Expected liquidity 40, got %d", score.Metrics.Liquidity)
		}
	})
}

// TestCompute_Clamping tests adversarial inputs.
//
// WHY: Snapshot values come straight from client input; extreme or nonsensical
// numbers must clamp into [0, 100] rather than produce negative or runaway scores.
func TestCompute_Clamping(t *testing.T) {
	t.Run("extreme risk inputs clamp to zero", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Volatility:  testutil.FloatPtr(1000),
			MaxDrawdown: testutil.FloatPtr(500),
			SharpeRatio: testutil.FloatPtr(-50),
		})

		if score.Metrics.RiskManagement != 0 {
			t.Errorf("Expected risk management clamped to 0, got %d", score.Metrics.RiskManagement)
		}
	})

	t.Run("runaway outperformance clamps to 100", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Returns: map[string]float64{"ytd": 500, "benchmark": 0},
		})

		if score.Metrics.Performance != 100 {
			t.Errorf("Expected performance clamped to 100, got %d", score.Metrics.Performance)
		}
	})

	t.Run("deep underperformance clamps to zero", func(t *testing.T) {
		score := wellness.Compute(wellness.PortfolioSnapshot{
			Returns: map[string]float64{"ytd": -100, "benchmark": 50},
		})

		if score.Metrics.Performance != 0 {
			t.Errorf("Expected performance clamped to 0, got %d", score.Metrics.Performance)
		}
	})

	t.Run("composite stays within bounds", func(t *testing.T) {
		score := wellness.Compute(testutil.CreateTestSnapshot())

		if score.Overall < 0 || score.Overall > 100 {
			t.Errorf("Expected overall score in [0, 100], got %d", score.Overall)
		}
	})
}

// TestCompute_Composite tests the weighted composite.
//
// WHY: The composite is the headline number of the wellness feature. It must
// be the weighted sum of the rounded sub-scores, rounded half away from zero.
func TestCompute_Composite(t *testing.T) {
	score := wellness.Compute(testutil.CreateTestSnapshot())

	// Metrics: 98, 65, 85, 54, 90
	// .25*98 + .25*65 + .2*85 + .2*54 + .1*90 = 77.55 -> 78
	if score.Overall != 78 {
		t.Errorf("Expected overall score 78, got %d (metrics %+v)", score.Overall, score.Metrics)
	}
}
