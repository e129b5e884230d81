package validation_test

import (
	"errors"
	"testing"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/request"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/testutil"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/validation"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/wellness"
)

// TestValidateWellnessScore tests snapshot validation.
//
// WHY: The scoring engine tolerates sparse input by design, so validation must
// pass empty snapshots and only reject structurally impossible values.
func TestValidateWellnessScore(t *testing.T) {
	t.Run("accepts an empty snapshot", func(t *testing.T) {
		if err := validation.ValidateWellnessScore(request.WellnessScoreRequest{}); err != nil {
			t.Errorf("Expected an empty snapshot to pass, got %v", err)
		}
	})

	t.Run("accepts a full snapshot", func(t *testing.T) {
		req := request.WellnessScoreRequest{PortfolioSnapshot: testutil.CreateTestSnapshot()}
		if err := validation.ValidateWellnessScore(req); err != nil {
			t.Errorf("Expected a full snapshot to pass, got %v", err)
		}
	})

	t.Run("rejects invalid values with field errors", func(t *testing.T) {
		req := request.WellnessScoreRequest{
			PortfolioSnapshot: wellness.PortfolioSnapshot{
				TotalValue:            testutil.FloatPtr(-1),
				Allocation:            map[string]float64{"stocks": -10},
				TaxAdvantagedAccounts: -2,
				LiquidAssets:          testutil.FloatPtr(130),
			},
		}

		err := validation.ValidateWellnessScore(req)
		if err == nil {
			t.Fatal("Expected validation to fail")
		}

		var validationErr *validation.Error
		if !errors.As(err, &validationErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		for _, field := range []string{"totalValue", "allocation", "taxAdvantagedAccounts", "liquidAssets"} {
			if validationErr.Fields[field] == "" {
				t.Errorf("Expected a field error for %s, got %v", field, validationErr.Fields)
			}
		}
	})

	t.Run("rejects oversized allocation maps", func(t *testing.T) {
		allocation := make(map[string]float64)
		for i := 0; i < 51; i++ {
			allocation[string(rune('A'+i%26))+string(rune('a'+i/26))] = 1
		}
		req := request.WellnessScoreRequest{
			PortfolioSnapshot: wellness.PortfolioSnapshot{Allocation: allocation},
		}

		if err := validation.ValidateWellnessScore(req); err == nil {
			t.Error("Expected an oversized allocation map to fail validation")
		}
	})
}
