package validation

import (
	"fmt"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/request"
)

// maxAllocationEntries guards against absurd snapshots; real portfolios hold
// a handful of asset classes.
const maxAllocationEntries = 50

// ValidateWellnessScore checks a scoring request. The scoring engine itself
// tolerates sparse input, so validation only rejects values that are
// structurally wrong rather than merely missing.
func ValidateWellnessScore(req request.WellnessScoreRequest) error {
	errors := make(map[string]string)

	if req.TotalValue != nil && *req.TotalValue < 0 {
		errors["totalValue"] = "total value cannot be negative"
	}

	if len(req.Allocation) > maxAllocationEntries {
		errors["allocation"] = fmt.Sprintf("allocation cannot have more than %d entries", maxAllocationEntries)
	}
	for name, weight := range req.Allocation {
		if weight < 0 {
			errors["allocation"] = fmt.Sprintf("weight for %q cannot be negative", name)
			break
		}
	}

	if req.TaxAdvantagedAccounts < 0 {
		errors["taxAdvantagedAccounts"] = "account count cannot be negative"
	}

	if req.LiquidAssets != nil && (*req.LiquidAssets < 0 || *req.LiquidAssets > 100) {
		errors["liquidAssets"] = "liquid assets must be a percentage between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
