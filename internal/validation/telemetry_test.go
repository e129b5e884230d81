package validation_test

import (
	"testing"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/testutil"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/validation"
)

// TestValidateFetchEventFilter tests telemetry filter validation.
//
// WHY: Filter values come straight from query strings; unknown states and
// absurd limits must fail before reaching the database.
func TestValidateFetchEventFilter(t *testing.T) {
	t.Run("accepts an empty filter", func(t *testing.T) {
		if err := validation.ValidateFetchEventFilter(model.FetchEventFilter{}); err != nil {
			t.Errorf("Expected an empty filter to pass, got %v", err)
		}
	})

	t.Run("accepts a fully specified filter", func(t *testing.T) {
		filter := model.FetchEventFilter{
			RequestID: testutil.MakeID(),
			ToState:   "failed",
			Limit:     50,
		}
		if err := validation.ValidateFetchEventFilter(filter); err != nil {
			t.Errorf("Expected a valid filter to pass, got %v", err)
		}
	})

	t.Run("rejects a malformed request id", func(t *testing.T) {
		filter := model.FetchEventFilter{RequestID: "not-a-uuid"}
		if err := validation.ValidateFetchEventFilter(filter); err == nil {
			t.Error("Expected a malformed request ID to fail validation")
		}
	})

	t.Run("rejects an unknown state", func(t *testing.T) {
		filter := model.FetchEventFilter{ToState: "exploded"}
		if err := validation.ValidateFetchEventFilter(filter); err == nil {
			t.Error("Expected an unknown state to fail validation")
		}
	})

	t.Run("rejects limits outside the allowed range", func(t *testing.T) {
		for _, limit := range []int{-1, 1001} {
			filter := model.FetchEventFilter{Limit: limit}
			if err := validation.ValidateFetchEventFilter(filter); err == nil {
				t.Errorf("Expected limit %d to fail validation", limit)
			}
		}
	})
}
