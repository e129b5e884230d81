package service_test

import (
	"testing"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/testutil"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/wellness"
)

// TestWellnessService_ComputeScore tests the scoring wrapper.
//
// WHY: The service adds the calculation timestamp around the pure scoring
// function; the score itself must match a direct computation.
func TestWellnessService_ComputeScore(t *testing.T) {
	svc := service.NewWellnessService()
	snapshot := testutil.CreateTestSnapshot()

	result := svc.ComputeScore(snapshot)

	want := wellness.Compute(snapshot)
	if result.Overall != want.Overall {
		t.Errorf("Expected overall score %d, got %d", want.Overall, result.Overall)
	}
	if result.Metrics != want.Metrics {
		t.Errorf("Expected metrics %+v, got %+v", want.Metrics, result.Metrics)
	}
	if result.CalculatedAt.IsZero() {
		t.Error("Expected a calculation timestamp")
	}
}
