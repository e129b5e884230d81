package validation

import (
	"fmt"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
)

const maxEventLimit = 1000

var knownStates = map[string]bool{
	string(advisor.StateIdle):            true,
	string(advisor.StatePrimaryPending):  true,
	string(advisor.StateFallbackPending): true,
	string(advisor.StateRetrying):        true,
	string(advisor.StateSucceeded):       true,
	string(advisor.StateFailed):          true,
}

// ValidateFetchEventFilter checks the telemetry listing filter.
func ValidateFetchEventFilter(filter model.FetchEventFilter) error {
	errors := make(map[string]string)

	if filter.RequestID != "" {
		if err := ValidateUUID(filter.RequestID); err != nil {
			errors["requestId"] = err.Error()
		}
	}

	if filter.ToState != "" && !knownStates[filter.ToState] {
		errors["state"] = fmt.Sprintf("unknown state %q", filter.ToState)
	}

	if filter.Limit < 0 || filter.Limit > maxEventLimit {
		errors["limit"] = fmt.Sprintf("limit must be between 0 and %d", maxEventLimit)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
