package validation

import (
	"strings"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/request"
)

const maxTokenLength = 4096

// ValidateSetCredential checks a credential update request.
func ValidateSetCredential(req request.SetCredentialRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Token) == "" {
		errors["token"] = "token is required"
	} else if len(req.Token) > maxTokenLength {
		errors["token"] = "token is too long"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
