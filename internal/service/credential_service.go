package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/repository"
)

// CredentialService resolves the advisor bearer token. A token stored through
// the developer API wins; otherwise the configured fallback token is used.
// It implements advisor.TokenSource.
type CredentialService struct {
	credentialRepo *repository.CredentialRepository
	fallbackToken  string
}

// NewCredentialService creates a new CredentialService. fallbackToken may be
// empty, in which case advisor calls go out unauthenticated until a
// credential is stored.
func NewCredentialService(credentialRepo *repository.CredentialRepository, fallbackToken string) *CredentialService {
	return &CredentialService{
		credentialRepo: credentialRepo,
		fallbackToken:  fallbackToken,
	}
}

// AdvisorToken returns the active bearer token. A missing stored credential
// or unconfigured encryption key falls through to the configured token.
func (s *CredentialService) AdvisorToken(_ context.Context) (string, error) {
	credential, err := s.credentialRepo.GetCredential()
	if err == nil {
		return credential.Token, nil
	}
	if errors.Is(err, apperrors.ErrCredentialNotFound) || errors.Is(err, apperrors.ErrEncryptionKeyNotConfigured) {
		return s.fallbackToken, nil
	}
	return "", err
}

// SetToken stores a new advisor token, replacing any previous one.
func (s *CredentialService) SetToken(token string) error {
	return s.credentialRepo.UpsertToken(token)
}

// CredentialInfo describes the stored credential without exposing the token.
type CredentialInfo struct {
	Stored      bool   `json:"stored"`
	TokenSuffix string `json:"tokenSuffix,omitempty"` // last 4 characters
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Describe reports masked metadata about the stored credential.
func (s *CredentialService) Describe() (CredentialInfo, error) {
	credential, err := s.credentialRepo.GetCredential()
	if errors.Is(err, apperrors.ErrCredentialNotFound) {
		return CredentialInfo{Stored: false}, nil
	}
	if err != nil {
		return CredentialInfo{}, err
	}

	return CredentialInfo{
		Stored:      true,
		TokenSuffix: tokenSuffix(credential),
		UpdatedAt:   credential.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

func tokenSuffix(credential model.AdvisorCredential) string {
	token := strings.TrimSpace(credential.Token)
	if len(token) <= 4 {
		return token
	}
	return token[len(token)-4:]
}
