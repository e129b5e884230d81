package repository_test

import (
	"errors"
	"testing"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/repository"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/testutil"
)

// TestCredentialRepository_RoundTrip tests encrypted token storage.
//
// WHY: The advisor token is the only secret this service persists. It must
// survive a store/load round trip, and the ciphertext at rest must not contain
// the plaintext.
func TestCredentialRepository_RoundTrip(t *testing.T) {
	t.Run("stores and retrieves a token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewCredentialRepository(db, testutil.TestEncryptionKey(t))
		if err != nil {
			t.Fatalf("NewCredentialRepository() returned unexpected error: %v", err)
		}

		if err := repo.UpsertToken("sk-advisor-token-1234"); err != nil {
			t.Fatalf("UpsertToken() returned unexpected error: %v", err)
		}

		credential, err := repo.GetCredential()
		if err != nil {
			t.Fatalf("GetCredential() returned unexpected error: %v", err)
		}
		if credential.Token != "sk-advisor-token-1234" {
			t.Errorf("Expected the stored token back, got %q", credential.Token)
		}
		if credential.UpdatedAt.IsZero() {
			t.Error("Expected a non-zero updated timestamp")
		}
	})

	t.Run("token is encrypted at rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewCredentialRepository(db, testutil.TestEncryptionKey(t))
		if err != nil {
			t.Fatalf("NewCredentialRepository() returned unexpected error: %v", err)
		}

		if err := repo.UpsertToken("plaintext-secret"); err != nil {
			t.Fatalf("UpsertToken() returned unexpected error: %v", err)
		}

		var ciphertext string
		if err := db.QueryRow("SELECT token_ciphertext FROM advisor_credential").Scan(&ciphertext); err != nil {
			t.Fatalf("Failed to read stored ciphertext: %v", err)
		}
		if ciphertext == "plaintext-secret" {
			t.Error("Token stored in plaintext")
		}
	})

	t.Run("storing a new token replaces the old one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewCredentialRepository(db, testutil.TestEncryptionKey(t))
		if err != nil {
			t.Fatalf("NewCredentialRepository() returned unexpected error: %v", err)
		}

		if err := repo.UpsertToken("old-token"); err != nil {
			t.Fatalf("UpsertToken() returned unexpected error: %v", err)
		}
		if err := repo.UpsertToken("new-token"); err != nil {
			t.Fatalf("UpsertToken() returned unexpected error: %v", err)
		}

		credential, err := repo.GetCredential()
		if err != nil {
			t.Fatalf("GetCredential() returned unexpected error: %v", err)
		}
		if credential.Token != "new-token" {
			t.Errorf("Expected the replacement token, got %q", credential.Token)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM advisor_credential").Scan(&count); err != nil {
			t.Fatalf("Failed to count credential rows: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected a single credential row, got %d", count)
		}
	})
}

// TestCredentialRepository_Errors tests the failure modes.
//
// WHY: A missing credential and a missing encryption key are distinct
// conditions with distinct API responses; callers tell them apart by sentinel.
func TestCredentialRepository_Errors(t *testing.T) {
	t.Run("missing credential returns sentinel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewCredentialRepository(db, testutil.TestEncryptionKey(t))
		if err != nil {
			t.Fatalf("NewCredentialRepository() returned unexpected error: %v", err)
		}

		_, err = repo.GetCredential()
		if !errors.Is(err, apperrors.ErrCredentialNotFound) {
			t.Errorf("Expected ErrCredentialNotFound, got %v", err)
		}
	})

	t.Run("empty key disables credential storage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewCredentialRepository(db, "")
		if err != nil {
			t.Fatalf("NewCredentialRepository() returned unexpected error: %v", err)
		}

		if err := repo.UpsertToken("token"); !errors.Is(err, apperrors.ErrEncryptionKeyNotConfigured) {
			t.Errorf("Expected ErrEncryptionKeyNotConfigured on store, got %v", err)
		}
		if _, err := repo.GetCredential(); !errors.Is(err, apperrors.ErrEncryptionKeyNotConfigured) {
			t.Errorf("Expected ErrEncryptionKeyNotConfigured on load, got %v", err)
		}
	})

	t.Run("rejects an undecodable key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		if _, err := repository.NewCredentialRepository(db, "not-a-valid-fernet-key"); err == nil {
			t.Error("Expected an error for an undecodable encryption key")
		}
	})
}
