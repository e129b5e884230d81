package testutil

import (
	"database/sql"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/repository"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
)

// MakeID generates a unique UUID for test data.
func MakeID() string {
	return uuid.New().String()
}

// FloatPtr returns a pointer to the given float64. Snapshot optionals are
// pointers, so literal test inputs need this.
func FloatPtr(v float64) *float64 {
	return &v
}

// TestEncryptionKey generates a fresh fernet key encoded for configuration.
func TestEncryptionKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate test encryption key: %v", err)
	}
	return key.Encode()
}

// NewTestTelemetryService creates a TelemetryService wired to the test
// database. The service's writer is closed when the test completes.
func NewTestTelemetryService(t *testing.T, db *sql.DB) *service.TelemetryService {
	t.Helper()

	telemetryRepo := repository.NewTelemetryRepository(db)
	telemetryService := service.NewTelemetryService(telemetryRepo)
	t.Cleanup(telemetryService.Close)

	return telemetryService
}

// NewTestCredentialService creates a CredentialService backed by the test
// database with a freshly generated encryption key and no fallback token.
func NewTestCredentialService(t *testing.T, db *sql.DB) *service.CredentialService {
	t.Helper()

	credentialRepo, err := repository.NewCredentialRepository(db, TestEncryptionKey(t))
	if err != nil {
		t.Fatalf("Failed to create credential repository: %v", err)
	}

	return service.NewCredentialService(credentialRepo, "")
}
