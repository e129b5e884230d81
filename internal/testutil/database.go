package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Fetch telemetry: one row per orchestrator transition
		CREATE TABLE fetch_telemetry (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			request_id VARCHAR(36) NOT NULL,
			from_state VARCHAR(20) NOT NULL,
			to_state VARCHAR(20) NOT NULL,
			attempt INTEGER NOT NULL DEFAULT 0,
			channel VARCHAR(10) NOT NULL,
			error_kind VARCHAR(30),
			error_message TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX idx_fetch_telemetry_request ON fetch_telemetry (request_id);
		CREATE INDEX idx_fetch_telemetry_created ON fetch_telemetry (created_at);

		-- Advisor credential: single fernet-encrypted bearer token
		CREATE TABLE advisor_credential (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			token_ciphertext TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
