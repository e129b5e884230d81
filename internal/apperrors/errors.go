package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrCredentialNotFound indicates that no advisor credential has been stored.
	ErrCredentialNotFound = errors.New("advisor credential not found")

	// ErrNoCachedResult indicates that the refresher has not produced a
	// successful result yet.
	ErrNoCachedResult = errors.New("no cached recommendation result")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidCutoff indicates that a telemetry purge cutoff is missing or unparseable.
	ErrInvalidCutoff = errors.New("invalid cutoff timestamp")

	// ErrEncryptionKeyNotConfigured indicates that credential storage was used
	// without ADVISOR_ENCRYPTION_KEY being set.
	ErrEncryptionKeyNotConfigured = errors.New("advisor encryption key not configured")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Telemetry operation errors
	ErrFailedToRecordFetchEvent    = errors.New("failed to record fetch event")
	ErrFailedToRetrieveFetchEvents = errors.New("failed to retrieve fetch events")
	ErrFailedToPurgeFetchEvents    = errors.New("failed to purge fetch events")

	// Credential operation errors
	ErrFailedToStoreCredential    = errors.New("failed to store advisor credential")
	ErrFailedToRetrieveCredential = errors.New("failed to retrieve advisor credential")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
