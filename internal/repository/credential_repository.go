package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
)

// credentialRowID pins the advisor_credential table to a single row; storing
// a new token replaces the previous one.
const credentialRowID = "advisor"

// CredentialRepository stores the advisor bearer token, fernet-encrypted at
// rest. The encryption key comes from configuration and never touches the
// database.
type CredentialRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewCredentialRepository creates a credential repository. encodedKey is the
// base64 fernet key from configuration; an empty key disables credential
// storage and every call returns ErrEncryptionKeyNotConfigured.
func NewCredentialRepository(db *sql.DB, encodedKey string) (*CredentialRepository, error) {
	repo := &CredentialRepository{db: db}

	if encodedKey != "" {
		key, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode credential encryption key: %w", err)
		}
		repo.key = key
	}

	return repo, nil
}

// UpsertToken encrypts and stores the token, replacing any previous one.
func (r *CredentialRepository) UpsertToken(token string) error {
	if r.key == nil {
		return apperrors.ErrEncryptionKeyNotConfigured
	}

	ciphertext, err := fernet.EncryptAndSign([]byte(token), r.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt advisor token: %w", err)
	}

	query := `
          INSERT INTO advisor_credential (id, token_ciphertext, updated_at)
          VALUES (?, ?, ?)
          ON CONFLICT (id) DO UPDATE SET
              token_ciphertext = excluded.token_ciphertext,
              updated_at = excluded.updated_at
      `

	if _, err := r.db.Exec(query, credentialRowID, string(ciphertext), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store advisor credential: %w", err)
	}

	return nil
}

// GetCredential retrieves and decrypts the stored credential.
func (r *CredentialRepository) GetCredential() (model.AdvisorCredential, error) {
	if r.key == nil {
		return model.AdvisorCredential{}, apperrors.ErrEncryptionKeyNotConfigured
	}

	query := `
          SELECT id, token_ciphertext, updated_at
          FROM advisor_credential
          WHERE id = ?
      `

	var credential model.AdvisorCredential
	var ciphertext string

	err := r.db.QueryRow(query, credentialRowID).Scan(
		&credential.ID,
		&ciphertext,
		&credential.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AdvisorCredential{}, apperrors.ErrCredentialNotFound
	}
	if err != nil {
		return model.AdvisorCredential{}, fmt.Errorf("failed to query advisor credential: %w", err)
	}

	// TTL 0 disables expiry; rotation happens by storing a new token.
	plaintext := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, []*fernet.Key{r.key})
	if plaintext == nil {
		return model.AdvisorCredential{}, fmt.Errorf("failed to decrypt advisor credential: %w", apperrors.ErrFailedToRetrieveCredential)
	}

	credential.Token = string(plaintext)
	return credential, nil
}
