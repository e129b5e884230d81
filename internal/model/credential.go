package model

import "time"

// AdvisorCredential is the bearer token for upstream advisor calls. The token
// is fernet-encrypted at rest; this struct carries the decrypted value in
// memory only.
type AdvisorCredential struct {
	ID        string
	Token     string
	UpdatedAt time.Time
}
