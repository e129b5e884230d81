package request

// SetCredentialRequest carries a new advisor bearer token.
type SetCredentialRequest struct {
	Token string `json:"token"`
}
