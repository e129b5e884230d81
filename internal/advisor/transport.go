package advisor

import (
	"context"
	"net/http"
	"time"
)

// FallbackTransport posts the recommendation operation directly to the
// configured endpoint, bypassing the primary channel. Each call is one
// attempt, bounded by its own timeout; retry sequencing belongs to the
// orchestrator, not here.
type FallbackTransport struct {
	httpClient     *http.Client
	endpoint       string
	token          TokenSource
	attemptTimeout time.Duration
}

// NewFallbackTransport creates a fallback transport for the given endpoint.
// attemptTimeout bounds each individual request; expiry is classified as a
// timeout error distinct from transport failures.
func NewFallbackTransport(endpoint string, token TokenSource, attemptTimeout time.Duration) *FallbackTransport {
	return &FallbackTransport{
		httpClient:     &http.Client{},
		endpoint:       endpoint,
		token:          token,
		attemptTimeout: attemptTimeout,
	}
}

// Do executes a single fallback attempt. The response passes through the
// standard validation policy; all failures come back as classified
// FetchErrors except caller cancellation, which returns ctx.Err().
func (t *FallbackTransport) Do(ctx context.Context, useDefaults bool) (*Payload, []string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.attemptTimeout)
	defer cancel()

	return postRecommendations(attemptCtx, t.httpClient, t.endpoint, t.token, useDefaults)
}
