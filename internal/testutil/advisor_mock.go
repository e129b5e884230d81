package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
)

// MockPrimaryClient is a mock implementation of advisor.PrimaryClient for
// testing. It returns predefined data instead of making actual GraphQL calls.
type MockPrimaryClient struct {
	// MockPayload is the payload to return on success
	MockPayload *advisor.Payload
	// MockWarnings simulates a degraded success (payload plus GraphQL errors)
	MockWarnings []string
	// MockError is the error to return instead of a payload
	MockError error
	// Delay holds the response until it elapses or the context is cancelled,
	// simulating a slow or hung primary channel
	Delay time.Duration

	mu        sync.Mutex
	callCount int
}

// NewMockPrimaryClient creates a mock primary client returning default test data.
func NewMockPrimaryClient() *MockPrimaryClient {
	return &MockPrimaryClient{
		MockPayload: CreateMockPayload(),
	}
}

// FetchRecommendations returns the configured payload or error, honoring the
// configured delay and context cancellation.
func (m *MockPrimaryClient) FetchRecommendations(ctx context.Context, _ bool) (*advisor.Payload, []string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-timer.C:
		}
	}

	if m.MockError != nil {
		return nil, nil, m.MockError
	}
	return m.MockPayload, m.MockWarnings, nil
}

// CallCount reports how many times FetchRecommendations was invoked.
func (m *MockPrimaryClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// WithError configures the mock to return the specified error.
func (m *MockPrimaryClient) WithError(err error) *MockPrimaryClient {
	m.MockError = err
	return m
}

// WithDelay configures the mock to hold its response for the given duration.
func (m *MockPrimaryClient) WithDelay(d time.Duration) *MockPrimaryClient {
	m.Delay = d
	return m
}

// WithWarnings configures the mock to return a degraded success.
func (m *MockPrimaryClient) WithWarnings(warnings ...string) *MockPrimaryClient {
	m.MockWarnings = warnings
	return m
}

// AdvisorResponse scripts one HTTP response of a StubAdvisorServer.
type AdvisorResponse struct {
	Status int
	Body   string
}

// StubAdvisorServer is an httptest server that plays back a scripted sequence
// of responses, one per request, and records when each request arrived. Once
// the script is exhausted the last response repeats.
type StubAdvisorServer struct {
	Server *httptest.Server

	mu        sync.Mutex
	script    []AdvisorResponse
	callTimes []time.Time
}

// NewStubAdvisorServer starts a scripted advisor endpoint. The server is shut
// down when the test completes.
func NewStubAdvisorServer(t *testing.T, script ...AdvisorResponse) *StubAdvisorServer {
	t.Helper()

	if len(script) == 0 {
		t.Fatal("StubAdvisorServer needs at least one scripted response")
	}

	s := &StubAdvisorServer{script: script}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)

	return s
}

// URL returns the server's endpoint URL.
func (s *StubAdvisorServer) URL() string {
	return s.Server.URL
}

// CallCount reports how many requests the server received.
func (s *StubAdvisorServer) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.callTimes)
}

// CallTimes returns the arrival timestamps of all requests, in order.
func (s *StubAdvisorServer) CallTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	times := make([]time.Time, len(s.callTimes))
	copy(times, s.callTimes)
	return times
}

func (s *StubAdvisorServer) handle(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	index := len(s.callTimes)
	s.callTimes = append(s.callTimes, time.Now())
	if index >= len(s.script) {
		index = len(s.script) - 1
	}
	response := s.script[index]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Status)
	_, _ = w.Write([]byte(response.Body))
}

// GraphQLSuccessBody wraps a payload in the advisor response envelope.
func GraphQLSuccessBody(t *testing.T, payload *advisor.Payload) string {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"data": map[string]any{"aiRecommendations": payload},
	})
	if err != nil {
		t.Fatalf("Failed to encode advisor response: %v", err)
	}
	return string(body)
}

// GraphQLErrorBody builds a response carrying only GraphQL errors.
func GraphQLErrorBody(t *testing.T, messages ...string) string {
	t.Helper()

	errs := make([]map[string]string, 0, len(messages))
	for _, message := range messages {
		errs = append(errs, map[string]string{"message": message})
	}
	body, err := json.Marshal(map[string]any{"errors": errs})
	if err != nil {
		t.Fatalf("Failed to encode advisor error response: %v", err)
	}
	return string(body)
}
