package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// envelope is the GraphQL-over-HTTP response wrapper. Data stays raw so the
// absent key, null, and present cases can be told apart.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// classifyResponse applies the response validation policy, in order: HTTP
// status, JSON parseability, presence of the data key, presence of the
// expected top-level field, and finally GraphQL errors. A payload accompanied
// by GraphQL errors is accepted as a degraded success; the error messages come
// back as warnings for the caller to log, never as a failure.
func classifyResponse(status int, body []byte) (*Payload, []string, error) {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, nil, &FetchError{
			Kind:        KindHTTPStatus,
			Status:      status,
			BodySnippet: snippet(body),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, &FetchError{
			Kind:    KindMalformed,
			Err:     err,
			Message: "advisor response is not valid JSON",
		}
	}

	payload, shapeErr := payloadFromData(env.Data)

	if len(env.Errors) > 0 {
		if payload == nil {
			return nil, nil, &FetchError{
				Kind:    KindGraphQL,
				Message: joinGraphQLErrors(env.Errors),
			}
		}
		// Usable data alongside errors: degraded success, not a failure.
		warnings := make([]string, 0, len(env.Errors))
		for _, gqlErr := range env.Errors {
			warnings = append(warnings, gqlErr.Message)
		}
		return payload, warnings, nil
	}

	if shapeErr != nil {
		return nil, nil, shapeErr
	}

	return payload, nil, nil
}

// payloadFromData extracts the recommendation payload from the raw data value.
// Returns nil with a shape error when the data key is absent, null, or missing
// the expected field.
func payloadFromData(data json.RawMessage) (*Payload, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, &FetchError{
			Kind:    KindShape,
			Message: "advisor response has no data key",
		}
	}

	var wrapper struct {
		AIRecommendations *Payload `json:"aiRecommendations"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, &FetchError{
			Kind:    KindShape,
			Err:     err,
			Message: "advisor data has unexpected shape",
		}
	}
	if wrapper.AIRecommendations == nil {
		return nil, &FetchError{
			Kind:    KindShape,
			Message: "advisor data is missing aiRecommendations",
		}
	}

	return wrapper.AIRecommendations, nil
}

// classifyRequestError classifies failures that occur before a response body
// is available. Caller cancellation passes through unclassified so the
// orchestrator can distinguish it from attempt-level timeouts.
func classifyRequestError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{
			Kind:    KindTimeout,
			Err:     err,
			Message: "advisor request timed out",
		}
	}
	return &FetchError{
		Kind:    KindTransport,
		Err:     err,
		Message: "advisor request failed",
	}
}

func joinGraphQLErrors(gqlErrors []GraphQLError) string {
	msgs := make([]string, 0, len(gqlErrors))
	for _, gqlErr := range gqlErrors {
		msgs = append(msgs, gqlErr.Message)
	}
	return fmt.Sprintf("advisor returned errors with no data: %s", strings.Join(msgs, "; "))
}
