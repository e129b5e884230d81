package advisor

import (
	"errors"
	"fmt"
)

// Kind classifies a failed fetch attempt. The taxonomy mirrors the layers a
// response passes through: reaching the server, getting a 2xx, parsing the
// body, and finding the expected GraphQL shape inside it.
type Kind string

const (
	// KindTransport covers network-level failures: unreachable host, DNS, TLS.
	KindTransport Kind = "transport"

	// KindTimeout covers per-attempt timeout expiry and the primary watchdog.
	KindTimeout Kind = "timeout"

	// KindHTTPStatus covers non-2xx responses. The error carries the status
	// code and a snippet of the response body.
	KindHTTPStatus Kind = "http_status"

	// KindMalformed covers bodies that are not parseable JSON.
	KindMalformed Kind = "malformed_response"

	// KindShape covers parseable responses missing the data key or the
	// expected top-level field.
	KindShape Kind = "protocol_shape"

	// KindGraphQL covers responses carrying GraphQL errors with no usable data.
	KindGraphQL Kind = "graphql_error"
)

// snippetLimit bounds how many characters of an error response body are kept.
const snippetLimit = 200

// FetchError is a classified failure of a single fetch attempt.
type FetchError struct {
	Kind        Kind
	Status      int    // HTTP status code, set for KindHTTPStatus
	BodySnippet string // up to snippetLimit chars of the response body
	Err         error  // underlying cause, may be nil
	Message     string // human-readable detail
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		if e.BodySnippet != "" {
			return fmt.Sprintf("%s: advisor returned HTTP %d: %s", e.Kind, e.Status, e.BodySnippet)
		}
		return fmt.Sprintf("%s: advisor returned HTTP %d", e.Kind, e.Status)
	default:
		if e.Message != "" && e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
		}
		if e.Message != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Message)
		}
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return string(e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification of an error, or an empty Kind when the
// error did not originate from a fetch attempt.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// snippet truncates a response body for inclusion in errors and logs. The
// limit counts characters, not bytes, so a multibyte body is never cut
// mid-character.
func snippet(body []byte) string {
	runes := []rune(string(body))
	if len(runes) > snippetLimit {
		runes = runes[:snippetLimit]
	}
	return string(runes)
}
