package model

import "time"

// FetchEvent is one persisted orchestrator transition. A logical request
// produces a bounded run of events sharing a request ID; the attempt column
// is 0 while the request is still on the primary channel.
type FetchEvent struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"requestId"`
	FromState    string    `json:"fromState"`
	ToState      string    `json:"toState"`
	Attempt      int       `json:"attempt"`
	Channel      string    `json:"channel"`
	ErrorKind    string    `json:"errorKind,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FetchEventFilter narrows telemetry queries.
type FetchEventFilter struct {
	RequestID string // exact match when set
	ToState   string // exact match when set
	Limit     int    // max rows, newest first; 0 means the default limit
}
