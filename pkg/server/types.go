package server

import "time"

// ErrorResponse is the JSON envelope for every error response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HealthResponse is the body of the liveness and readiness endpoints.
// SnapshotDate reports the currently cached snapshot, when one has been
// resolved; the probe never performs a durable read to find out.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	SnapshotDate string    `json:"snapshot_date,omitempty"`
	Reason       string    `json:"reason,omitempty"`
}
