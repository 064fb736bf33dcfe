// Package storage provides read access to the object store holding
// published snapshot artifacts.
//
// Artifacts are immutable JSON documents written by the publishing
// pipeline; this service only ever reads them. Absence is a normal
// outcome (legacy layouts, partial publishes), so reads report a found
// flag instead of overloading the error return.
package storage

import "context"

// ObjectStore reads artifact bytes by key.
//
// Get returns (nil, false, nil) when the key does not exist. An error is
// returned only for transport or store failures, never for absence.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
}
