// Package adapter provides the transport layer for the remote record
// store that backs the lingoreel collections.
//
// The primary abstraction is [RecordStore], which decouples the sync
// engine from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRecordStore]) speaking the backend's
// collection/record API, including its string filter language (see
// [Eq], [And] and [SanitizeFilterValue]).
//
// Transport-level failures are wrapped in [TransientError] so that the
// retry policy in the sync engine can distinguish them from permanent
// per-item errors via [IsTransient]. Non-2xx responses are mapped to the
// sentinel errors defined in errors.go where a sentinel exists.
package adapter

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/record_store_mock.go -package=mock

// ListQuery narrows and orders a collection listing.
type ListQuery struct {
	// Filter is a backend filter expression such as
	// `user = "abc" && language = "ja"`. Interpolated values must be
	// escaped with SanitizeFilterValue; the Eq helper does this.
	Filter string

	// Sort is the backend sort expression, e.g. "-updated".
	Sort string
}

// RecordStore is transport-agnostic access to the remote record store.
// Every operation is scoped to the identity set via SetToken; all public
// sync entry points are expected to no-op while UserID is empty.
type RecordStore interface {
	// SetToken installs the bearer token used for subsequent requests and
	// derives the ambient user id from it. An empty token clears both.
	// Returns an error when a non-empty token cannot be parsed.
	SetToken(token string) error

	// Token returns the currently installed bearer token, or "".
	Token() string

	// UserID returns the id of the authenticated user, or "" when no
	// identity is known.
	UserID() string

	// List fetches every record of the collection matching q, following
	// server-side pagination to exhaustion. Records are returned as raw
	// JSON documents for the caller to decode.
	List(ctx context.Context, collection string, q ListQuery) ([]json.RawMessage, error)

	// Create inserts a new record. The body may carry an explicit "id"
	// field, which the backend adopts as the record's primary key.
	Create(ctx context.Context, collection string, body any) error

	// Update overwrites the record identified by recordID with body.
	Update(ctx context.Context, collection, recordID string, body any) error

	// Delete removes the record identified by recordID.
	Delete(ctx context.Context, collection, recordID string) error
}
