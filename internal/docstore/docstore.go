// Package docstore exposes application state as JSON documents in named
// collections. The surface is deliberately small: callers only ever insert,
// look up by equality filter, and apply field mutations. What engine backs
// the documents is an implementation detail of this package.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document matches a filter.
var ErrNotFound = errors.New("document not found")

// Filter matches documents whose top-level fields equal every entry.
type Filter map[string]any

// Update describes the mutations UpdateOne applies to a matched document.
// All three classes are applied together in one atomic write.
type Update struct {
	// Set assigns fields.
	Set map[string]any
	// Inc adds deltas to numeric fields; a missing field starts at zero.
	Inc map[string]float64
	// AddToSet appends scalar values to array fields unless already
	// present; a missing field starts as an empty array.
	AddToSet map[string]any
}

// Store is the document store adapter.
type Store interface {
	// Insert stores a document, assigning it a generated id when the
	// document does not carry one, and returns that id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// FindOne decodes the first matching document into out, or returns
	// ErrNotFound.
	FindOne(ctx context.Context, collection string, filter Filter, out any) error
	// FindMany decodes every matching document into out, which must be a
	// pointer to a slice. Zero matches decode an empty slice, not an error.
	FindMany(ctx context.Context, collection string, filter Filter, out any) error
	// UpdateOne applies update to the first matching document, or returns
	// ErrNotFound.
	UpdateOne(ctx context.Context, collection string, filter Filter, update Update) error
	// Collections lists the distinct collection names currently stored.
	Collections(ctx context.Context) ([]string, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
