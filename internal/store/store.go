// Package store provides persistence for inspection documents.
//
// Two pieces live here:
//
//   - PostgresStore: the remote document store, source of truth once synced.
//     Whole-document writes with last-write-wins semantics; no field-level
//     merge, no version check.
//   - SnapshotCache: a local single-key cache mirroring the full document
//     list for instant startup loads. Read once at startup, rewritten
//     wholesale on every mutation. It is a cache, never a source of truth.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/DukeRupert/vigil/internal/domain"
)

// =============================================================================
// Sentinel Errors
// =============================================================================

var (
	// ErrNotFound is returned when a requested document doesn't exist.
	ErrNotFound = errors.New("document not found")
)

// IsNotFound returns true if the error indicates a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError wraps store operation errors with additional context.
type StoreError struct {
	Op  string // Operation that failed (e.g., "Save", "Load")
	ID  string // Document id involved, if any
	Err error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store %s %q: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Interface Definition
// =============================================================================

// DocumentStore defines the remote document store operations.
//
// Implementations:
// - PostgresStore: JSONB documents in PostgreSQL
//
// All methods are context-aware for timeout and cancellation support.
type DocumentStore interface {
	// Save upserts the full document keyed by its id, overwriting any
	// existing record entirely. Connectivity and permission failures
	// propagate to the caller; they are never swallowed.
	Save(ctx context.Context, doc domain.Inspection) error

	// Load fetches a single full document by id.
	// Returns ErrNotFound (wrapped) when absent.
	Load(ctx context.Context, id string) (domain.Inspection, error)

	// List fetches document summaries ordered by timestamp descending.
	// Records that fail minimal shape validation are skipped and logged,
	// never surfaced as an error.
	List(ctx context.Context) ([]domain.Summary, error)

	// Delete removes the document by id. Deleting a non-existent id is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error
}
