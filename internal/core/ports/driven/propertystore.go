package driven

import (
	"context"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// PropertyStore persists property records.
// Implementations assign IDs and timestamps and are safe for concurrent use.
type PropertyStore interface {
	// Add persists a new record and returns its assigned ID.
	// Any ID or timestamps on the input are ignored.
	Add(ctx context.Context, property domain.Property) (string, error)

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if the record does not exist.
	Get(ctx context.Context, id string) (*domain.Property, error)

	// List returns all records, newest first by creation time.
	List(ctx context.Context) ([]domain.Property, error)

	// Update applies a partial update and refreshes UpdatedAt.
	// Returns domain.ErrNotFound if the record does not exist.
	Update(ctx context.Context, id string, patch domain.PropertyPatch) error

	// Delete removes a record.
	// Returns domain.ErrNotFound if the record does not exist.
	Delete(ctx context.Context, id string) error
}
