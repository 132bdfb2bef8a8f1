package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// PropertyService manages individual property records.
type PropertyService interface {
	// Create validates and stores a new record, returning it with its ID.
	// Blocking validation findings yield domain.ErrInvalidInput.
	Create(ctx context.Context, property domain.Property) (*domain.Property, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Property, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]domain.Property, error)

	// Search returns the records matching every set filter.
	Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Property, error)

	// Update applies a partial update after validating the result.
	Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// Stats summarises the stored records relative to now.
	Stats(ctx context.Context, now time.Time) (*domain.Stats, error)
}
