package driving

import (
	"context"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// ProgressFunc receives import progress as a percentage in (0, 100].
type ProgressFunc func(percent float64)

// ImportService turns spreadsheets into stored records.
type ImportService interface {
	// Preview parses and validates a workbook without writing anything.
	// Returns a *domain.ParseError for unreadable input and a
	// *domain.EmptyResultError when no row has a valid property type.
	Preview(ctx context.Context, data []byte) (*domain.ImportPreview, error)

	// Import writes the eligible rows of a workbook in chunks.
	// Blocking violations abort with domain.ErrValidationFailed unless
	// opts.Force is set. A concurrent call returns domain.ErrImportInProgress.
	Import(ctx context.Context, data []byte, opts domain.ImportOptions, progress ProgressFunc) (*domain.ImportResult, error)
}
