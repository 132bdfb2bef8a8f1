package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// ExportService renders stored records as spreadsheets.
type ExportService interface {
	// Export writes the records that pass filter.
	// Returns domain.ErrNothingToExport when nothing matches.
	Export(ctx context.Context, filter domain.ExportFilter, now time.Time) (*domain.ExportFile, error)

	// Template returns the import template workbook with sample rows.
	Template(now time.Time) (*domain.ExportFile, error)
}
