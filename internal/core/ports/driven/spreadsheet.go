package driven

import (
	"context"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// SpreadsheetReader parses workbook bytes into raw rows.
type SpreadsheetReader interface {
	// Read returns one RawRow per data row of the first sheet, keyed by the
	// trimmed header row. Unreadable input, or a sheet with no data rows,
	// yields a *domain.ParseError.
	Read(ctx context.Context, data []byte) ([]domain.RawRow, error)
}

// SpreadsheetWriter renders records into a workbook.
type SpreadsheetWriter interface {
	// Write produces a single-sheet workbook with a styled header row and
	// one row per record in domain.Columns order.
	Write(sheet string, records []domain.Property) ([]byte, error)
}
