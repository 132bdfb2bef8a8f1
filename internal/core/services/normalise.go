package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// Normalise maps raw rows onto candidates, one per row in order.
// today fills in missing dates.
func Normalise(rows []domain.RawRow, today time.Time) []domain.Candidate {
	candidates := make([]domain.Candidate, len(rows))
	for i, row := range rows {
		candidates[i] = NormaliseRow(row, i, today)
	}
	return candidates
}

// NormaliseRow maps a single raw row onto a candidate. The candidate keeps
// the row's sheet position; index is used only when the row has none.
func NormaliseRow(row domain.RawRow, index int, today time.Time) domain.Candidate {
	fields := domain.Fields{}
	for _, col := range domain.Columns {
		value, ok := row.Lookup(col.Header)
		if !ok {
			continue
		}
		fields.Set(col.Key, strings.TrimSpace(value))
	}

	if !fields.Has(domain.FieldDate) {
		fields.Set(domain.FieldDate, today.Format(domain.DateLayout))
	}

	if raw := fields.Get(domain.FieldPropertyType); raw != "" {
		if pt, ok := domain.ParsePropertyType(raw); ok {
			fields.Set(domain.FieldPropertyType, pt.String())
		}
	}

	pos := row.Row
	if pos <= 0 {
		pos = index + domain.HeaderRowOffset
	}
	return domain.Candidate{Row: pos, Fields: fields}
}
