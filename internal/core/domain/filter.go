package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for the Date field.
const DateLayout = "2006-01-02"

// SearchFilters narrows a property listing. Empty fields match everything.
type SearchFilters struct {
	// Term is a case-insensitive substring matched against sector/phase,
	// CP name, contact number, CP firm name and project.
	Term string

	PropertyType  PropertyType
	SectorPhase   string
	CPName        string
	Project       string
	ContactNumber string

	// MinDemand and MaxDemand bound the parsed demand, e.g. "40 lakh".
	MinDemand string
	MaxDemand string
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return f == SearchFilters{}
}

// MatchesFields applies every filter except the demand range.
func (f SearchFilters) MatchesFields(p *Property) bool {
	if f.PropertyType != "" && p.Type() != f.PropertyType {
		return false
	}
	if f.SectorPhase != "" && p.Base.SectorPhase != f.SectorPhase {
		return false
	}
	if f.CPName != "" && p.Base.CPName != f.CPName {
		return false
	}
	if f.Project != "" && p.Project() != f.Project {
		return false
	}
	if f.ContactNumber != "" && p.Base.ContactNumber != f.ContactNumber {
		return false
	}
	if f.Term != "" {
		term := strings.ToLower(f.Term)
		haystack := []string{
			strings.ToLower(p.Base.SectorPhase),
			strings.ToLower(p.Base.CPName),
			p.Base.ContactNumber,
			strings.ToLower(p.Base.CPFirmName),
			strings.ToLower(p.Project()),
		}
		hit := false
		for _, h := range haystack {
			if strings.Contains(h, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// DateRange selects records by their Date field relative to now.
type DateRange string

// Available date ranges.
const (
	DateRangeAll     DateRange = "all"
	DateRangeWeek    DateRange = "week"
	DateRangeMonth   DateRange = "month"
	DateRangeQuarter DateRange = "quarter"
)

// ParseDateRange validates a date range name. Empty means all.
func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(strings.ToLower(strings.TrimSpace(s))); r {
	case "", DateRangeAll:
		return DateRangeAll, nil
	case DateRangeWeek, DateRangeMonth, DateRangeQuarter:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown date range %q (want all, week, month or quarter)", ErrInvalidInput, s)
	}
}

// Cutoff returns the earliest accepted date for the range, or the zero
// time for DateRangeAll.
func (r DateRange) Cutoff(now time.Time) time.Time {
	switch r {
	case DateRangeWeek:
		return now.AddDate(0, 0, -7)
	case DateRangeMonth:
		return now.AddDate(0, -1, 0)
	case DateRangeQuarter:
		return now.AddDate(0, -3, 0)
	default:
		return time.Time{}
	}
}

// Contains reports whether a record date falls in the range. Dates that
// cannot be parsed only match DateRangeAll.
func (r DateRange) Contains(date string, now time.Time) bool {
	if r == DateRangeAll || r == "" {
		return true
	}
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return false
	}
	return !d.Before(r.Cutoff(now))
}

// ExportFilter selects the records written by an export.
type ExportFilter struct {
	PropertyType PropertyType
	SectorPhase  string
	Range        DateRange
}

// Matches reports whether p passes the filter.
func (f ExportFilter) Matches(p *Property, now time.Time) bool {
	if f.PropertyType != "" && p.Type() != f.PropertyType {
		return false
	}
	if f.SectorPhase != "" && p.Base.SectorPhase != f.SectorPhase {
		return false
	}
	return f.Range.Contains(p.Base.Date, now)
}

// ExportFile is a rendered spreadsheet ready to be saved.
type ExportFile struct {
	Name  string
	Data  []byte
	Count int
}

// ExportFileName returns the export file name for a date.
func ExportFileName(now time.Time) string {
	return "properties_export_" + now.Format(DateLayout) + ".xlsx"
}

// TemplateFileName is the file name of the import template.
const TemplateFileName = "properties_template.xlsx"

// Stats summarises the stored properties.
type Stats struct {
	Total  int
	ByType map[PropertyType]int

	// Recent counts records dated within the last seven days.
	Recent int
}
