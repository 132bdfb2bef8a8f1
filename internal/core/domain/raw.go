package domain

// Cell is one header-keyed value from a spreadsheet row.
type Cell struct {
	// Header is the trimmed header text of the cell's column.
	Header string

	// Value is the raw cell text. Missing cells are "" and date-formatted
	// cells arrive as DateLayout dates.
	Value string
}

// RawRow is an ordered header-to-value mapping for one data row.
// It is produced by a SpreadsheetReader and discarded after normalisation.
type RawRow struct {
	// Row is the 1-based sheet row the cells came from. Zero means unknown.
	Row int

	Cells []Cell
}

// Headers returns the headers in column order.
func (r RawRow) Headers() []string {
	headers := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		headers[i] = c.Header
	}
	return headers
}

// Lookup finds the value for a display header. An exact header match is
// tried first, then the first header that matches after lower-casing and
// trimming both sides.
func (r RawRow) Lookup(header string) (string, bool) {
	// Later duplicates win on exact match.
	found := false
	var value string
	for _, c := range r.Cells {
		if c.Header == header {
			value, found = c.Value, true
		}
	}
	if found {
		return value, true
	}

	want := NormaliseHeader(header)
	for _, c := range r.Cells {
		if NormaliseHeader(c.Header) == want {
			return c.Value, true
		}
	}
	return "", false
}
