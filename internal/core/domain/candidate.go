package domain

import "fmt"

// HeaderRowOffset converts a 0-based data row index into the 1-based
// spreadsheet row number, accounting for the header row.
const HeaderRowOffset = 2

// Candidate is a spreadsheet row after column mapping and normalisation,
// before validation. It has the shape of a Property without identity.
type Candidate struct {
	// Row is the spreadsheet row number the candidate came from.
	Row int

	// Fields holds the normalised, non-empty values.
	Fields Fields
}

// Type returns the candidate's property type as found in the file.
func (c Candidate) Type() PropertyType {
	return PropertyType(c.Fields.Get(FieldPropertyType))
}

// IsEligible reports whether the candidate carries a canonical type.
func (c Candidate) IsEligible() bool {
	return c.Type().IsValid()
}

// Property converts an eligible candidate into a Property.
func (c Candidate) Property() (Property, error) {
	return NewPropertyFromFields(c.Fields)
}

// Severity classifies a validation finding.
type Severity int

const (
	// SeverityError blocks import until fixed.
	SeverityError Severity = iota

	// SeverityWarning is informational only.
	SeverityWarning
)

// String returns the string representation.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return unknownDescription
	}
}

// Violation is one validation finding for one row.
type Violation struct {
	Row      int
	Field    FieldKey
	Message  string
	Severity Severity
}

// String renders the violation as "Row N: message".
func (v Violation) String() string {
	return fmt.Sprintf("Row %d: %s", v.Row, v.Message)
}

// ValidationReport is the outcome of validating one candidate.
type ValidationReport struct {
	Violations []Violation
	Warnings   []Violation
}

// OK reports whether the report has no blocking violations.
func (r ValidationReport) OK() bool {
	return len(r.Violations) == 0
}

// ImportPreview summarises a parsed file before anything is written.
type ImportPreview struct {
	// TotalRows is the number of data rows read.
	TotalRows int

	// Candidates holds every normalised row in file order.
	Candidates []Candidate

	// Eligible holds the candidates that will be written.
	Eligible []Candidate

	// Violations are blocking findings across all rows.
	Violations []Violation

	// Warnings are non-blocking findings across all rows.
	Warnings []Violation

	// Columns lists the field keys found in the first row, in column order.
	Columns []FieldKey
}

// PreviewSize is the number of eligible candidates shown in a preview.
const PreviewSize = 5

// Sample returns up to PreviewSize eligible candidates.
func (p *ImportPreview) Sample() []Candidate {
	if len(p.Eligible) <= PreviewSize {
		return p.Eligible
	}
	return p.Eligible[:PreviewSize]
}

// HasViolations reports whether any blocking finding exists.
func (p *ImportPreview) HasViolations() bool {
	return len(p.Violations) > 0
}

// ImportOptions controls an import run.
type ImportOptions struct {
	// Force writes eligible rows even when blocking violations exist.
	Force bool
}

// ImportResult summarises a completed import.
type ImportResult struct {
	// Written is the number of records accepted by the store.
	Written int

	// Skipped is the number of rows dropped by the eligibility filter.
	Skipped int

	// Chunks is the number of chunks processed.
	Chunks int
}
