package services

import (
	"fmt"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// Validate reports the findings for one candidate. It is pure and
// idempotent, and checks no cross-record rules.
func Validate(c domain.Candidate) domain.ValidationReport {
	var report domain.ValidationReport

	violation := func(field domain.FieldKey, msg string) {
		report.Violations = append(report.Violations, domain.Violation{
			Row: c.Row, Field: field, Message: msg, Severity: domain.SeverityError,
		})
	}
	warning := func(field domain.FieldKey, msg string) {
		report.Warnings = append(report.Warnings, domain.Violation{
			Row: c.Row, Field: field, Message: msg, Severity: domain.SeverityWarning,
		})
	}

	raw := c.Fields.Get(domain.FieldPropertyType)
	switch pt := domain.PropertyType(raw); {
	case raw == "":
		violation(domain.FieldPropertyType, "Property Type is required")
	case !pt.IsValid():
		violation(domain.FieldPropertyType, fmt.Sprintf(
			"Invalid Property Type '%s'. Must be: Kothi, Flat, Commercial, or Plot", raw))
	default:
		validateVariant(pt, c.Fields, violation)
	}

	if !c.Fields.Has(domain.FieldSectorPhase) {
		warning(domain.FieldSectorPhase, "Missing Sector/Phase")
	}
	if !c.Fields.Has(domain.FieldCPName) {
		warning(domain.FieldCPName, "Missing CP Name")
	}
	if !c.Fields.Has(domain.FieldContactNumber) {
		warning(domain.FieldContactNumber, "Missing Contact Number")
	}

	return report
}

func validateVariant(pt domain.PropertyType, f domain.Fields, violation func(domain.FieldKey, string)) {
	switch pt {
	case domain.PropertyTypeFlat:
		if !f.Has(domain.FieldProject) {
			violation(domain.FieldProject, "Project is required for Flat properties")
		}
	case domain.PropertyTypeKothi, domain.PropertyTypePlot, domain.PropertyTypeCommercial:
	}
}

// ValidateAll validates every candidate and returns the combined findings
// in row order.
func ValidateAll(cands []domain.Candidate) domain.ValidationReport {
	var all domain.ValidationReport
	for _, c := range cands {
		r := Validate(c)
		all.Violations = append(all.Violations, r.Violations...)
		all.Warnings = append(all.Warnings, r.Warnings...)
	}
	return all
}

// Eligible partitions candidates by whether they carry a canonical
// property type. Order is preserved in both results.
func Eligible(cands []domain.Candidate) (eligible, rejected []domain.Candidate) {
	for _, c := range cands {
		if c.IsEligible() {
			eligible = append(eligible, c)
		} else {
			rejected = append(rejected, c)
		}
	}
	return eligible, rejected
}
