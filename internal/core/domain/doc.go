// Package domain defines the core business entities for propdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Property: A persisted listing, one of four variants (Kothi, Flat, Commercial, Plot)
//   - Details: The sealed sum type carrying variant-only fields
//   - Column: One entry of the fixed spreadsheet column mapping
//   - RawRow: Header-keyed cells read from a spreadsheet
//   - Candidate: A normalised, not yet validated or persisted record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
