// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The import pipeline is built from small pure steps: Normalise maps raw
// spreadsheet rows onto field keys, Validate reports per-row findings,
// Eligible filters rows by property type, and BatchWriter persists the
// result in paced chunks.
package services
