// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - PropertyStore: Property record persistence (memory, SQLite, Postgres)
//   - SpreadsheetReader: Parses an uploaded workbook into raw rows
//   - SpreadsheetWriter: Renders records into a workbook
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
