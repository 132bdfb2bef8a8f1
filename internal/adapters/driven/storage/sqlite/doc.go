// Package sqlite provides the SQLite implementation of driven.PropertyStore,
// the default storage backend.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Record fields are stored as a JSON object keyed by field key, with the
// property type and sector/phase copied into indexed columns.
//
// # Data Location
//
// By default, the database is stored at ~/.propdesk/data/properties.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
