// Package postgres provides a PostgreSQL implementation of driven.PropertyStore.
//
// Connections go through database/sql with the pgx driver. The schema is
// created on startup if missing. Record fields are stored as JSONB keyed
// by field key.
package postgres
