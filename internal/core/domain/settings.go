package domain

import "time"

const unknownDescription = "Unknown"

// Batch writer defaults.
const (
	// DefaultChunkSize is the number of records written per chunk.
	DefaultChunkSize = 5

	// DefaultChunkPause is the quiescence interval between chunks.
	DefaultChunkPause = 500 * time.Millisecond
)

// StorageBackend identifies the property store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite is a local SQLite database (default).
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps records for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"

	// StoragePostgres is a PostgreSQL database.
	StoragePostgres StorageBackend = "postgres"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory, StoragePostgres:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (local file)"
	case StorageMemory:
		return "In-memory (not persisted)"
	case StoragePostgres:
		return "PostgreSQL"
	default:
		return unknownDescription
	}
}

// StorageSettings configures the property store.
type StorageSettings struct {
	Backend StorageBackend `validate:"required,oneof=sqlite memory postgres"`

	// DataDir holds the SQLite database. Empty means ~/.propdesk/data.
	DataDir string

	// PostgresDSN is required for the postgres backend.
	PostgresDSN string `validate:"required_if=Backend postgres"`
}

// ImportSettings configures the batch writer.
type ImportSettings struct {
	ChunkSize int `validate:"min=1,max=500"`

	ChunkPause time.Duration `validate:"min=0"`

	// WritesPerSecond caps store writes. Zero disables the limiter.
	WritesPerSecond float64 `validate:"min=0"`
}

// ExportSettings configures where exports are written.
type ExportSettings struct {
	// Dir is the default output directory. Empty means the working directory.
	Dir string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Storage StorageSettings
	Import  ImportSettings
	Export  ExportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Import: ImportSettings{
			ChunkSize:  DefaultChunkSize,
			ChunkPause: DefaultChunkPause,
		},
	}
}
