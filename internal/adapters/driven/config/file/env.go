package file

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, when present, before reading the environment.
var DefaultEnvFiles = []string{".env", ".env.local"}

// EnvOverrides holds PROPDESK_* settings read from the environment.
// Unset variables stay nil and do not override the config file.
type EnvOverrides struct {
	StorageBackend  *string  `env:"PROPDESK_STORAGE_BACKEND"`
	DataDir         *string  `env:"PROPDESK_DATA_DIR"`
	PostgresDSN     *string  `env:"PROPDESK_POSTGRES_DSN"`
	ChunkSize       *int     `env:"PROPDESK_CHUNK_SIZE"`
	ChunkPauseMS    *int     `env:"PROPDESK_CHUNK_PAUSE_MS"`
	WritesPerSecond *float64 `env:"PROPDESK_WRITES_PER_SECOND"`
	ExportDir       *string  `env:"PROPDESK_EXPORT_DIR"`
}

// LoadEnvOverrides loads any existing env files, then parses the environment.
// Variables already set in the process take precedence over file values.
func LoadEnvOverrides(files ...string) (*EnvOverrides, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &o, nil
}

// Values returns the set overrides keyed by config key.
func (o *EnvOverrides) Values() map[string]any {
	values := make(map[string]any)
	if o == nil {
		return values
	}
	if o.StorageBackend != nil {
		values["storage.backend"] = *o.StorageBackend
	}
	if o.DataDir != nil {
		values["storage.data_dir"] = *o.DataDir
	}
	if o.PostgresDSN != nil {
		values["storage.postgres_dsn"] = *o.PostgresDSN
	}
	if o.ChunkSize != nil {
		values["import.chunk_size"] = int64(*o.ChunkSize)
	}
	if o.ChunkPauseMS != nil {
		values["import.chunk_pause_ms"] = int64(*o.ChunkPauseMS)
	}
	if o.WritesPerSecond != nil {
		values["import.writes_per_second"] = *o.WritesPerSecond
	}
	if o.ExportDir != nil {
		values["export.dir"] = *o.ExportDir
	}
	return values
}
