package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorageBackend  = "storage.backend"
	KeyStorageDataDir  = "storage.data_dir"
	KeyPostgresDSN     = "storage.postgres_dsn"
	KeyChunkSize       = "import.chunk_size"
	KeyChunkPauseMS    = "import.chunk_pause_ms"
	KeyWritesPerSecond = "import.writes_per_second"
	KeyExportDir       = "export.dir"
)

// SettingKeys lists every key accepted by Set, in display order.
var SettingKeys = []string{
	KeyStorageBackend,
	KeyStorageDataDir,
	KeyPostgresDSN,
	KeyChunkSize,
	KeyChunkPauseMS,
	KeyWritesPerSecond,
	KeyExportDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	if v := s.configStore.GetString(KeyStorageBackend); v != "" {
		settings.Storage.Backend = domain.StorageBackend(v)
	}
	settings.Storage.DataDir = s.configStore.GetString(KeyStorageDataDir)
	settings.Storage.PostgresDSN = s.configStore.GetString(KeyPostgresDSN)

	if _, ok := s.configStore.Get(KeyChunkSize); ok {
		settings.Import.ChunkSize = s.configStore.GetInt(KeyChunkSize)
	}
	if _, ok := s.configStore.Get(KeyChunkPauseMS); ok {
		settings.Import.ChunkPause = time.Duration(s.configStore.GetInt(KeyChunkPauseMS)) * time.Millisecond
	}
	settings.Import.WritesPerSecond = s.configStore.GetFloat(KeyWritesPerSecond)
	settings.Export.Dir = s.configStore.GetString(KeyExportDir)

	return &settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyStorageBackend, settings.Storage.Backend.String()},
		{KeyStorageDataDir, settings.Storage.DataDir},
		{KeyPostgresDSN, settings.Storage.PostgresDSN},
		{KeyChunkSize, settings.Import.ChunkSize},
		{KeyChunkPauseMS, settings.Import.ChunkPause.Milliseconds()},
		{KeyWritesPerSecond, settings.Import.WritesPerSecond},
		{KeyExportDir, settings.Export.Dir},
	}
	for _, kv := range values {
		if err := s.configStore.Set(kv.key, kv.value); err != nil {
			return fmt.Errorf("save %s: %w", kv.key, err)
		}
	}
	return nil
}

// Set updates a single setting by key after validating the result.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyStorageBackend:
		settings.Storage.Backend = domain.StorageBackend(strings.ToLower(value))
	case KeyStorageDataDir:
		settings.Storage.DataDir = value
	case KeyPostgresDSN:
		settings.Storage.PostgresDSN = value
	case KeyChunkSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Import.ChunkSize = n
	case KeyChunkPauseMS:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Import.ChunkPause = time.Duration(n) * time.Millisecond
	case KeyWritesPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Import.WritesPerSecond = f
	case KeyExportDir:
		settings.Export.Dir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Validate checks settings against their constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	err := s.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate settings: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describeFieldError(fe)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.StructNamespace()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
