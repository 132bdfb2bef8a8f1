// Command propdesk imports, manages and exports property listings.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/propdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/propdesk/internal/adapters/driven/spreadsheet/xlsx"
	"github.com/custodia-labs/propdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/propdesk/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/propdesk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/propdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
	"github.com/custodia-labs/propdesk/internal/core/services"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// Set by the release build.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires adapters into services for a config directory.
func bootstrap(configDir string) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("config store: %w", err)
	}

	overrides, err := file.LoadEnvOverrides(file.DefaultEnvFiles...)
	if err != nil {
		return nil, nil, err
	}
	configStore.Override(overrides.Values())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	store, closeStore, err := openPropertyStore(settings.Storage)
	if err != nil {
		// Settings stay usable so a broken backend can be reconfigured.
		logger.Error("%v", err)
		return &cli.Services{Settings: settingsService}, func() {}, nil
	}
	logger.Debug("Storage backend: %s", settings.Storage.Backend)

	batch := services.NewBatchWriter(store,
		services.WithChunkSize(settings.Import.ChunkSize),
		services.WithChunkPause(settings.Import.ChunkPause),
		services.WithWriteRate(settings.Import.WritesPerSecond),
	)

	return &cli.Services{
		Property: services.NewPropertyService(store),
		Import:   services.NewImportService(xlsx.NewReader(), batch),
		Export:   services.NewExportService(store, xlsx.NewWriter()),
		Settings: settingsService,
	}, closeStore, nil
}

func openPropertyStore(cfg domain.StorageSettings) (driven.PropertyStore, func(), error) {
	switch cfg.Backend {
	case domain.StorageMemory:
		return memory.NewPropertyStore(), func() {}, nil

	case domain.StoragePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres store: %w", err)
		}
		return store, closer(store.Close), nil

	default:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite store: %w", err)
		}
		logger.Debug("Database: %s", store.Path())
		return store.PropertyStore(), closer(store.Close), nil
	}
}

func closer(closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
	}
}
