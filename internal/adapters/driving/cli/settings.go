package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

// storageBackends lists the backends offered by the wizard, default first.
var storageBackends = []domain.StorageBackend{
	domain.StorageSQLite,
	domain.StorageMemory,
	domain.StoragePostgres,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, import and export settings.

Settings are stored in config.toml in the config directory and can be
overridden with PROPDESK_* environment variables or a .env file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Keys:
  storage.backend           sqlite, memory or postgres
  storage.data_dir          SQLite data directory
  storage.postgres_dsn      PostgreSQL connection string
  import.chunk_size         records written per chunk (1-500)
  import.chunk_pause_ms     pause between chunks in milliseconds
  import.writes_per_second  store write rate limit (0 = unlimited)
  export.dir                default directory for exports and templates`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the storage backend and import pacing.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(ui.Title.Render("Current Settings"))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	switch settings.Storage.Backend {
	case domain.StorageSQLite:
		cmd.Printf("  Data dir: %s\n", valueOr(settings.Storage.DataDir, "~/.propdesk/data"))
	case domain.StoragePostgres:
		cmd.Printf("  DSN: %s\n", valueOr(maskDSN(settings.Storage.PostgresDSN), "(not set)"))
	}
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Chunk size: %d\n", settings.Import.ChunkSize)
	cmd.Printf("  Chunk pause: %s\n", settings.Import.ChunkPause)
	if settings.Import.WritesPerSecond > 0 {
		cmd.Printf("  Writes per second: %g\n", settings.Import.WritesPerSecond)
	} else {
		cmd.Println("  Writes per second: unlimited")
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Directory: %s\n", valueOr(settings.Export.Dir, "(current directory)"))
	cmd.Println()

	if err := settingsService.Validate(settings); err != nil {
		cmd.Println(ui.Warning.Render(fmt.Sprintf("Warning: %v", err)))
		cmd.Println("Run 'propdesk settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(ui.Title.Render("propdesk Settings Wizard"))
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Storage backend")
	for i, b := range storageBackends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	settings.Storage.Backend = storageBackends[parseChoice(readLine(reader), len(storageBackends), 1)-1]

	switch settings.Storage.Backend {
	case domain.StorageSQLite:
		cmd.Printf("Data directory [%s]: ", valueOr(settings.Storage.DataDir, "~/.propdesk/data"))
		if dir := readLine(reader); dir != "" {
			settings.Storage.DataDir = dir
		}
	case domain.StoragePostgres:
		cmd.Print("PostgreSQL DSN: ")
		if dsn := readSecret(cmd.InOrStdin(), reader); dsn != "" {
			settings.Storage.PostgresDSN = dsn
		}
		cmd.Println()
	}
	cmd.Println()

	cmd.Println("Step 2: Import pacing")
	cmd.Printf("Records per chunk [%d]: ", settings.Import.ChunkSize)
	if n, err := strconv.Atoi(readLine(reader)); err == nil {
		settings.Import.ChunkSize = n
	}
	cmd.Printf("Writes per second, 0 for unlimited [%g]: ", settings.Import.WritesPerSecond)
	if f, err := strconv.ParseFloat(readLine(reader), 64); err == nil {
		settings.Import.WritesPerSecond = f
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println(ui.Success.Render("Settings saved."))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads without echo when in is a terminal.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

// maskDSN hides the password in a connection URL.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
