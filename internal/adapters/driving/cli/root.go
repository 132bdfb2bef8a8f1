// Package cli provides the propdesk command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propdesk/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
	"github.com/custodia-labs/propdesk/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services bundles the driving ports used by the commands.
type Services struct {
	Property driving.PropertyService
	Import   driving.ImportService
	Export   driving.ExportService
	Settings driving.SettingsService
}

// Bootstrap builds services for a config directory. The returned cleanup
// releases any resources the services hold.
type Bootstrap func(configDir string) (*Services, func(), error)

var (
	propertyService driving.PropertyService
	importService   driving.ImportService
	exportService   driving.ExportService
	settingsService driving.SettingsService
)

var (
	bootstrap Bootstrap
	cleanup   func()

	verbose   bool
	configDir string

	ui = styles.DefaultStyles()
)

// noBootstrap marks commands that run without services.
const noBootstrap = "no-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "propdesk",
	Short: "Import, manage and export property listings",
	Long: `propdesk keeps a register of property listings (Kothi, Flat, Commercial
and Plot) and moves them in and out of Excel workbooks.

Import a workbook with 'propdesk import', browse records with
'propdesk property list', and export with 'propdesk export'.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.propdesk)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the driving ports directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	propertyService = s.Property
	importService = s.Import
	exportService = s.Export
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds services once flags are parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[noBootstrap] == "true" {
		return nil
	}

	services, done, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}
