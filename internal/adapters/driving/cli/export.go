package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

var (
	exportType   string
	exportSector string
	exportRange  string
	exportOut    string
	templateOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export properties to an Excel workbook",
	Long: `Writes the stored properties to properties_export_<date>.xlsx using the
same column layout the importer reads.

Filters:
  --type     Kothi, Flat, Commercial or Plot
  --sector   exact sector/phase
  --range    all, week, month or quarter, matched against each record's date`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an import template workbook",
	Long:  `Writes properties_template.xlsx with the import headers and two sample rows.`,
	Args:  cobra.NoArgs,
	RunE:  runTemplate,
}

func init() {
	exportCmd.Flags().StringVarP(&exportType, "type", "t", "", "only export this property type")
	exportCmd.Flags().StringVar(&exportSector, "sector", "", "only export this sector/phase")
	exportCmd.Flags().StringVar(&exportRange, "range", "all", "date range: all, week, month or quarter")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default export.dir setting or current directory)")
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "output directory (default export.dir setting or current directory)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templateCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	filter := domain.ExportFilter{SectorPhase: exportSector}
	if exportType != "" {
		pt, ok := domain.ParsePropertyType(exportType)
		if !ok {
			return fmt.Errorf("%w: unknown property type %q", domain.ErrInvalidInput, exportType)
		}
		filter.PropertyType = pt
	}
	r, err := domain.ParseDateRange(exportRange)
	if err != nil {
		return err
	}
	filter.Range = r

	file, err := exportService.Export(context.Background(), filter, time.Now())
	if errors.Is(err, domain.ErrNothingToExport) {
		cmd.Println("No properties match the export filter.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path, err := saveExport(outputDir(exportOut), file)
	if err != nil {
		return err
	}

	cmd.Println(ui.Success.Render(fmt.Sprintf("Exported %d properties to %s", file.Count, path)))
	return nil
}

func runTemplate(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	file, err := exportService.Template(time.Now())
	if err != nil {
		return fmt.Errorf("template failed: %w", err)
	}

	path, err := saveExport(outputDir(templateOut), file)
	if err != nil {
		return err
	}

	cmd.Println(ui.Success.Render("Template written to " + path))
	return nil
}

// outputDir resolves the directory for generated workbooks.
func outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Export.Dir != "" {
			return settings.Export.Dir
		}
	}
	return "."
}

func saveExport(dir string, file *domain.ExportFile) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
