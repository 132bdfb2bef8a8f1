package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

var (
	importDryRun bool
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Import properties from an Excel workbook",
	Long: `Reads the first sheet of an .xlsx workbook, maps its columns by header,
validates every row and writes the rows with a valid Property Type.

Rows are written in small chunks with a pause between chunks. The run stops
at the first rejected write; rows written before it are kept.

Use --dry-run to preview without writing. Rows with blocking errors (for
example a Flat without a Project) stop the import unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate and preview without writing")
	importCmd.Flags().BoolVar(&importForce, "force", false, "write eligible rows even when blocking errors exist")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	ctx := context.Background()

	preview, err := importService.Preview(ctx, data)
	if err != nil {
		printImportFailure(cmd, err)
		return err
	}
	printPreview(cmd, preview)

	if importDryRun {
		cmd.Println(ui.Muted.Render("Dry run: nothing was written."))
		return nil
	}

	bar := newProgressPrinter(cmd.OutOrStdout())
	result, err := importService.Import(ctx, data, domain.ImportOptions{Force: importForce}, bar.update)
	bar.finish()
	if err != nil {
		printImportFailure(cmd, err)
		if result != nil && result.Written > 0 {
			cmd.Printf("%d properties were written before the failure.\n", result.Written)
		}
		return err
	}

	cmd.Println(ui.Success.Render(fmt.Sprintf("Imported %d properties in %d chunks.", result.Written, result.Chunks)))
	if result.Skipped > 0 {
		cmd.Printf("Skipped %d rows without a valid Property Type.\n", result.Skipped)
	}
	return nil
}

func printPreview(cmd *cobra.Command, p *domain.ImportPreview) {
	cmd.Println(ui.Title.Render("Import Preview"))
	cmd.Printf("  Rows read: %d\n", p.TotalRows)
	cmd.Printf("  Valid properties: %d\n", len(p.Eligible))
	if skipped := p.TotalRows - len(p.Eligible); skipped > 0 {
		cmd.Printf("  Rows to skip: %d\n", skipped)
	}

	if len(p.Violations) > 0 {
		cmd.Println()
		cmd.Println(ui.Error.Render(fmt.Sprintf("Errors (%d):", len(p.Violations))))
		for _, v := range p.Violations {
			cmd.Printf("  %s\n", v)
		}
	}
	if len(p.Warnings) > 0 {
		cmd.Println()
		cmd.Println(ui.Warning.Render(fmt.Sprintf("Warnings (%d):", len(p.Warnings))))
		for _, w := range p.Warnings {
			cmd.Printf("  %s\n", w)
		}
	}

	sample := p.Sample()
	if len(sample) == 0 {
		return
	}
	rows := make([][]string, len(sample))
	for i, c := range sample {
		rows[i] = []string{
			fmt.Sprint(c.Row),
			c.Fields.Get(domain.FieldPropertyType),
			c.Fields.Get(domain.FieldSectorPhase),
			c.Fields.Get(domain.FieldDemand),
			c.Fields.Get(domain.FieldCPName),
			c.Fields.Get(domain.FieldContactNumber),
		}
	}
	cmd.Println()
	cmd.Println(ui.Table([]string{"Row", "Type", "Sector/Phase", "Demand", "CP Name", "Contact"}, rows))
	if more := len(p.Eligible) - len(sample); more > 0 {
		cmd.Printf("... and %d more\n", more)
	}
}

// importHeadline names the failure class of an import error.
func importHeadline(err error) string {
	switch {
	case errors.Is(err, domain.ErrParse):
		return "File could not be read"
	case errors.Is(err, domain.ErrEmptyResult):
		return "File had no valid rows"
	case errors.Is(err, domain.ErrStoreWrite):
		return "Import stopped: the store rejected a row"
	case errors.Is(err, domain.ErrValidationFailed):
		return "Import blocked by validation errors (use --force to write valid rows anyway)"
	case errors.Is(err, domain.ErrImportInProgress):
		return "Another import is already running"
	default:
		return "Import failed"
	}
}

func printImportFailure(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, ui.Error.Render(importHeadline(err)))

	var empty *domain.EmptyResultError
	if errors.As(err, &empty) && len(empty.Columns) > 0 {
		names := make([]string, 0, len(empty.Columns))
		for _, key := range empty.Columns {
			if col, ok := domain.ColumnByKey(key); ok {
				names = append(names, col.Header)
			}
		}
		fmt.Fprintf(w, "Columns found: %s\n", strings.Join(names, ", "))
	}
}

// progressPrinter renders import progress as a bar on terminals and as
// plain lines elsewhere.
type progressPrinter struct {
	w   io.Writer
	bar progress.Model
	tty bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &progressPrinter{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		tty: tty,
	}
}

func (p *progressPrinter) update(percent float64) {
	if p.tty {
		fmt.Fprintf(p.w, "\r%s", p.bar.ViewAs(percent/100))
		return
	}
	fmt.Fprintf(p.w, "Progress: %.0f%%\n", percent)
}

func (p *progressPrinter) finish() {
	if p.tty {
		fmt.Fprintln(p.w)
	}
}
