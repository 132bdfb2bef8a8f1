package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propdesk/internal/adapters/driving/watch"
)

var watchForce bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import workbooks as they appear in a directory",
	Long: `Watches a directory and imports every .xlsx workbook that is created or
saved there, one file at a time. Office lock files (~$name.xlsx) are ignored.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchForce, "force", false, "write eligible rows even when blocking errors exist")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(importService,
		watch.WithForce(watchForce),
		watch.WithHandler(func(ev watch.Event) {
			name := filepath.Base(ev.Path)
			if ev.Err != nil {
				cmd.PrintErrln(ui.Error.Render(fmt.Sprintf("%s: %s", name, importHeadline(ev.Err))))
				cmd.PrintErrln("  " + ev.Err.Error())
				return
			}
			cmd.Println(ui.Success.Render(fmt.Sprintf("%s: imported %d properties", name, ev.Result.Written)))
		}),
	)

	cmd.Printf("Watching %s for workbooks (Ctrl+C to stop)\n", args[0])
	return w.Run(ctx, args[0])
}
