package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akarlsen/userfill/internal/cli/appctx"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show user and actor counts for the target database",
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runStatus),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(app *appctx.App, cmd *cobra.Command, args []string) error {
	total, stubs, err := app.Store.Users.Count()
	if err != nil {
		return err
	}
	unlinked, err := app.Store.Actors.CountUnlinked()
	if err != nil {
		return err
	}

	var runs int64
	if err := app.DB.QueryRow("SELECT COUNT(DISTINCT run_id) FROM run_log").Scan(&runs); err != nil {
		return fmt.Errorf("failed to count runs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Users:           %d (%d stubs)\n", total, stubs)
	fmt.Fprintf(out, "Unlinked actors: %d\n", unlinked)
	fmt.Fprintf(out, "Recorded runs:   %d\n", runs)
	return nil
}
