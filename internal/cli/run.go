package cli

import (
	"github.com/spf13/cobra"

	"github.com/akarlsen/userfill/internal/backfill"
	"github.com/akarlsen/userfill/internal/cli/appctx"
	"github.com/akarlsen/userfill/internal/tables"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the backfill pass (and, under the actor scheme, the linking pass)",
	Long: `Run scans each selected source table for user identifiers that lack a
canonical user record and inserts stub accounts for them, skipping
IP-shaped names. Under the actor identity scheme the run covers the
actor relation and finishes with the linking pass, which fills
actor_user for actors whose name matches a stub account.

Under the legacy scheme, --tables restricts the run to a
pipe-separated subset of:

  revision|logging|image|oldimage|filearchive|archive|ipblocks

Combining --tables with the actor scheme is a usage error.

The run is safe to repeat after an interruption: inserts are dropped
on identifier conflicts and links are only written where actor_user
is still empty.`,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runRun),
}

var (
	runTables    string
	runScheme    string
	runBatchSize int
	runThrottle  float64
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runTables, "tables", "", "Pipe-separated list of legacy tables to process (legacy scheme only)")
	runCmd.Flags().StringVar(&runScheme, "scheme", "", "Identity scheme: legacy or actor (overrides USERFILL_SCHEME)")
	runCmd.Flags().IntVar(&runBatchSize, "batch-size", 0, "Rows fetched per page (overrides USERFILL_BATCH_SIZE)")
	runCmd.Flags().Float64Var(&runThrottle, "throttle", 0, "Max page fetches per second, 0 = unlimited")
}

func runRun(app *appctx.App, cmd *cobra.Command, args []string) error {
	if runScheme != "" {
		app.Config.Scheme = runScheme
	}
	if runBatchSize > 0 {
		app.Config.BatchSize = runBatchSize
	}
	if runThrottle > 0 {
		app.Config.Throttle = runThrottle
	}

	runner, err := backfill.NewRunner(app.Config, app.Store, app.Logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	return runner.Run(cmd.Context(), tables.ParseList(runTables))
}
