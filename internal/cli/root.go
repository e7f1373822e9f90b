package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "userfill",
	Short: "Backfill the canonical user table from legacy wiki tables",
	Long: `userfill rebuilds the canonical user registry from legacy tables that
embed a denormalized user id and display name (revision authorship,
log actors, image uploaders, blocks, archived revisions), and links
actor rows to canonical users once a matching stub account exists.

Runs are batched, resumable and idempotent: interrupt one and rerun
it, and already-inserted or already-linked rows are skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags for userfill
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides USERFILL_DB_PATH)")
}
