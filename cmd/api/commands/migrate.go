package commands

import (
	"github.com/spf13/cobra"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema",
	Long: `Apply the embedded schema. Every statement is idempotent, so running
migrate against an up-to-date database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, db, err := setup(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.ApplySchema(ctx, db); err != nil {
			return err
		}
		logger.L().Info("schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
