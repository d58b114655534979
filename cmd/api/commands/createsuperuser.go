package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/modules/user"
)

var (
	suUsername string
	suPassword string
	suName     string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create a superuser account",
	Long: `Create a superuser account. Superusers pass every access check and
are the only accounts allowed to create shops.

Examples:
  shopstock createsuperuser --username admin --password 's3cret'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, db, err := setup(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := user.NewService(user.NewPostgresRepository(db), database.NewTransactor(db))
		u, err := svc.CreateSuperuser(ctx, suUsername, suPassword, suName)
		if err != nil {
			return fmt.Errorf("create superuser: %w", err)
		}
		logger.L().Info("superuser created", zap.String("user_id", u.ID.String()), zap.String("username", u.Username))
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&suUsername, "username", "", "Login name")
	createSuperuserCmd.Flags().StringVar(&suPassword, "password", "", "Password")
	createSuperuserCmd.Flags().StringVar(&suName, "name", "", "Display name")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createSuperuserCmd)
}
