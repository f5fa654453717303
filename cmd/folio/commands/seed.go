package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert default admin categories and sections into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, backend, err := setup(ctx)
		if err != nil {
			return err
		}
		defer backend.Close()

		if err := services.NewAdminService(backend).Seed(ctx); err != nil {
			return err
		}
		zap.S().Info("seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
