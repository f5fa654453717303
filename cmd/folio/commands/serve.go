package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/api"
	"github.com/mquinn/folio/backend/internal/services"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, backend, err := setup(ctx)
		if err != nil {
			return err
		}
		defer backend.Close()

		svc := api.Services{
			Blogs:    services.NewBlogService(backend),
			Readings: services.NewReadingService(backend),
			Admin:    services.NewAdminService(backend),
			Profile:  services.NewProfileService(backend),
			Backend:  backend,
		}

		if seedOnStart {
			if err := svc.Admin.Seed(ctx); err != nil {
				return err
			}
		}

		hub := api.NewHub()
		router := api.NewRouter(svc, hub)

		zap.S().Infow("folio backend listening", "addr", cfg.HTTPAddr)
		return router.Run(cfg.HTTPAddr)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Seed default admin content before serving (no-op unless the store is empty)")
	rootCmd.AddCommand(serveCmd)
}
