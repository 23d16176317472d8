package commands

import (
	"fmt"

	"repairdesk/internal/api"

	"github.com/spf13/cobra"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, deps, err := bootstrap(cmd, *configPath)
			if err != nil {
				return err
			}
			r := api.SetupRouter(cfg, deps)
			log.WithField("addr", cfg.Addr()).WithField("subpath", cfg.Server.Subpath).Info("starting server")
			if err := r.Run(cfg.Addr()); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}
