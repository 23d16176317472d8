package commands

import (
	"errors"
	"io/fs"
	"os"

	"repairdesk/internal/api"
	"repairdesk/internal/config"
	"repairdesk/internal/db"
	"repairdesk/internal/logging"
	redisdb "repairdesk/internal/redis"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.json"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "repairdesk",
		Short:         "Repair shop back office: accounts, roles and inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to JSON config (REPAIRDESK_* env vars override it)")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newCreateAdminCommand(&configPath),
	)
	return rootCmd
}

// loadConfig tolerates a missing default config file so the server can run
// from environment variables alone. An explicit --config must exist.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	if !cmd.Flags().Changed("config") && path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.LoadConfig(path)
}

// bootstrap opens every backing service and wires the HTTP dependencies.
func bootstrap(cmd *cobra.Command, path string) (*config.Config, *logrus.Logger, api.Deps, error) {
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return nil, nil, api.Deps{}, err
	}
	log := logging.New(cfg)

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, nil, api.Deps{}, err
	}
	rdb := redisdb.NewClient(cfg)
	if rdb == nil {
		log.Info("redis not configured; online presence disabled")
	}

	deps, err := api.NewDeps(cfg, log, conn, rdb)
	if err != nil {
		return nil, nil, api.Deps{}, err
	}
	return cfg, log, deps, nil
}
