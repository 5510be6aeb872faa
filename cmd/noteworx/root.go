package main

import (
	"github.com/noteworx/noteworx/internal/config"
	"github.com/noteworx/noteworx/pkg/logger"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:   "noteworx",
		Short: "Manage text notes stored in MongoDB",
		Long: `noteworx creates, finds, lists, tags, updates and removes text notes.
Notes live in MongoDB by default; Redis and an in-memory store are available for
small setups and experiments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level)
			logger.SetFormat(cfg.Log.Format)
			logger.Debugf("startup: store=%s log_level=%s", cfg.Store.Driver, logger.LevelString())
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("store", "", "Note store: mongo, redis or memory (env STORE_DRIVER)")
	pf.String("mongo-uri", "", "MongoDB connection string (env MONGODB_URI)")
	pf.String("database", "", "MongoDB database name (env MONGODB_DATABASE)")
	pf.String("collection", "", "MongoDB collection name (env MONGODB_COLLECTION)")
	pf.String("redis-host", "", "Redis host (env REDIS_HOST)")
	pf.String("redis-port", "", "Redis port (env REDIS_PORT)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	pf.String("log-format", "", "Log format: text or json (env LOG_FORMAT)")
	pf.StringVarP(&output, "output", "o", "json", "Output format for notes: json or yaml")

	out := func() string { return output }
	root.AddCommand(
		newAddCmd(a),
		newFindCmd(a, out),
		newListCmd(a, out),
		newRemoveCmd(a),
		newTagCmd(a),
		newUpdateCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}
