package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/datapath/internal/logging"
	"github.com/abhisek/datapath/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tutor sessions over a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		// The API logs to stderr unless a log file is set explicitly.
		logFile, _ := cmd.Flags().GetString("log-file")
		logger, closer, err := logging.New(logFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer closer.Close()

		if cfg.EphemeralSecret {
			logger.Warn("DATAPATH_JWT_SECRET is not set; using a random secret, sessions end when the server restarts")
		}

		srv := server.New(server.Config{
			Addr:        cfg.Addr,
			JWTSecret:   cfg.JWTSecret,
			CORSOrigins: cfg.CORSOrigins,
		}, newExecutor(cmd, st, logger), server.WithLogger(logger))

		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides DATAPATH_ADDR)")
	serveCmd.Flags().String("log-file", "", "Write logs to this file instead of stderr")
}
