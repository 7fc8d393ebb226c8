package cmd

import (
	"fmt"

	"github.com/nightowlcasino/logline/config"
	"github.com/nightowlcasino/logline/controller"
	http_ll "github.com/nightowlcasino/logline/http"
	"github.com/nightowlcasino/logline/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// serveCommand runs the formatting service, turning events posted over HTTP
// into log lines.
func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a server that formats posted JSON events into log lines.",
		RunE: func(_ *cobra.Command, _ []string) error {
			config.SetLoggingDefaults()
			logger.Initialize("logline-svc")
			log := zap.L()
			defer logger.Flush()

			config.SetLoggingLevel()
			if err := config.SetServerDefaults(); err != nil {
				return err
			}

			mf, err := newMessageFormatter()
			if err != nil {
				return fmt.Errorf("invalid formatter configuration - %w", err)
			}

			router := controller.NewRouter(mf, viper.GetFloat64("server.rate_limit"))
			server := controller.NewServer(router)
			if err := server.Start(); err != nil {
				return fmt.Errorf("failed to start server - %w", err)
			}
			router.Ready()

			log.Info("service started...",
				zap.String("addr", server.Addr()),
				zap.Int("fields", len(mf.Fields)),
			)

			http_ll.WaitForSignal(server)
			return nil
		},
	}

	cmd.Flags().Int("port", 8095, "port of the formatting service")
	cmd.Flags().Float64("rate-limit", 100, "format requests per second allowed per client")
	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.rate_limit", cmd.Flags().Lookup("rate-limit"))

	return cmd
}
