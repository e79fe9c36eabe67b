// Package cli defines the lawwatch command tree.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/config"
	"github.com/lawwatch/lawwatch/internal/logging"
	"github.com/lawwatch/lawwatch/internal/metrics"
)

// runtime holds the services shared by every subcommand, built once in the
// root PersistentPreRunE.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd creates and configures the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:   "lawwatch",
		Short: "Crawl and serve Taiwanese building-regulation notices",
		Long: `lawwatch ingests the paginated public announcement listing of
regulatory notices, enriches each entry from its detail page, and serves
the classified result over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// A local .env is optional; environment wins either way.
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.New(cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			zap.ReplaceGlobals(logger)
			metrics.Init()

			rt.cfg = cfg
			rt.logger = logger
			return nil
		},

		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	cmd.AddCommand(newCrawlCmd(rt))
	cmd.AddCommand(newServeCmd(rt))

	return cmd
}
