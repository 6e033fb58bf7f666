package cmd

import (
	"os"

	"github.com/epeers/twrank/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCMD = &cobra.Command{
	Use:   "twrank",
	Short: "Taiwan stock turnover ranking with multi-horizon price drift",
	Long: `Ranks TWSE listed and TPEx OTC securities by daily turnover and reports
how each close moved against 1, 5, 10, 20, 60, 120 and 240 trading days earlier.
Serve it over HTTP or run a single ranking from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
			level = log.InfoLevel
		}
		log.SetLevel(level)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCMD.AddCommand(serveCMD, rankCMD, latestCMD)
}
