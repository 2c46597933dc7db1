package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
	"github.com/agriprofessor/soiladvisor/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "soiladvisor",
	Short: "Soil compaction and trafficability advisor",
	Long:  "Classifies field trafficability risk from soil and machinery measurements, single readings or CSV batches, with a worst-case-dominant rule set and plain-language advisories.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Rejected measurements exit 2 so callers can tell bad input
		// from operational failures.
		var verr *classifier.ValidationError
		if errors.As(err, &verr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
