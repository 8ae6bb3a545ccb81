package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roverworks/wheelsync/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wheelsync",
	Short: "Terrain-driven tire design parameter pipeline",
	Long:  "Computes slope and obstacle statistics from elevation point spreadsheets, classifies terrain photos, and synthesizes concrete tire design values with a generative model.",
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
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
