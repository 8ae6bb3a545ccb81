package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roverworks/wheelsync/internal/assemble"
	"github.com/roverworks/wheelsync/internal/synth"
	"github.com/roverworks/wheelsync/internal/topo"
	"github.com/roverworks/wheelsync/pkg/anthropic"
	"github.com/roverworks/wheelsync/pkg/hf"
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Synthesize tire design values from terrain data",
	Long: `Run the full pipeline: compute terrain metrics from the elevation
table, classify the terrain photo, merge both into a design context, and
ask the generative model for concrete tire design values.

The validated design JSON is printed to stdout.

Example:
  wheelsync design --file points.xlsx --image trail.png --report metrics.txt`,
	RunE: runDesign,
}

func init() {
	f := designCmd.Flags()
	f.String("file", "", "elevation point table (.xlsx or .csv)")
	f.String("image", "", "terrain photo to classify")
	f.String("lon-col", "", "longitude column name (default from config)")
	f.String("lat-col", "", "latitude column name (default from config)")
	f.String("elev-col", "", "elevation column name (default from config)")
	f.String("id-col", "", "ordering id column name (default from config)")
	f.String("sheet", "", "worksheet name for XLSX sources (default: first sheet)")
	f.String("report", "", "write a plain-text metrics report to this path")
	_ = designCmd.MarkFlagRequired("file")
	_ = designCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(designCmd)
}

func runDesign(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("hf", "anthropic", "synth"); err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	image, _ := cmd.Flags().GetString("image")

	opts := topoOptions(cmd)
	opts.ReportPath, _ = cmd.Flags().GetString("report")

	// Quantitative side is mandatory; failures here are terminal.
	metrics, err := topo.Analyze(file, opts)
	if err != nil {
		return err
	}

	// Qualitative side degrades to no labels on failure.
	hfClient := hf.NewClient(cfg.HF.Key, cfg.HF.Model, hf.WithBaseURL(cfg.HF.BaseURL))
	labels, err := hfClient.ClassifyImage(ctx, image)
	if err != nil {
		zap.L().Warn("design: image classification failed, continuing without labels",
			zap.String("image", image),
			zap.Error(err),
		)
		labels = nil
	}

	analysis := assemble.Build(metrics, labels)

	synthesizer := synth.New(
		anthropic.NewClient(cfg.Anthropic.Key),
		cfg.Anthropic.Model,
		cfg.Anthropic.MaxTokens,
		cfg.Synth.SystemPrompt,
	)
	design, err := synthesizer.Synthesize(ctx, analysis, file, image)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(design, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
