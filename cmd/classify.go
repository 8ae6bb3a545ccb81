package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roverworks/wheelsync/pkg/hf"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a terrain photo",
	Long: `Run image classification on a terrain photo and print the ranked
(label, confidence) predictions.

Example:
  wheelsync classify --image trail.png`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.String("image", "", "terrain photo to classify")
	_ = classifyCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate("hf"); err != nil {
		return err
	}

	image, _ := cmd.Flags().GetString("image")

	client := hf.NewClient(cfg.HF.Key, cfg.HF.Model, hf.WithBaseURL(cfg.HF.BaseURL))
	results, err := client.ClassifyImage(cmd.Context(), image)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%-24s %.4f\n", r.Label, r.Score)
	}
	return nil
}
