package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roverworks/wheelsync/internal/topo"
)

var topoCmd = &cobra.Command{
	Use:   "topo",
	Short: "Compute terrain metrics from an elevation point table",
	Long: `Compute slope (grade) and obstacle-height statistics from an ordered
table of (longitude, latitude, elevation) points.

The table is an XLSX or CSV file with four required columns; column names
default to the common GIS export schema (x, y, ZCOORD, ID) and can be
overridden per dataset.

Examples:
  # Analyze with default column names
  wheelsync topo --file points.xlsx

  # Non-default schema, write a text report alongside
  wheelsync topo --file survey.xlsx --lon-col LON --lat-col LAT --elev-col ALT --report metrics.txt`,
	RunE: runTopo,
}

func init() {
	f := topoCmd.Flags()
	f.String("file", "", "elevation point table (.xlsx or .csv)")
	f.String("lon-col", "", "longitude column name (default from config)")
	f.String("lat-col", "", "latitude column name (default from config)")
	f.String("elev-col", "", "elevation column name (default from config)")
	f.String("id-col", "", "ordering id column name (default from config)")
	f.String("sheet", "", "worksheet name for XLSX sources (default: first sheet)")
	f.String("report", "", "write a plain-text report to this path")
	_ = topoCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(topoCmd)
}

// topoOptions merges config defaults with CLI overrides.
func topoOptions(cmd *cobra.Command) topo.Options {
	opts := topo.Options{
		LonColumn:  cfg.Dataset.LonColumn,
		LatColumn:  cfg.Dataset.LatColumn,
		ElevColumn: cfg.Dataset.ElevColumn,
		IDColumn:   cfg.Dataset.IDColumn,
		Sheet:      cfg.Dataset.Sheet,
	}
	if v, _ := cmd.Flags().GetString("lon-col"); v != "" {
		opts.LonColumn = v
	}
	if v, _ := cmd.Flags().GetString("lat-col"); v != "" {
		opts.LatColumn = v
	}
	if v, _ := cmd.Flags().GetString("elev-col"); v != "" {
		opts.ElevColumn = v
	}
	if v, _ := cmd.Flags().GetString("id-col"); v != "" {
		opts.IDColumn = v
	}
	if v, _ := cmd.Flags().GetString("sheet"); v != "" {
		opts.Sheet = v
	}
	return opts
}

func runTopo(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	opts := topoOptions(cmd)
	opts.ReportPath, _ = cmd.Flags().GetString("report")

	metrics, err := topo.Analyze(file, opts)
	if err != nil {
		return err
	}

	fmt.Print(metrics.Report())
	return nil
}
