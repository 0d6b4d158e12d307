package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/output"
	"github.com/spf13/cobra"
)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [personnel-file]",
		Short: "Simulate the annual employer cost of a personnel list",
		Long: `Runs every employee through twelve months of payroll after applying the raise.

The personnel file is either a CSV export (columns detected by header) or a
YAML simulation file with optional embedded rates.

Examples:
  bordro simulate personel.csv --raise 0.30 --mode net
  bordro simulate simulation.yaml --tier manufacturing --format csv
  bordro simulate personel.csv --format json --output-dir reports/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := loadSimulation(cmd, args[0])
			if err != nil {
				return err
			}

			engine := newEngine(cmd, sim.Rates)
			batch, err := engine.RunBatch(cmd.Context(), sim.Employees, sim.Params)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			if outputDir != "" {
				return writeReportFile(cmd, outputDir, format, batch)
			}
			return output.GenerateReport(cmd.OutOrStdout(), batch, format)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory")
	return cmd
}

func writeReportFile(cmd *cobra.Command, dir, format string, batch *domain.BatchResult) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	ext := strings.ToLower(format)
	if ext == "console" || ext == "table" {
		ext = "txt"
	}
	name, err := output.WriteFormatted(dir, f, batch, ext)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
	return nil
}
