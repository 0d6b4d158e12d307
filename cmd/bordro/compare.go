package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bordro/internal/compare"
	"github.com/rgehrsitz/bordro/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [personnel-file]",
		Short: "Compare the payroll cost of what-if scenarios",
		Long: `Runs the personnel list under the current parameters and once more per
template or transform, then reports the cost and net pay deltas.

Examples:
  bordro compare personel.csv --with raise_25,raise_40
  bordro compare personel.csv --with manufacturing --transform set_raise:rate=0.35
  bordro compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("a personnel file is required")
			}

			sim, err := loadSimulation(cmd, args[0])
			if err != nil {
				return err
			}

			withList, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")

			engine := compare.NewCompareEngine(newEngine(cmd, sim.Rates))
			base := &transform.Scenario{Name: "mevcut", Rates: sim.Rates, Params: sim.Params}
			set, err := engine.Compare(cmd.Context(), sim.Employees, base, compare.CompareOptions{
				Templates:  transform.ParseTemplateList(withList),
				Transforms: transforms,
				InputPath:  args[0],
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(format) {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
				out += "\n"
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().String("with", "", "Comma-separated template names to compare against the base")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List the built-in templates and exit")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}
