package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/output"
	"github.com/spf13/cobra"
)

func payslipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payslip [personnel-file]",
		Short: "Show the twelve-month payslip of one employee",
		Long: `Prints the monthly breakdown (contributions, cumulative income tax base,
exemptions, net pay and employer cost) of one employee with a TOPLAM row.

Examples:
  bordro payslip personel.csv --employee "Ayşe Yılmaz"
  bordro payslip personel.csv --index 3 --format pdf --output ayse.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := loadSimulation(cmd, args[0])
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("employee")
			index, _ := cmd.Flags().GetInt("index")
			emp, err := selectEmployee(sim.Employees, name, index)
			if err != nil {
				return err
			}

			engine := newEngine(cmd, sim.Rates)
			result, err := engine.SimulateEmployee(emp, sim.Params)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			outFile, _ := cmd.Flags().GetString("output")
			if outFile == "" {
				return output.GeneratePayslip(cmd.OutOrStdout(), result, format)
			}

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outFile, err)
			}
			defer f.Close()
			if err := output.GeneratePayslip(f, result, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payslip written to %s\n", outFile)
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")
	cmd.Flags().String("employee", "", "Employee name (case-insensitive)")
	cmd.Flags().Int("index", 1, "1-based position in the personnel list when --employee is not given")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func selectEmployee(employees []domain.Employee, name string, index int) (domain.Employee, error) {
	if name != "" {
		for _, e := range employees {
			if strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(name)) {
				return e, nil
			}
		}
		return domain.Employee{}, fmt.Errorf("employee %q not found", name)
	}
	if index < 1 || index > len(employees) {
		return domain.Employee{}, fmt.Errorf("index %d out of range (1-%d)", index, len(employees))
	}
	return employees[index-1], nil
}
