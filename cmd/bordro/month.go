package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/bordro/internal/calculation"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/output"
	"github.com/spf13/cobra"
)

func monthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Calculate a single payroll month",
		Long: `Computes one month of deductions for a gross wage, or solves the gross wage
that yields a target net pay.

Examples:
  bordro month --wage 100000 --month 1
  bordro month --wage 75000 --mode net --month 7 --cumulative 600000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := loadRates(cmd, nil)
			if err != nil {
				return err
			}
			engine := newEngine(cmd, rc)

			wage, err := decimalFlag(cmd, "wage")
			if err != nil {
				return err
			}
			cumulative, err := decimalFlag(cmd, "cumulative")
			if err != nil {
				return err
			}
			rawMode, _ := cmd.Flags().GetString("mode")
			mode, err := domain.ParseCalculationMode(rawMode)
			if err != nil {
				return err
			}
			month, _ := cmd.Flags().GetInt("month")
			idx := month - 1

			gross := wage
			if mode == domain.NetAnchored {
				solved, err := engine.SolveGross(wage, idx, cumulative)
				if err != nil {
					return err
				}
				if !solved.Converged {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: target net not reached after %d iterations\n", solved.Iterations)
				}
				gross = solved.GrossWage
			}

			result, err := engine.ComputeMonth(gross, idx, cumulative)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if format == "json" {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			printMonth(cmd.OutOrStdout(), result, engine.Rates)
			return nil
		},
	}
	addRateFlags(cmd)
	cmd.Flags().String("wage", "", "Gross wage, or target net wage with --mode net")
	cmd.Flags().StringP("mode", "m", "gross", "Wage anchor: gross (brüt) or net")
	cmd.Flags().Int("month", 1, "Month of the year (1-12)")
	cmd.Flags().String("cumulative", "0", "Cumulative income tax base carried into the month")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	_ = cmd.MarkFlagRequired("wage")
	return cmd
}

func printMonth(w io.Writer, r domain.MonthlyDeductionResult, rc domain.RateConfig) {
	marginal := calculation.NewBracketTaxCalculator(rc).MarginalRate(r.CumulativeTaxBase.Add(r.IncomeTaxBase))

	fmt.Fprintf(w, "%s BORDROSU\n", r.MonthName())
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "Brüt Ücret:            %s\n", output.FormatLira(r.GrossWage))
	fmt.Fprintf(w, "SGK Matrahı:           %s\n", output.FormatLira(r.SGKBase))
	fmt.Fprintf(w, "SGK İşçi:              %s\n", output.FormatLira(r.WorkerSGK))
	fmt.Fprintf(w, "İşsizlik İşçi:         %s\n", output.FormatLira(r.WorkerUnemployment))
	fmt.Fprintf(w, "GV Matrahı:            %s\n", output.FormatLira(r.IncomeTaxBase))
	fmt.Fprintf(w, "Kümülatif GV Matrahı:  %s\n", output.FormatLira(r.CumulativeTaxBase))
	fmt.Fprintf(w, "Marjinal GV Oranı:     %s\n", output.FormatPercentage(marginal))
	fmt.Fprintf(w, "Hesaplanan GV:         %s\n", output.FormatLira(r.RawIncomeTax))
	fmt.Fprintf(w, "GV İstisnası:          %s\n", output.FormatLira(r.IncomeTaxExemption))
	fmt.Fprintf(w, "Ödenecek GV:           %s\n", output.FormatLira(r.PayableIncomeTax))
	fmt.Fprintf(w, "Hesaplanan DV:         %s\n", output.FormatLira(r.RawStampTax))
	fmt.Fprintf(w, "DV İstisnası:          %s\n", output.FormatLira(r.StampDutyExemption))
	fmt.Fprintf(w, "Ödenecek DV:           %s\n", output.FormatLira(r.PayableStampTax))
	fmt.Fprintf(w, "NET ELE GEÇEN:         %s\n", output.FormatLira(r.NetPay))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "İşveren Prim Oranı:    %s\n", output.FormatPercentage(rc.EmployerContributionRate()))
	fmt.Fprintf(w, "SGK İşveren:           %s\n", output.FormatLira(r.EmployerSGK))
	fmt.Fprintf(w, "İşsizlik İşveren:      %s\n", output.FormatLira(r.EmployerUnemployment))
	fmt.Fprintf(w, "TOPLAM MALİYET:        %s\n", output.FormatLira(r.TotalEmployerCost))
}

func exemptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exemptions",
		Short: "List the monthly minimum wage tax exemptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := loadRates(cmd, nil)
			if err != nil {
				return err
			}
			engine := newEngine(cmd, rc)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d ASGARİ ÜCRET İSTİSNALARI\n", rc.Year())
			fmt.Fprintf(w, "%-10s %18s %18s\n", "Ay", "GV İstisnası", "DV İstisnası")
			for i, e := range engine.Schedule.Entries() {
				fmt.Fprintf(w, "%-10s %18s %18s\n", domain.MonthNames[i],
					output.FormatAmount(e.IncomeTaxExemption), output.FormatAmount(e.StampDutyExemption))
			}
			fmt.Fprintf(w, "Yıllık GV istisnası: %s\n", output.FormatLira(engine.Schedule.AnnualIncomeTaxExemption()))
			return nil
		},
	}
	addRateFlags(cmd)
	return cmd
}
