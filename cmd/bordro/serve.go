package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/bordro/internal/config"
	"github.com/rgehrsitz/bordro/internal/roster"
	"github.com/rgehrsitz/bordro/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payroll calculator over HTTP",
		Long: `Starts a JSON API:

  GET  /healthz
  GET  /api/v1/rates
  GET  /api/v1/exemptions
  POST /api/v1/calculate
  POST /api/v1/simulate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := loadRates(cmd, nil)
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")

			srv := server.New(newEngine(cmd, rc), cmd.ErrOrStderr())
			fmt.Fprintf(cmd.OutOrStdout(), "bordro API listening on %s with %d rates\n", addr, rc.Year())
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	addRateFlags(cmd)
	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a rate table, simulation file or personnel CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			parser := config.NewInputParser()
			ratesOnly, _ := cmd.Flags().GetBool("rates")
			w := cmd.OutOrStdout()

			switch ext := strings.ToLower(filepath.Ext(path)); {
			case ext == ".csv":
				result, err := roster.ReadFile(path, roster.Options{})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Personnel list %s is valid: %d employees, %d rows skipped (wage column %q)\n",
					path, len(result.Employees), len(result.Skipped), result.Columns.Wage)
			case ext == ".toml" || ratesOnly:
				rc, err := parser.LoadRates(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Rate table %s is valid (%d, %d brackets)\n", path, rc.Year(), len(rc.Brackets()))
			default:
				sim, err := parser.LoadSimulation(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Configuration file %s is valid: %d employees, %s mode\n", path, len(sim.Employees), sim.Params.Mode)
			}
			return nil
		},
	}
	cmd.Flags().Bool("rates", false, "Treat a YAML file as a rate table")
	return cmd
}
