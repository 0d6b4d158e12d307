package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "bordro" {
		t.Errorf("Expected root command use to be 'bordro', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected root command to have descriptions")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"simulate", "payslip", "compare", "month", "exemptions", "validate", "serve", "version"} {
		if !names[want] {
			t.Errorf("Expected subcommand %s", want)
		}
	}
}

func TestRootCommand_Execute(t *testing.T) {
	stdout, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bordro dev")
}

func TestSimulate_CSV(t *testing.T) {
	stdout, stderr, err := run(t, "simulate", "testdata/personel.csv", "--format", "csv", "--raise", "0")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three employees")
	assert.Equal(t, "Personel", records[0][0])
	assert.Equal(t, "Ayşe Yılmaz", records[1][0])
	assert.Equal(t, "45000.50", records[1][3], "target equals current wage without a raise")

	assert.Contains(t, stderr, "skipping line 4")
	assert.Contains(t, stderr, "skipping line 5")
}

func TestSimulate_YAMLJSON(t *testing.T) {
	stdout, _, err := run(t, "simulate", "testdata/simulation.yaml", "--format", "json", "--tier", "manufacturing")
	require.NoError(t, err)

	var decoded struct {
		RunID         string `json:"runId"`
		IncentiveTier string `json:"incentiveTier"`
		Params        struct {
			Mode string `json:"mode"`
		} `json:"params"`
		Employees []json.RawMessage `json:"employees"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.NotEmpty(t, decoded.RunID)
	assert.Equal(t, "manufacturing", decoded.IncentiveTier)
	assert.Equal(t, "net", decoded.Params.Mode)
	assert.Len(t, decoded.Employees, 3)
}

func TestSimulate_Console(t *testing.T) {
	stdout, _, err := run(t, "simulate", "testdata/personel.csv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MAAŞ MALİYET SİMÜLASYONU")
	assert.Contains(t, stdout, "Can Öz")
}

func TestSimulate_OutputDir(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := run(t, "simulate", "testdata/personel.csv", "--format", "json", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report written to")

	matches, err := filepath.Glob(filepath.Join(dir, "bordro_report_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSimulate_Errors(t *testing.T) {
	_, _, err := run(t, "simulate", "testdata/personel.csv", "--format", "xlsx")
	assert.Error(t, err)

	_, _, err = run(t, "simulate", "testdata/personel.csv", "--tier", "mining")
	assert.Error(t, err)

	_, _, err = run(t, "simulate", "testdata/personel.csv", "--mode", "hourly")
	assert.Error(t, err)

	_, _, err = run(t, "simulate", "testdata/personel.csv", "--corporate-tax", "1,5")
	assert.Error(t, err)

	_, _, err = run(t, "simulate", "testdata/missing.csv")
	assert.Error(t, err)

	_, _, err = run(t, "simulate")
	assert.Error(t, err)
}

func TestRateFlags(t *testing.T) {
	stdout, _, err := run(t, "simulate", "testdata/personel.csv", "--format", "json", "--raise", "0.250", "--corporate-tax", "0.20")
	require.NoError(t, err)
	var decoded struct {
		Params struct {
			RaiseRate        decimal.Decimal `json:"raiseRate"`
			CorporateTaxRate decimal.Decimal `json:"corporateTaxRate"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.True(t, decoded.Params.RaiseRate.Equal(decimal.RequireFromString("0.25")), decoded.Params.RaiseRate.String())
	assert.True(t, decoded.Params.CorporateTaxRate.Equal(decimal.RequireFromString("0.20")))

	// 1.250 is a 125% raise, never a thousands-grouped 1250
	stdout, _, err = run(t, "simulate", "testdata/personel.csv", "--format", "json", "--raise", "1.250")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.True(t, decoded.Params.RaiseRate.Equal(decimal.RequireFromString("1.25")), decoded.Params.RaiseRate.String())

	_, _, err = run(t, "simulate", "testdata/personel.csv", "--raise", "%30")
	assert.Error(t, err)
}

func TestTierFlag(t *testing.T) {
	_, _, err := run(t, "month", "--wage", "100000", "--tier", "mining")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: manufacturing, non_manufacturing, standard")

	cmd := newRootCmd()
	sub, _, err := cmd.Find([]string{"simulate"})
	require.NoError(t, err)
	assert.Contains(t, sub.Flags().Lookup("tier").Usage, "manufacturing, non_manufacturing, standard")
}

func TestPayslip(t *testing.T) {
	stdout, _, err := run(t, "payslip", "testdata/personel.csv", "--employee", "can öz", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 14)
	assert.Equal(t, "Ocak", records[1][0])
	assert.Equal(t, "TOPLAM", records[13][0])
}

func TestPayslip_PDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bordro.pdf")
	stdout, _, err := run(t, "payslip", "testdata/personel.csv", "--index", "2", "--format", "pdf", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Payslip written to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPayslip_Errors(t *testing.T) {
	_, _, err := run(t, "payslip", "testdata/personel.csv", "--employee", "Nobody")
	assert.Error(t, err)

	_, _, err = run(t, "payslip", "testdata/personel.csv", "--index", "9")
	assert.Error(t, err)
}

func TestMonth(t *testing.T) {
	stdout, _, err := run(t, "month", "--wage", "100000")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ocak BORDROSU")
	assert.Contains(t, stdout, "TOPLAM MALİYET")
	assert.Contains(t, stdout, "Marjinal GV Oranı:     %15,00")
	assert.Contains(t, stdout, "İşveren Prim Oranı:    %23,75")

	stdout, _, err = run(t, "month", "--wage", "100000", "--month", "3", "--cumulative", "150000", "--tier", "manufacturing")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Marjinal GV Oranı:     %20,00", "85000 on top of 150000 crosses 190000")
	assert.Contains(t, stdout, "İşveren Prim Oranı:    %18,75")

	stdout, _, err = run(t, "month", "--wage", "100.000,00", "--format", "json")
	require.NoError(t, err)
	var result struct {
		NetPay            decimal.Decimal `json:"netPay"`
		TotalEmployerCost decimal.Decimal `json:"totalEmployerCost"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.NetPay.Equal(decimal.RequireFromString("75953.0227")))
	assert.True(t, result.TotalEmployerCost.Equal(decimal.NewFromInt(123750)))
}

func TestMonth_Net(t *testing.T) {
	stdout, stderr, err := run(t, "month", "--wage", "75953.0227", "--mode", "net", "--format", "json")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var result struct {
		GrossWage decimal.Decimal `json:"grossWage"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.InDelta(t, 100000, result.GrossWage.InexactFloat64(), 0.05)
}

func TestMonth_Errors(t *testing.T) {
	_, _, err := run(t, "month")
	assert.Error(t, err, "wage is required")

	_, _, err = run(t, "month", "--wage", "1000", "--month", "13")
	assert.Error(t, err)

	_, _, err = run(t, "month", "--wage", "-5")
	assert.Error(t, err)
}

func TestExemptions(t *testing.T) {
	stdout, _, err := run(t, "exemptions", "--rates", "testdata/rates_2026.toml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2026 ASGARİ ÜCRET İSTİSNALARI")
	assert.Contains(t, stdout, "Temmuz")
	assert.Contains(t, stdout, "Aralık")
}

func TestValidate(t *testing.T) {
	stdout, _, err := run(t, "validate", "testdata/rates_2026.toml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rate table")

	stdout, _, err = run(t, "validate", "testdata/personel.csv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 employees, 2 rows skipped")

	stdout, _, err = run(t, "validate", "testdata/simulation.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 employees, net mode")

	_, _, err = run(t, "validate", "testdata/simulation.yaml", "--rates")
	assert.Error(t, err, "a simulation file is not a rate table")
}

func TestCompare(t *testing.T) {
	stdout, _, err := run(t, "compare", "testdata/personel.csv", "--raise", "0", "--with", "manufacturing,raise_25")
	require.NoError(t, err)
	assert.Contains(t, stdout, "BORDRO SENARYO KARŞILAŞTIRMASI")
	assert.Contains(t, stdout, "mevcut (base)")
	assert.Contains(t, stdout, "Lowest Cost: manufacturing")

	stdout, _, err = run(t, "compare", "testdata/simulation.yaml", "--transform", "set_corporate_tax:rate=0.20", "--format", "csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "set_corporate_tax:rate=0.20", records[2][0])
}

func TestCompare_ListTemplates(t *testing.T) {
	stdout, _, err := run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Available Templates:")
	assert.Contains(t, stdout, "raise_40")
}

func TestCompare_Errors(t *testing.T) {
	_, _, err := run(t, "compare")
	assert.Error(t, err)

	_, _, err = run(t, "compare", "testdata/personel.csv")
	assert.Error(t, err, "no alternatives given")

	_, _, err = run(t, "compare", "testdata/personel.csv", "--with", "nope")
	assert.Error(t, err)

	_, _, err = run(t, "compare", "testdata/personel.csv", "--with", "raise_25", "--format", "xml")
	assert.Error(t, err)
}
