package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/bordro/internal/calculation"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestBatch(t *testing.T) *domain.BatchResult {
	t.Helper()
	engine := calculation.NewCalculationEngine(domain.DefaultRates2026())
	params := domain.DefaultSimulationParams()
	params.RaiseRate = decimal.Zero

	batch, err := engine.RunBatch(context.Background(), []domain.Employee{
		{Name: "Ayşe Yılmaz", Department: "Muhasebe", CurrentWage: decimal.NewFromInt(100000)},
		{Name: "Şükrü Işık", Department: "Depo", CurrentWage: decimal.NewFromInt(33030)},
	}, params)
	require.NoError(t, err)
	return batch
}

func TestFormatAmount(t *testing.T) {
	s := FormatAmount(decimal.RequireFromString("45000.5"))
	assert.NotContains(t, s, "45000.50", "should use Turkish grouping")
	assert.True(t, strings.HasSuffix(s, ",50"), "decimal comma expected, got %q", s)

	assert.True(t, strings.HasSuffix(FormatLira(decimal.NewFromInt(1)), " TL"))
	assert.True(t, strings.HasPrefix(FormatPercentage(decimal.RequireFromString("0.2175")), "%21"))
}

func TestGetFormatterByName(t *testing.T) {
	assert.IsType(t, ConsoleFormatter{}, GetFormatterByName("console"))
	assert.IsType(t, CSVSummarizer{}, GetFormatterByName("CSV"))
	assert.IsType(t, JSONFormatter{}, GetFormatterByName("json"))
	assert.Nil(t, GetFormatterByName("pdf"), "pdf is payslip-only")

	assert.IsType(t, PDFPayslip{}, GetPayslipFormatterByName("pdf"))
	assert.IsType(t, CSVPayslip{}, GetPayslipFormatterByName("csv"))
	assert.Nil(t, GetPayslipFormatterByName("html"))
}

func TestGenerateReport_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, buildTestBatch(t), "xlsx")
	assert.Contains(t, err.Error(), "unsupported format")

	err = GeneratePayslip(&buf, &buildTestBatch(t).Employees[0], "html")
	assert.Contains(t, err.Error(), "unsupported payslip format")
}

func TestCSVSummarizer_Format(t *testing.T) {
	batch := buildTestBatch(t)

	data, err := CSVSummarizer{}.Format(batch)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Len(t, header, 4+3*domain.MonthsPerYear+8)
	assert.Equal(t, "Ay_1_Maliyet", header[4])
	assert.Equal(t, "Ay_12_Brut", header[4+3*domain.MonthsPerYear-1])

	row := records[1]
	assert.Equal(t, "Ayşe Yılmaz", row[0])
	assert.Equal(t, "123750.00", row[4], "January cost")
	assert.Equal(t, "100000.00", row[6], "January gross")

	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %s missing", name)
		return -1
	}
	assert.Equal(t, "1485000.00", row[col("Toplam_Yillik_Maliyet")])
	assert.Equal(t, "371250.00", row[col("Kurumlar_Vergisi_Tasarrufu")])
	assert.Equal(t, "1113750.00", row[col("Net_Isveren_Maliyeti")])
}

func TestCSVPayslip_TotalRow(t *testing.T) {
	batch := buildTestBatch(t)

	data, err := CSVPayslip{}.FormatPayslip(&batch.Employees[0])
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+domain.MonthsPerYear+1)

	assert.Equal(t, PayslipHeaders(), records[0])
	assert.Equal(t, "Ocak", records[1][0])
	assert.Equal(t, "Aralık", records[12][0])

	total := records[13]
	assert.Equal(t, TotalLabel, total[0])
	assert.Equal(t, "1200000.00", total[1], "gross is summed")
	assert.Equal(t, "", total[5], "cumulative base is not summed")
	assert.Equal(t, "1485000.00", total[len(total)-1])
}

func TestBuildPayslip(t *testing.T) {
	batch := buildTestBatch(t)
	rows := BuildPayslip(&batch.Employees[1].Simulation)
	require.Len(t, rows, 13)

	for _, r := range rows[:12] {
		for _, v := range r.Values {
			assert.NotNil(t, v)
		}
	}
	last := rows[12]
	assert.Nil(t, last.Values[4])
	net := last.Values[11]
	require.NotNil(t, net)
	assert.True(t, net.Equal(batch.Employees[1].Simulation.Totals.NetPay))
}

func TestJSONFormatter(t *testing.T) {
	batch := buildTestBatch(t)

	data, err := JSONFormatter{}.Format(batch)
	require.NoError(t, err)

	var decoded struct {
		RunID           string `json:"runId"`
		Year            int    `json:"year"`
		TotalAnnualCost string `json:"totalAnnualCost"`
		Employees       []struct {
			Employee struct {
				Name string `json:"name"`
			} `json:"employee"`
		} `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, batch.RunID, decoded.RunID)
	assert.Equal(t, 2026, decoded.Year)
	assert.Len(t, decoded.Employees, 2)
	assert.True(t, decimal.RequireFromString(decoded.TotalAnnualCost).Equal(batch.TotalAnnualCost))
}

func TestConsoleFormatter(t *testing.T) {
	batch := buildTestBatch(t)

	data, err := ConsoleFormatter{}.Format(batch)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "2026 MAAŞ MALİYET SİMÜLASYONU")
	assert.Contains(t, content, "Ayşe Yılmaz")
	assert.Contains(t, content, "Şükrü Işık")
	assert.Contains(t, content, "VARSAYIMLAR")
	assert.Contains(t, content, batch.RunID)

	data, err = ConsoleFormatter{}.FormatPayslip(&batch.Employees[0])
	require.NoError(t, err)
	content = string(data)
	assert.Contains(t, content, "AYLIK BORDRO: Ayşe Yılmaz")
	assert.Contains(t, content, "Ağustos")
	assert.Contains(t, content, TotalLabel)
}

func TestPDFPayslip(t *testing.T) {
	batch := buildTestBatch(t)

	data, err := PDFPayslip{}.FormatPayslip(&batch.Employees[1])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "should be a PDF document")
}

type stubFormatter struct {
	id  string
	out []byte
	err error
}

func (s stubFormatter) Name() string { return s.id }

func (s stubFormatter) Format(*domain.BatchResult) ([]byte, error) { return s.out, s.err }

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	formatter := stubFormatter{id: "test-formatter", out: []byte("test output content")}
	assert.Equal(t, "test-formatter", formatter.Name())

	filename, err := WriteFormatted(dir, formatter, buildTestBatch(t), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "bordro_report_")
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := stubFormatter{id: "error-formatter", err: fmt.Errorf("formatter error")}

	filename, err := WriteFormatted(t.TempDir(), formatter, buildTestBatch(t), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestAssumptions(t *testing.T) {
	lines := Assumptions(domain.DefaultRateSpec2026())
	assert.Len(t, lines, 5+len(domain.DefaultRateSpec2026().Brackets))
	assert.Nil(t, Assumptions(domain.RateSpec{}))
}
