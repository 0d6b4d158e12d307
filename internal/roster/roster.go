package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/bordro/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	wageKeywords       = []string{"ücret", "ucret", "maaş", "maas", "tutar", "net", "brüt", "brut"}
	nameKeywords       = []string{"ad", "isim", "personel", "çalışan", "calisan"}
	departmentKeywords = []string{"departman", "bölüm", "bolum"}

	lowerTR = cases.Lower(language.Turkish)
)

// Columns names the header cells to read. An empty Name generates
// "Personel N"; an empty Department leaves it as "-".
type Columns struct {
	Wage       string `json:"wage"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
}

// Options controls how a personnel list is read
type Options struct {
	Columns Columns // explicit mapping; empty fields are auto-detected
	Comma   rune    // 0 detects ';' or ','
}

// SkippedRow records a row that did not produce an employee
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Result is the outcome of reading a personnel list
type Result struct {
	Employees []domain.Employee `json:"employees"`
	Columns   Columns           `json:"columns"`
	Skipped   []SkippedRow      `json:"skipped,omitempty"`
}

// DetectColumns guesses the wage, name and department columns from headers
func DetectColumns(headers []string) Columns {
	cols := Columns{
		Wage:       findColumn(headers, wageKeywords),
		Name:       findColumn(headers, nameKeywords),
		Department: findColumn(headers, departmentKeywords),
	}
	if cols.Wage == "" && len(headers) > 0 {
		cols.Wage = strings.TrimSpace(headers[0])
	}
	return cols
}

func findColumn(headers []string, keywords []string) string {
	for _, h := range headers {
		lower := lowerTR.String(strings.TrimSpace(h))
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return strings.TrimSpace(h)
			}
		}
	}
	return ""
}

// ReadFile reads a CSV personnel list from disk
func ReadFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parses a CSV personnel list. Rows with a blank, zero, negative or
// unparseable wage are skipped and reported in Result.Skipped.
func Read(r io.Reader, opts Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Comma
	if reader.Comma == 0 {
		reader.Comma = detectComma(data)
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("personnel list is empty")
	}

	headers := records[0]
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	cols := DetectColumns(headers)
	if opts.Columns.Wage != "" {
		cols.Wage = opts.Columns.Wage
	}
	if opts.Columns.Name != "" {
		cols.Name = opts.Columns.Name
	}
	if opts.Columns.Department != "" {
		cols.Department = opts.Columns.Department
	}
	for _, c := range []string{cols.Wage, cols.Name, cols.Department} {
		if _, ok := index[c]; c != "" && !ok {
			return nil, fmt.Errorf("column %q not found in header", c)
		}
	}

	result := &Result{Columns: cols}
	for i, row := range records[1:] {
		line := i + 2
		cell := func(col string) string {
			j, ok := index[col]
			if col == "" || !ok || j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		wage, err := ParseAmount(cell(cols.Wage))
		switch {
		case err != nil:
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		case wage.IsZero():
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: "wage is zero"})
			continue
		case wage.IsNegative():
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: "wage is negative"})
			continue
		}

		name := cell(cols.Name)
		if name == "" {
			name = fmt.Sprintf("Personel %d", i+1)
		}
		dept := cell(cols.Department)
		if dept == "" {
			dept = "-"
		}
		result.Employees = append(result.Employees, domain.Employee{Name: name, Department: dept, CurrentWage: wage})
	}
	return result, nil
}

// detectComma picks ';' when the header line uses it more than ','
func detectComma(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return ','
	}
	header := scanner.Text()
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}
