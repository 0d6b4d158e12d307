package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var thousandsOnly = regexp.MustCompile(`^-?[1-9]\d{0,2}(\.\d{3})+$`)

// ParseAmount converts a spreadsheet amount to a decimal. Turkish formatting
// ("22.104,67") and plain decimal points ("22104.67") are both accepted, as
// are currency markers. A blank cell is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	for _, marker := range []string{"₺", "TRY", "TL", " ", "\u00a0"} {
		s = strings.ReplaceAll(s, marker, "")
	}
	if s == "" {
		return decimal.Zero, nil
	}

	switch {
	case strings.Contains(s, ","):
		// comma is the decimal separator, dots group thousands
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse amount %q", raw)
	}
	return d, nil
}
