package tabular

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TYPED CELL COERCION
// =============================================================================
// Spreadsheet cells arrive as strings in whatever format the upstream HR
// export produced. Coercion is lenient about format and strict about
// meaning: an unparseable non-empty cell is an error, never a zero.

// dateLayouts are tried in order. Slash dates are day-first: the input
// sheets come from Brazilian payroll exports.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	time.RFC3339,
}

// ParseDate coerces a cell to a UTC day.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrDataType
}

// ParseDecimal coerces a cell to a decimal amount. Accepts both decimal
// separators ("1234.56", "1234,56", "1.234,56") and an optional R$ prefix.
func ParseDecimal(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSpace(strings.TrimPrefix(v, "R$"))
	if strings.Contains(v, ",") {
		// Comma is the decimal separator; dots are thousands markers.
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, ErrDataType
	}
	return d, nil
}

// ParseInt coerces a cell to an integer. Whole-valued decimals ("5.0",
// exported by spreadsheet tools for integer columns) are accepted.
func ParseInt(s string) (int, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := ParseDecimal(v)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, ErrDataType
	}
	return int(d.IntPart()), nil
}

// FormatDate renders a day the way report sheets store it.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

// FormatAmount renders a monetary value with two decimals and a dot
// separator, the format the validator parses back.
func FormatAmount(d decimal.Decimal) string { return d.StringFixed(2) }
