package report

import (
	"github.com/shopspring/decimal"

	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

// Metrics is the caller-facing summary of a generated report. Thin
// callers (CLI, HTTP) display it; the core never consumes it.
type Metrics struct {
	Rows       int               `json:"rows"`
	Sindicatos int               `json:"sindicatos"`
	Sums       map[string]string `json:"sums"`
}

// Summarize computes row count, distinct union count and column sums
// over the computed sheet. Unparseable numeric cells count as zero.
func Summarize(rep *Report) Metrics {
	m := Metrics{Sums: make(map[string]string)}
	computed := rep.Sheet(SheetComputed)
	if computed == nil {
		return m
	}
	m.Rows = computed.NumRows()

	unions := make(map[string]bool)
	for _, v := range computed.Column(voucher.ColSindicato) {
		if norm := tabular.NormalizeValue(v); norm != "" {
			unions[norm] = true
		}
	}
	m.Sindicatos = len(unions)

	for _, col := range []string{HeaderDays, HeaderTotal, HeaderCompanyCost, HeaderEmployeeDiscount} {
		if !computed.HasColumn(col) {
			continue
		}
		sum := decimal.Zero
		for i := 0; i < computed.NumRows(); i++ {
			sum = sum.Add(cellAmount(computed, i, col))
		}
		m.Sums[col] = tabular.FormatAmount(sum)
	}
	return m
}
