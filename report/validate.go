/*
validate.go - Report validation against the template and the 80/20 rule

PURPOSE:
  Re-derives the cost split of an assembled (or reloaded) report, diffs
  its structure against the reference template, scans for negative
  values, and writes the findings into the Validações sheet.

SEVERITY:
  FAIL     - any row-level 80/20 violation beyond one cent
  WARNING  - aggregate-only drift, missing/extra columns, or negatives
  OK       - everything reconciles

  Findings are data, never errors: the validator returns a structured
  report even when every check passes, and negatives are reported, not
  corrected - their origin is upstream input data.

IDEMPOTENCE:
  Validation reads everything except the Validações sheet and rewrites
  only that sheet, so validating twice yields the same report.
*/
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

// Status is the overall validation outcome.
type Status string

const (
	StatusOK      Status = "OK"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
)

// Epsilon is the split-check tolerance: one cent.
var Epsilon = decimal.New(1, -2)

// ValidationReport is the structured outcome of one validation pass.
type ValidationReport struct {
	MissingColumns    []string `json:"missing_columns"`
	ExtraColumns      []string `json:"extra_columns"`
	SplitViolations   []string `json:"split_violations"`
	NegativeValueRows []string `json:"negative_value_rows"`
	AggregateDrift    bool     `json:"aggregate_drift"`
	OverallStatus     Status   `json:"overall_status"`
}

// Validate checks the report against the template and the cost-split
// invariant, writes the outcome into the Validações sheet and returns it.
// A nil template skips the structural check (informational anyway).
func Validate(rep *Report, template *tabular.Table) (*ValidationReport, error) {
	computed := rep.Sheet(SheetComputed)
	if computed == nil {
		return nil, fmt.Errorf("report has no %q sheet: %w", SheetComputed, tabular.ErrTableNotFound)
	}

	vr := &ValidationReport{}
	if template != nil {
		vr.MissingColumns, vr.ExtraColumns = diffColumns(computed, template)
	}
	checkSplit(computed, vr)
	checkNegatives(computed, vr)

	switch {
	case len(vr.SplitViolations) > 0:
		vr.OverallStatus = StatusFail
	case vr.AggregateDrift || len(vr.MissingColumns) > 0 || len(vr.ExtraColumns) > 0 || len(vr.NegativeValueRows) > 0:
		vr.OverallStatus = StatusWarning
	default:
		vr.OverallStatus = StatusOK
	}

	writeValidations(rep, vr)
	return vr, nil
}

// diffColumns compares canonical column sets, reporting display names:
// the template's for missing columns, the report's for extra ones.
// The split columns the validator itself needs are canonical in both.
func diffColumns(computed, template *tabular.Table) (missing, extra []string) {
	has := func(t *tabular.Table, col string) bool { return t.HasColumn(col) }
	for _, c := range template.Columns {
		if !has(computed, c) {
			missing = append(missing, c)
		}
	}
	for _, c := range computed.Columns {
		if !has(template, c) {
			extra = append(extra, c)
		}
	}
	return missing, extra
}

// checkSplit verifies company cost + employee discount == total, per row
// and in aggregate. Unparseable cells count as zero: the validator is
// non-fatal by contract.
func checkSplit(computed *tabular.Table, vr *ValidationReport) {
	var sumTotal, sumCompany, sumDiscount decimal.Decimal

	for i := 0; i < computed.NumRows(); i++ {
		total := cellAmount(computed, i, HeaderTotal)
		company := cellAmount(computed, i, HeaderCompanyCost)
		discount := cellAmount(computed, i, HeaderEmployeeDiscount)

		sumTotal = sumTotal.Add(total)
		sumCompany = sumCompany.Add(company)
		sumDiscount = sumDiscount.Add(discount)

		if company.Add(discount).Sub(total).Abs().GreaterThan(Epsilon) {
			vr.SplitViolations = append(vr.SplitViolations, rowRef(computed, i))
		}
	}

	// Aggregate drift without row violations is pure rounding creep and
	// caps out at WARNING.
	if sumCompany.Add(sumDiscount).Sub(sumTotal).Abs().GreaterThan(Epsilon) {
		vr.AggregateDrift = true
	}
}

// checkNegatives scans the monetary columns. Offending rows are recorded
// once, in row order.
func checkNegatives(computed *tabular.Table, vr *ValidationReport) {
	for i := 0; i < computed.NumRows(); i++ {
		for _, col := range []string{HeaderTotal, HeaderCompanyCost, HeaderEmployeeDiscount} {
			if cellAmount(computed, i, col).IsNegative() {
				vr.NegativeValueRows = append(vr.NegativeValueRows, rowRef(computed, i))
				break
			}
		}
	}
}

// rowRef identifies a row for the validation report: the employee id
// when the sheet has one, otherwise the 1-based row number.
func rowRef(t *tabular.Table, row int) string {
	if id := strings.TrimSpace(t.Cell(row, voucher.ColMatricula)); id != "" {
		return id
	}
	return fmt.Sprintf("row %d", row+1)
}

func cellAmount(t *tabular.Table, row int, col string) decimal.Decimal {
	d, err := tabular.ParseDecimal(t.Cell(row, col))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// VALIDATIONS SHEET - Round-trippable Check/Detalhe rows
// =============================================================================

const (
	checkMissing   = "Colunas faltantes"
	checkExtra     = "Colunas extras"
	checkSplitRow  = "Regra 80/20 (linha)"
	checkSplitSum  = "Regra 80/20 (agregado)"
	checkNegative  = "Valores negativos"
	checkOverall   = "Status geral"
	detailNone     = "-"
	detailOK       = "OK"
	detailNegNone  = "Nenhum"
	detailFailPref = "Falha: "
)

// writeValidations replaces the Validações sheet content in place. This
// is the one cross-component mutation in the pipeline.
func writeValidations(rep *Report, vr *ValidationReport) {
	sheet := rep.Sheet(SheetValidations)
	if sheet == nil {
		sheet = tabular.NewRaw(SheetValidations, "Check", "Detalhe")
		rep.Sheets = append(rep.Sheets, sheet)
	}
	sheet.Rows = nil

	sheet.AppendRow(checkMissing, joinOr(vr.MissingColumns, detailNone))
	sheet.AppendRow(checkExtra, joinOr(vr.ExtraColumns, detailNone))
	sheet.AppendRow(checkSplitRow, okOrFail(vr.SplitViolations))
	if vr.AggregateDrift {
		sheet.AppendRow(checkSplitSum, "Falha")
	} else {
		sheet.AppendRow(checkSplitSum, detailOK)
	}
	sheet.AppendRow(checkNegative, joinOr(vr.NegativeValueRows, detailNegNone))
	sheet.AppendRow(checkOverall, string(vr.OverallStatus))
}

// ParseValidations reads a persisted Validações sheet back into a
// structured report, without recomputation.
func ParseValidations(sheet *tabular.Table) (*ValidationReport, error) {
	if sheet == nil {
		return nil, fmt.Errorf("no %q sheet: %w", SheetValidations, tabular.ErrTableNotFound)
	}

	vr := &ValidationReport{OverallStatus: StatusOK}
	for i := 0; i < sheet.NumRows(); i++ {
		detail := strings.TrimSpace(sheet.Cell(i, "Detalhe"))
		switch strings.TrimSpace(sheet.Cell(i, "Check")) {
		case checkMissing:
			vr.MissingColumns = splitOr(detail, detailNone)
		case checkExtra:
			vr.ExtraColumns = splitOr(detail, detailNone)
		case checkSplitRow:
			if strings.HasPrefix(detail, detailFailPref) {
				vr.SplitViolations = splitOr(strings.TrimPrefix(detail, detailFailPref), "")
			}
		case checkSplitSum:
			vr.AggregateDrift = detail != detailOK
		case checkNegative:
			vr.NegativeValueRows = splitOr(detail, detailNegNone)
		case checkOverall:
			vr.OverallStatus = Status(detail)
		}
	}
	return vr, nil
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

func okOrFail(violations []string) string {
	if len(violations) == 0 {
		return detailOK
	}
	return detailFailPref + strings.Join(violations, ", ")
}

func splitOr(detail, empty string) []string {
	if detail == "" || detail == empty {
		return nil
	}
	parts := strings.Split(detail, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
