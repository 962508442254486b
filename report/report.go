/*
Package report builds and validates the monthly VR workbook.

PURPOSE:
  The assembler turns engine output into an ordered set of sheets; the
  validator checks an assembled (or reloaded) workbook against the
  reference template and the 80/20 invariant, writing its findings into
  the Validações sheet.

SHEET ORDER (fixed):
  1. "VR Mensal"   - computed sheet, one row per employee
  2. ATIVOS        - raw input, verbatim
  3. FERIAS        - raw input, verbatim
  4. DESLIGADOS    - raw input, verbatim
  5. "Validações"  - empty until the validator fills it

DETERMINISM:
  Same inputs, same layout: column order is template-driven then
  canonical, rows are sorted by matricula upstream, and assembly adds
  nothing non-deterministic.

SEE ALSO:
  - validate.go: Structural, split and negative checks
  - metrics.go: Row counts and column sums for callers to display
*/
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

// Sheet names of the output workbook.
const (
	SheetComputed    = "VR Mensal"
	SheetValidations = "Validações"
)

// Display headers of the computed sheet. The split columns keep their
// mixed-case display form; everything else is canonical upper-case.
const (
	HeaderDays             = "DIAS"
	HeaderDailyRate        = "VALOR_DIARIO_VR"
	HeaderTotal            = "TOTAL"
	HeaderCompanyCost      = "Custo empresa"
	HeaderEmployeeDiscount = "Desconto profissional"
)

// computedColumns is the canonical column order of the computed sheet,
// used for every column the template does not position.
var computedColumns = []string{
	voucher.ColMatricula,
	voucher.ColName,
	voucher.ColRole,
	voucher.ColSindicato,
	"ESTADO",
	HeaderDays,
	HeaderDailyRate,
	HeaderTotal,
	HeaderCompanyCost,
	HeaderEmployeeDiscount,
}

// Report is an ordered collection of named sheets.
type Report struct {
	Month  time.Month
	Year   int
	Sheets []*tabular.Table
}

// Sheet returns the sheet with the given name (canonical match), or nil.
func (r *Report) Sheet(name string) *tabular.Table {
	want := tabular.NormalizeColumn(name)
	for _, s := range r.Sheets {
		if tabular.NormalizeColumn(s.Name) == want {
			return s
		}
	}
	return nil
}

// DefaultOutputName returns the conventional report file name,
// VR_MENSAL_<MM>_<YYYY>.xlsx.
func DefaultOutputName(month time.Month, year int) string {
	return fmt.Sprintf("VR_MENSAL_%02d_%d.xlsx", int(month), year)
}

// Assemble builds the output report. The template, when given, dictates
// the computed sheet's column order for every column it defines; columns
// only the template knows are emitted blank and surfaced later by the
// validator as a structural finding, never as an assembly failure.
func Assemble(comps []voucher.Computation, rec *voucher.Records, month time.Month, year int, template *tabular.Table) *Report {
	columns := computedColumnOrder(template)

	computed := tabular.NewRaw(SheetComputed, columns...)
	for _, c := range comps {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = computedCell(c, col)
		}
		computed.Rows = append(computed.Rows, row)
	}

	rep := &Report{Month: month, Year: year}
	rep.Sheets = append(rep.Sheets, computed)
	for _, name := range []string{voucher.TableActive, voucher.TableVacations, voucher.TableTerminations} {
		if raw, ok := rec.Raw[name]; ok {
			rep.Sheets = append(rep.Sheets, raw.Clone())
		}
	}
	rep.Sheets = append(rep.Sheets, tabular.NewRaw(SheetValidations, "Check", "Detalhe"))
	return rep
}

// computedColumnOrder merges template order with the canonical order:
// template columns first, as the template lays them out, then every
// canonical column the template omits.
func computedColumnOrder(template *tabular.Table) []string {
	if template == nil {
		out := make([]string, len(computedColumns))
		copy(out, computedColumns)
		return out
	}

	seen := make(map[string]bool, len(template.Columns))
	out := make([]string, 0, len(template.Columns)+len(computedColumns))
	for _, c := range template.Columns {
		out = append(out, c)
		seen[tabular.NormalizeColumn(c)] = true
	}
	for _, c := range computedColumns {
		if !seen[tabular.NormalizeColumn(c)] {
			out = append(out, c)
		}
	}
	return out
}

// computedCell maps a canonical column name to its value for one
// computation. Columns the engine does not produce stay blank.
func computedCell(c voucher.Computation, column string) string {
	switch tabular.NormalizeColumn(column) {
	case voucher.ColMatricula:
		return c.Matricula
	case voucher.ColName:
		return c.Name
	case voucher.ColRole:
		return c.Role
	case voucher.ColSindicato:
		return c.Sindicato
	case "ESTADO":
		return c.Estado
	case HeaderDays:
		return strconv.Itoa(c.EligibleDays)
	case HeaderDailyRate:
		return tabular.FormatAmount(c.DailyRate)
	case HeaderTotal:
		return tabular.FormatAmount(c.Total)
	case "CUSTO_EMPRESA":
		return tabular.FormatAmount(c.CompanyCost)
	case "DESCONTO_PROFISSIONAL":
		return tabular.FormatAmount(c.EmployeeDiscount)
	default:
		return ""
	}
}
