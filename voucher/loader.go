/*
loader.go - Input-table discovery, normalization and typing

PURPOSE:
  Turns whatever the HR export dropped into the input directory into the
  typed records the engine computes from. This is the only place that
  knows about spelling variants, column aliases and cell formats; the
  rest of the pipeline sees canonical field names only.

DISCOVERY:
  Each logical table is located by name hint: any workbook whose name
  contains ATIVOS / FERIAS (FÉRIAS tolerated) / DESLIGADOS, matched
  case- and accent-insensitively.

FAILURE POLICY:
  - Missing workbook            -> ErrTableNotFound (fatal)
  - Missing required column(s)  -> SchemaError listing all of them (fatal)
  - Uncoercible cell            -> DataTypeError naming table/column/row
  - Duplicate MATRICULA         -> schema-grade failure (id is the key)
  Loading never writes and never swallows errors.
*/
package voucher

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/voucher-engine/tabular"
)

// Load reads the three input tables from a source and yields typed
// records. The returned Records also carry the normalized raw sheets so
// the report can embed them verbatim.
func Load(src Source) (*Records, error) {
	names, err := src.List()
	if err != nil {
		return nil, err
	}

	active, err := findTable(src, names, TableActive)
	if err != nil {
		return nil, err
	}
	vacations, err := findTable(src, names, TableVacations)
	if err != nil {
		return nil, err
	}
	terminations, err := findTable(src, names, TableTerminations)
	if err != nil {
		return nil, err
	}

	rec := &Records{Raw: map[string]*tabular.Table{
		TableActive:       active,
		TableVacations:    vacations,
		TableTerminations: terminations,
	}}

	if rec.Employees, err = parseEmployees(active); err != nil {
		return nil, err
	}
	if rec.Vacations, err = parseVacations(vacations); err != nil {
		return nil, err
	}
	if rec.Terminations, err = parseTerminations(terminations); err != nil {
		return nil, err
	}
	return rec, nil
}

// findTable locates a logical table by name hint and checks its schema.
func findTable(src Source, names []string, table string) (*tabular.Table, error) {
	hint := tabular.NormalizeColumn(table)
	for _, n := range names {
		if !strings.Contains(tabular.NormalizeColumn(n), hint) {
			continue
		}
		t, err := src.Read(n)
		if err != nil {
			return nil, err
		}
		t.Name = table
		schema := tabular.MustLookupSchema(table)
		if missing := schema.MissingFrom(t); len(missing) > 0 {
			return nil, &tabular.SchemaError{Table: table, Missing: missing}
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: no workbook matching %q", tabular.ErrTableNotFound, table)
}

// =============================================================================
// ROW PARSING
// =============================================================================

func parseEmployees(t *tabular.Table) ([]EmployeeRecord, error) {
	seen := make(map[string]bool, t.NumRows())
	out := make([]EmployeeRecord, 0, t.NumRows())

	for i := 0; i < t.NumRows(); i++ {
		id := strings.TrimSpace(t.Cell(i, ColMatricula))
		if id == "" {
			return nil, cellError(t.Name, ColMatricula, i, "", "identifier")
		}
		if seen[id] {
			return nil, fmt.Errorf("table %s: duplicate matricula %s: %w", t.Name, id, tabular.ErrSchema)
		}
		seen[id] = true

		admission, err := cellDate(t, i, ColAdmission)
		if err != nil {
			return nil, err
		}

		status := StatusActive
		switch tabular.NormalizeValue(t.Cell(i, ColStatus)) {
		case "DESLIGADO", "INATIVO", "TERMINATED":
			status = StatusTerminated
		}

		out = append(out, EmployeeRecord{
			Matricula: id,
			Name:      strings.TrimSpace(t.Cell(i, ColName)),
			Role:      strings.TrimSpace(t.Cell(i, ColRole)),
			Company:   strings.TrimSpace(t.Cell(i, ColCompany)),
			Sindicato: strings.TrimSpace(t.Cell(i, ColSindicato)),
			Admission: admission,
			Status:    status,
		})
	}
	return out, nil
}

func parseVacations(t *tabular.Table) ([]VacationPeriod, error) {
	out := make([]VacationPeriod, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		start, err := cellDate(t, i, ColVacStart)
		if err != nil {
			return nil, err
		}
		end, err := cellDate(t, i, ColVacEnd)
		if err != nil {
			return nil, err
		}
		if start.After(end) {
			return nil, cellError(t.Name, ColVacEnd, i, t.Cell(i, ColVacEnd), "date span (end before start)")
		}
		days, err := cellInt(t, i, ColVacDays)
		if err != nil {
			return nil, err
		}
		if span := daysInclusive(start, end); days != span {
			return nil, cellError(t.Name, ColVacDays, i, t.Cell(i, ColVacDays),
				fmt.Sprintf("day count (date span is %d days)", span))
		}
		out = append(out, VacationPeriod{
			Matricula: strings.TrimSpace(t.Cell(i, ColMatricula)),
			Start:     start,
			End:       end,
			DayCount:  days,
		})
	}
	return out, nil
}

func parseTerminations(t *tabular.Table) ([]TerminationRecord, error) {
	seen := make(map[string]bool, t.NumRows())
	out := make([]TerminationRecord, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		id := strings.TrimSpace(t.Cell(i, ColMatricula))
		if seen[id] {
			return nil, fmt.Errorf("table %s: duplicate termination for matricula %s: %w",
				t.Name, id, tabular.ErrSchema)
		}
		seen[id] = true

		date, err := cellDate(t, i, ColTermination)
		if err != nil {
			return nil, err
		}
		out = append(out, TerminationRecord{
			Matricula: id,
			Date:      date,
			Notice:    strings.TrimSpace(t.Cell(i, ColNotice)),
		})
	}
	return out, nil
}

// =============================================================================
// CELL HELPERS - Coercion with table/column/row context
// =============================================================================

func cellDate(t *tabular.Table, row int, col string) (time.Time, error) {
	v := t.Cell(row, col)
	d, err := tabular.ParseDate(v)
	if err != nil {
		return time.Time{}, cellError(t.Name, col, row, v, "date")
	}
	return d, nil
}

func cellInt(t *tabular.Table, row int, col string) (int, error) {
	v := t.Cell(row, col)
	n, err := tabular.ParseInt(v)
	if err != nil {
		return 0, cellError(t.Name, col, row, v, "integer")
	}
	return n, nil
}

func cellError(table, col string, row int, value, kind string) error {
	// Rows are 1-based in the error so they match what the sheet shows.
	return &tabular.DataTypeError{Table: table, Column: col, Row: row + 1, Value: value, Kind: kind}
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
