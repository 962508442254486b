/*
Package voucher implements the meal-voucher (VR) domain.

PURPOSE:
  Owns the typed records behind the three input tables, the loader that
  produces them, and the eligibility & cost engine that turns them into
  per-employee computations for a target month.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmployeeRecord / VacationPeriod / TerminationRecord: typed, read-only
    views of one pipeline run's input rows
  - Computation: the derived per-employee result (days, total, 80/20 split)
  - Source: where input tables come from (a directory of workbooks in
    production, an in-memory map in tests)
  - Input-table schemas, registered with the tabular registry on init()

LIFECYCLE:
  Records are created by Load for the duration of one run and discarded
  after. Computations are created by Compute, consumed by the report
  assembler, and never mutated afterward.

SEE ALSO:
  - loader.go: Table discovery, normalization, coercion
  - engine.go: Eligibility and cost calculation
  - policy.go: Rule configuration (integral vs pro-rata, cutoff day)
*/
package voucher

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/voucher-engine/tabular"
)

// =============================================================================
// INPUT TABLES
// =============================================================================

// Logical input-table names. Discovery tolerates accent variants
// ("FÉRIAS" matches TableVacations).
const (
	TableActive       = "ATIVOS"
	TableVacations    = "FERIAS"
	TableTerminations = "DESLIGADOS"
)

// Canonical column names shared by loader, engine and report.
const (
	ColMatricula   = "MATRICULA"
	ColName        = "NOME"
	ColRole        = "TITULO_DO_CARGO"
	ColCompany     = "EMPRESA"
	ColSindicato   = "SINDICATO"
	ColAdmission   = "ADMISSAO"
	ColStatus      = "STATUS"
	ColVacStart    = "DATA_INICIO"
	ColVacEnd      = "DATA_FIM"
	ColVacDays     = "DIAS_DE_FERIAS"
	ColTermination = "DATA_DEMISSAO"
	ColNotice      = "COMUNICADO_DE_DESLIGAMENTO"
)

func init() {
	tabular.RegisterSchema(tabular.Schema{
		Table:    TableActive,
		Required: []string{ColMatricula, ColName, ColRole, ColAdmission},
		Optional: []string{ColCompany, ColSindicato, ColStatus},
	})
	tabular.RegisterSchema(tabular.Schema{
		Table:    TableVacations,
		Required: []string{ColMatricula, ColVacStart, ColVacEnd, ColVacDays},
	})
	tabular.RegisterSchema(tabular.Schema{
		Table:    TableTerminations,
		Required: []string{ColMatricula, ColTermination},
		Optional: []string{ColNotice},
	})
}

// =============================================================================
// TYPED RECORDS - Read-only for the duration of one run
// =============================================================================

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// EmployeeRecord is one row of the ATIVOS table.
type EmployeeRecord struct {
	Matricula string
	Name      string
	Role      string
	Company   string
	Sindicato string
	Admission time.Time
	Status    Status
}

// VacationPeriod is one row of the FERIAS table.
// Invariant (enforced on load): Start <= End, and DayCount equals the
// inclusive day span between them.
type VacationPeriod struct {
	Matricula string
	Start     time.Time
	End       time.Time
	DayCount  int
}

// TerminationRecord is one row of the DESLIGADOS table.
// Invariant (enforced on load): at most one per employee.
type TerminationRecord struct {
	Matricula string
	Date      time.Time
	Notice    string
}

// Records is the loader output: the typed view plus the normalized raw
// sheets, which the report carries verbatim.
type Records struct {
	Employees    []EmployeeRecord
	Vacations    []VacationPeriod
	Terminations []TerminationRecord

	Raw map[string]*tabular.Table
}

// TerminationFor returns the termination record for an employee, if any.
func (r *Records) TerminationFor(matricula string) (TerminationRecord, bool) {
	for _, t := range r.Terminations {
		if t.Matricula == matricula {
			return t, true
		}
	}
	return TerminationRecord{}, false
}

// VacationsFor returns every vacation period of an employee.
func (r *Records) VacationsFor(matricula string) []VacationPeriod {
	var out []VacationPeriod
	for _, v := range r.Vacations {
		if v.Matricula == matricula {
			out = append(out, v)
		}
	}
	return out
}

// =============================================================================
// COMPUTATION - Derived, one per employee per month
// =============================================================================

// Computation is the engine output for one employee. Immutable once built.
// Invariant: CompanyCost + EmployeeDiscount equals Total within one cent.
type Computation struct {
	Matricula string
	Name      string
	Role      string
	Sindicato string
	Estado    string

	EligibleDays     int
	DailyRate        decimal.Decimal
	Total            decimal.Decimal
	CompanyCost      decimal.Decimal
	EmployeeDiscount decimal.Decimal
}

// =============================================================================
// SOURCE - Where input tables come from
// =============================================================================

// Source abstracts the input directory so the engine and loader can be
// tested without touching the filesystem.
type Source interface {
	// List returns the logical names of the available tables
	// (workbook file names without extension, in production).
	List() ([]string, error)

	// Read loads one table by the name List returned.
	Read(name string) (*tabular.Table, error)
}
