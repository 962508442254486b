/*
engine.go - Eligibility and cost calculation

PURPOSE:
  Pure function of its inputs: given one run's records, a target month
  and a rule configuration, produce one Computation per eligible
  employee. No I/O, no shared state, no side effects.

ELIGIBILITY WINDOW:
  [max(month start, admission date), month end], further truncated to
  the termination date when the employee left after the cutoff day.
  Termination on or before the cutoff removes the employee from the
  month entirely; termination before the month start does too.

VACATIONS:
  Vacation days overlapping the window are subtracted, clamped at zero.

MONEY:
  total            = eligible days x daily rate   (pro-rata may weight it)
  company cost     = total x 0.80, rounded half-up to 2 decimals
  employee discount = total x 0.20, rounded half-up to 2 decimals
  Rounding applies after multiplication, never to the rate or the day
  count. The validator's one-cent tolerance depends on this ordering.
*/
package voucher

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	companyShare  = decimal.NewFromFloat(0.80)
	employeeShare = decimal.NewFromFloat(0.20)
)

// Compute derives the monthly computations for every eligible employee,
// sorted by matricula. Employees removed by status, role exclusion or
// the termination cutoff are omitted from the result.
func Compute(rec *Records, month time.Month, year int, cfg RuleConfig) ([]Computation, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	comps := make([]Computation, 0, len(rec.Employees))
	for _, emp := range rec.Employees {
		if emp.Status != StatusActive || cfg.excludesRole(emp.Role) {
			continue
		}
		if emp.Admission.After(monthEnd) {
			continue
		}

		winStart := monthStart
		if emp.Admission.After(winStart) {
			winStart = emp.Admission
		}
		winEnd := monthEnd

		if term, ok := rec.TerminationFor(emp.Matricula); ok {
			if term.Date.Before(monthStart) {
				continue
			}
			if !term.Date.After(monthEnd) {
				// Cutoff day itself excludes: leaving on the 15th with a
				// cutoff of 15 removes the month.
				if term.Date.Day() <= cfg.CutoffDay {
					continue
				}
				winEnd = term.Date
			}
		}
		if winStart.After(winEnd) {
			continue
		}

		windowDays := daysInclusive(winStart, winEnd)
		eligible := windowDays
		for _, v := range rec.VacationsFor(emp.Matricula) {
			eligible -= overlapDays(v.Start, v.End, winStart, winEnd)
		}
		if eligible < 0 {
			eligible = 0
		}

		total := cfg.DailyRate.Mul(decimal.NewFromInt(int64(eligible)))
		if cfg.Rule == RuleProRata && windowDays < daysInMonth {
			// Pro-rata weights partial months by worked fraction.
			weight := decimal.NewFromInt(int64(windowDays)).
				Div(decimal.NewFromInt(int64(daysInMonth)))
			total = total.Mul(weight)
		}
		total = total.Round(2)

		comps = append(comps, Computation{
			Matricula:        emp.Matricula,
			Name:             emp.Name,
			Role:             emp.Role,
			Sindicato:        emp.Sindicato,
			Estado:           InferEstado(emp.Sindicato),
			EligibleDays:     eligible,
			DailyRate:        cfg.DailyRate,
			Total:            total,
			CompanyCost:      total.Mul(companyShare).Round(2),
			EmployeeDiscount: total.Mul(employeeShare).Round(2),
		})
	}

	sort.Slice(comps, func(i, j int) bool { return comps[i].Matricula < comps[j].Matricula })
	return comps, nil
}

// overlapDays counts the days of [aStart, aEnd] that fall inside
// [bStart, bEnd], both ranges inclusive.
func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if start.After(end) {
		return 0
	}
	return daysInclusive(start, end)
}
