/*
policy.go - Rule configuration for the eligibility & cost engine

PURPOSE:
  The formula is configuration, not code. A RuleConfig selects how
  partial months are valued (integral vs pro-rata), where the
  termination cutoff sits, which roles are excluded, and what a day
  is worth.

CUTOFF POLICY:
  Termination on or before CutoffDay removes the employee from the
  month entirely; termination after it pro-rates through the
  termination date. The cutoff day itself is exclusion side:
  leaving on day 15 with CutoffDay 15 removes the month.

RULES:
  RuleIntegral: every eligible day is worth the full daily rate.
  RuleProRata:  partial months (late admission or post-cutoff
                termination) weight the total by eligible-window
                length over calendar days in month.

EXAMPLE:
  cfg := voucher.StandardRuleConfig(decimal.RequireFromString("37.07"))
  comps, err := voucher.Compute(records, time.August, 2025, cfg)
*/
package voucher

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/voucher-engine/tabular"
)

// Rule selects the partial-month valuation formula.
type Rule string

const (
	RuleIntegral Rule = "integral"
	RuleProRata  Rule = "pro_rata"
)

// DefaultCutoffDay is the mid-month termination cutoff.
const DefaultCutoffDay = 15

// RuleConfig carries every knob the engine accepts. The core receives
// configuration exclusively through this value, never from the process
// environment.
type RuleConfig struct {
	Rule          Rule
	DailyRate     decimal.Decimal
	CutoffDay     int
	ExcludedRoles []string
}

// StandardRuleConfig returns the common setup: integral rule, mid-month
// cutoff, no role exclusions.
func StandardRuleConfig(dailyRate decimal.Decimal) RuleConfig {
	return RuleConfig{
		Rule:      RuleIntegral,
		DailyRate: dailyRate,
		CutoffDay: DefaultCutoffDay,
	}
}

// Validate rejects configurations the engine cannot honor.
func (c RuleConfig) Validate() error {
	switch c.Rule {
	case RuleIntegral, RuleProRata, "":
	default:
		return fmt.Errorf("unknown rule %q (recognized: %s, %s)", c.Rule, RuleIntegral, RuleProRata)
	}
	if c.DailyRate.IsNegative() {
		return fmt.Errorf("daily rate must not be negative, got %s", c.DailyRate)
	}
	if c.CutoffDay < 0 || c.CutoffDay > 28 {
		return fmt.Errorf("cutoff day must be within 0..28, got %d", c.CutoffDay)
	}
	return nil
}

// withDefaults fills the blanks: integral rule, mid-month cutoff.
func (c RuleConfig) withDefaults() RuleConfig {
	if c.Rule == "" {
		c.Rule = RuleIntegral
	}
	if c.CutoffDay == 0 {
		c.CutoffDay = DefaultCutoffDay
	}
	return c
}

// excludesRole reports whether a role matches the exclusion list.
// Matching is canonical (case- and accent-insensitive).
func (c RuleConfig) excludesRole(role string) bool {
	want := tabular.NormalizeValue(role)
	for _, r := range c.ExcludedRoles {
		if tabular.NormalizeValue(r) == want {
			return true
		}
	}
	return false
}
