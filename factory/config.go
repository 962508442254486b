/*
Package factory provides JSON to Go rule-config conversion.

PURPOSE:
  Converts JSON rule definitions into voucher.RuleConfig values. Callers
  (CLI flags, HTTP bodies, agent tool arguments) carry the rule variant
  as JSON; the factory validates it and sets defaults so the core only
  ever sees a well-formed config.

JSON SCHEMA:
  {
    "rule": "integral",            // or "pro_rata"; default "integral"
    "daily_rate": "37.07",         // string or number; required
    "cutoff_day": 15,              // default 15
    "excluded_roles": ["ESTAGIARIO"]
  }

  Unknown fields are rejected: the option set is closed by design of the
  rule configuration, and a typo silently ignored would change payouts.

USAGE:
  cfg, err := factory.ParseRuleConfig(`{"rule":"integral","daily_rate":"37.07"}`)
  comps, err := voucher.Compute(rec, month, year, cfg)
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/voucher-engine/voucher"
)

// RuleConfigJSON is the wire form of a rule configuration.
type RuleConfigJSON struct {
	Rule          string      `json:"rule,omitempty"`
	DailyRate     json.Number `json:"daily_rate"`
	CutoffDay     int         `json:"cutoff_day,omitempty"`
	ExcludedRoles []string    `json:"excluded_roles,omitempty"`
}

// ParseRuleConfig converts a JSON rule definition into a validated
// voucher.RuleConfig with defaults applied.
func ParseRuleConfig(jsonStr string) (voucher.RuleConfig, error) {
	dec := json.NewDecoder(strings.NewReader(jsonStr))
	dec.DisallowUnknownFields()

	var rc RuleConfigJSON
	if err := dec.Decode(&rc); err != nil {
		return voucher.RuleConfig{}, fmt.Errorf("parsing rule config: %w", err)
	}
	return FromJSON(rc)
}

// FromJSON converts an already-decoded wire config.
func FromJSON(rc RuleConfigJSON) (voucher.RuleConfig, error) {
	if rc.DailyRate == "" {
		return voucher.RuleConfig{}, fmt.Errorf("rule config: daily_rate is required")
	}
	rate, err := decimal.NewFromString(rc.DailyRate.String())
	if err != nil {
		return voucher.RuleConfig{}, fmt.Errorf("rule config: invalid daily_rate %q", rc.DailyRate)
	}

	cfg := voucher.RuleConfig{
		Rule:          voucher.Rule(rc.Rule),
		DailyRate:     rate,
		CutoffDay:     rc.CutoffDay,
		ExcludedRoles: rc.ExcludedRoles,
	}
	if cfg.Rule == "" {
		cfg.Rule = voucher.RuleIntegral
	}
	if cfg.CutoffDay == 0 {
		cfg.CutoffDay = voucher.DefaultCutoffDay
	}
	if err := cfg.Validate(); err != nil {
		return voucher.RuleConfig{}, fmt.Errorf("rule config: %w", err)
	}
	return cfg, nil
}

// ToJSON converts a RuleConfig back to its wire form.
func ToJSON(cfg voucher.RuleConfig) RuleConfigJSON {
	return RuleConfigJSON{
		Rule:          string(cfg.Rule),
		DailyRate:     json.Number(cfg.DailyRate.String()),
		CutoffDay:     cfg.CutoffDay,
		ExcludedRoles: cfg.ExcludedRoles,
	}
}
