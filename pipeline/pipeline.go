/*
Package pipeline wires the voucher computation end to end.

PURPOSE:
  Exposes the four operations the calling layer (CLI, HTTP, or any
  orchestrator) invokes. Each run is a synchronous batch: load -> compute
  -> assemble -> validate -> write, strictly in sequence. Runs share no
  mutable state, so concurrent runs against distinct paths are safe.

OPERATIONS:
  Generate            Build, validate and write the monthly report
  Validate            Re-check a written report against a template
  ListRequiredColumns Schema discovery for input producers
  ReadValidations     Read the persisted Validações sheet back

ERROR POLICY:
  Loading and writing failures abort the run with path/table/column/row
  context. Validation findings never abort: they come back as data in
  the ValidationReport even when every check passes.
*/
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/warp/voucher-engine/report"
	"github.com/warp/voucher-engine/store/xlsx"
	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

// Pipeline runs voucher computations. Safe for concurrent use: it holds
// no per-run state.
type Pipeline struct {
	log *zap.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{log: logger}
}

// GenerateParams are the explicit inputs of one run. The core receives
// configuration only through this struct, never from the environment.
type GenerateParams struct {
	InputsDir    string
	Month        time.Month
	Year         int
	OutputName   string // default: VR_MENSAL_<MM>_<YYYY>.xlsx
	TemplatePath string // optional; drives column order and the structural check
	Config       voucher.RuleConfig
}

// Result is what one Generate run hands back to the calling layer.
type Result struct {
	OutputPath string
	Validation *report.ValidationReport
	Metrics    report.Metrics
}

// Generate runs the full pipeline and returns the output path together
// with the validation outcome written into the report.
func (p *Pipeline) Generate(params GenerateParams) (*Result, error) {
	if params.Month < time.January || params.Month > time.December {
		return nil, fmt.Errorf("month out of range: %d", params.Month)
	}
	if params.Year < 2000 || params.Year > 2100 {
		return nil, fmt.Errorf("year out of range: %d", params.Year)
	}

	src, err := xlsx.NewDir(params.InputsDir)
	if err != nil {
		return nil, err
	}
	rec, err := voucher.Load(src)
	if err != nil {
		return nil, err
	}

	var template *tabular.Table
	if params.TemplatePath != "" {
		if template, err = xlsx.ReadSheet(params.TemplatePath, report.SheetComputed); err != nil {
			return nil, err
		}
	}

	comps, err := voucher.Compute(rec, params.Month, params.Year, params.Config)
	if err != nil {
		return nil, err
	}

	rep := report.Assemble(comps, rec, params.Month, params.Year, template)
	vr, err := report.Validate(rep, template)
	if err != nil {
		return nil, err
	}

	out := params.OutputName
	if out == "" {
		out = report.DefaultOutputName(params.Month, params.Year)
	} else if !strings.HasSuffix(strings.ToLower(out), ".xlsx") {
		out += ".xlsx"
	}
	if err := xlsx.WriteReport(out, rep); err != nil {
		return nil, err
	}

	p.log.Info("report generated",
		zap.String("path", out),
		zap.Int("employees", len(comps)),
		zap.Int("month", int(params.Month)),
		zap.Int("year", params.Year),
		zap.String("rule", string(params.Config.Rule)),
		zap.String("status", string(vr.OverallStatus)),
	)
	return &Result{OutputPath: out, Validation: vr, Metrics: report.Summarize(rep)}, nil
}

// Validate re-reads a written report, re-derives every check against the
// template, and rewrites the Validações sheet in place.
func (p *Pipeline) Validate(outputPath, templatePath string) (*report.ValidationReport, error) {
	rep, err := xlsx.ReadReport(outputPath)
	if err != nil {
		return nil, err
	}
	template, err := xlsx.ReadSheet(templatePath, report.SheetComputed)
	if err != nil {
		return nil, err
	}

	vr, err := report.Validate(rep, template)
	if err != nil {
		return nil, err
	}
	if err := xlsx.WriteReport(outputPath, rep); err != nil {
		return nil, err
	}

	p.log.Info("report validated",
		zap.String("path", outputPath),
		zap.String("status", string(vr.OverallStatus)),
		zap.Int("split_violations", len(vr.SplitViolations)),
	)
	return vr, nil
}

// ListRequiredColumns returns the required columns of one input table.
func (p *Pipeline) ListRequiredColumns(table string) ([]string, error) {
	s, ok := tabular.LookupSchema(table)
	if !ok {
		return nil, fmt.Errorf("%w: unknown table %q", tabular.ErrTableNotFound, table)
	}
	return s.Required, nil
}

// ReadValidations parses the persisted Validações sheet of a written
// report without recomputation.
func (p *Pipeline) ReadValidations(outputPath string) (*report.ValidationReport, error) {
	rep, err := xlsx.ReadReport(outputPath)
	if err != nil {
		return nil, err
	}
	return report.ParseValidations(rep.Sheet(report.SheetValidations))
}
