/*
main.go - One-shot CLI for the voucher pipeline

PURPOSE:
  Generates (and optionally validates) one monthly report from the
  command line. Like the HTTP server, this is a thin caller: every
  pipeline input arrives as an explicit flag.

COMMAND-LINE FLAGS:
  -inputs     Directory with the input workbooks (default: entradas, env VR_INPUTS)
  -month      Target month 1-12 (required)
  -year       Target year (required)
  -rule       Rule variant: integral | pro_rata (default: integral)
  -rate       Daily rate, e.g. 37.07 (default: env VR_DAILY_RATE)
  -cutoff     Termination cutoff day (default: 15)
  -out        Output workbook name (default: VR_MENSAL_<MM>_<YYYY>.xlsx)
  -template   Reference template workbook (optional)

EXAMPLES:
  ./vr -inputs=entradas -month=8 -year=2025 -rate=37.07 \
       -template="entradas/VR Mensal 05.2025.xlsx"
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/voucher-engine/pipeline"
	"github.com/warp/voucher-engine/report"
	"github.com/warp/voucher-engine/voucher"
)

func main() {
	_ = godotenv.Load()

	defaultInputs := os.Getenv("VR_INPUTS")
	if defaultInputs == "" {
		defaultInputs = "entradas"
	}

	inputs := flag.String("inputs", defaultInputs, "directory with input workbooks")
	month := flag.Int("month", 0, "target month (1-12)")
	year := flag.Int("year", 0, "target year")
	rule := flag.String("rule", string(voucher.RuleIntegral), "rule variant: integral | pro_rata")
	rate := flag.String("rate", os.Getenv("VR_DAILY_RATE"), "daily rate, e.g. 37.07")
	cutoff := flag.Int("cutoff", voucher.DefaultCutoffDay, "termination cutoff day")
	out := flag.String("out", "", "output workbook name")
	template := flag.String("template", "", "reference template workbook")
	flag.Parse()

	if *month == 0 || *year == 0 || *rate == "" {
		fmt.Fprintln(os.Stderr, "usage: vr -inputs=DIR -month=M -year=Y -rate=RATE [-rule=integral|pro_rata] [-template=FILE]")
		os.Exit(2)
	}

	dailyRate, err := decimal.NewFromString(*rate)
	if err != nil {
		fail("invalid -rate %q: %v", *rate, err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fail("failed to build logger: %v", err)
	}
	defer logger.Sync()

	res, err := pipeline.New(logger).Generate(pipeline.GenerateParams{
		InputsDir:    *inputs,
		Month:        time.Month(*month),
		Year:         *year,
		OutputName:   *out,
		TemplatePath: *template,
		Config: voucher.RuleConfig{
			Rule:      voucher.Rule(*rule),
			DailyRate: dailyRate,
			CutoffDay: *cutoff,
		},
	})
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("report: %s\n", res.OutputPath)
	fmt.Printf("rows: %d  sindicatos: %d\n", res.Metrics.Rows, res.Metrics.Sindicatos)
	for col, sum := range res.Metrics.Sums {
		fmt.Printf("  sum %-22s %s\n", col, sum)
	}
	printValidation(res.Validation)

	if res.Validation.OverallStatus == report.StatusFail {
		os.Exit(1)
	}
}

func printValidation(vr *report.ValidationReport) {
	fmt.Printf("validation: %s\n", vr.OverallStatus)
	if len(vr.MissingColumns) > 0 {
		fmt.Printf("  missing columns: %v\n", vr.MissingColumns)
	}
	if len(vr.ExtraColumns) > 0 {
		fmt.Printf("  extra columns: %v\n", vr.ExtraColumns)
	}
	if len(vr.SplitViolations) > 0 {
		fmt.Printf("  80/20 violations: %v\n", vr.SplitViolations)
	}
	if vr.AggregateDrift {
		fmt.Println("  80/20 aggregate drift detected")
	}
	if len(vr.NegativeValueRows) > 0 {
		fmt.Printf("  negative values: %v\n", vr.NegativeValueRows)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
