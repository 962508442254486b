package tabular_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/voucher-engine/tabular"
)

// =============================================================================
// NORMALIZATION
// =============================================================================

func TestNormalizeColumn_StripsAccentsCaseAndWhitespace(t *testing.T) {
	cases := map[string]string{
		"Data Demissão":    "DATA_DEMISSAO",
		"  matricula ":     "MATRICULA",
		"TÍTULO DO  CARGO": "TITULO_DO_CARGO",
		"Férias":           "FERIAS",
		"Custo empresa":    "CUSTO_EMPRESA",
	}
	for in, want := range cases {
		if got := tabular.NormalizeColumn(in); got != want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeValue_CollapsesToSingleSpaces(t *testing.T) {
	got := tabular.NormalizeValue("  Sindicato dos   Comerciários de SÃO paulo ")
	want := "SINDICATO DOS COMERCIARIOS DE SAO PAULO"
	if got != want {
		t.Errorf("NormalizeValue = %q, want %q", got, want)
	}
}

func TestTable_ColumnLookupIsCanonical(t *testing.T) {
	// GIVEN: A table created from raw, accented headers
	tbl := tabular.New("ATIVOS", "Matrícula", "Data Admissão")
	tbl.AppendRow("1001", "2024-01-15")

	// THEN: Any spelling variant resolves to the same column
	if !tbl.HasColumn("MATRICULA") || !tbl.HasColumn("matricula") {
		t.Fatal("expected canonical column lookup to succeed")
	}
	if got := tbl.Cell(0, "data admissao"); got != "2024-01-15" {
		t.Errorf("Cell = %q, want 2024-01-15", got)
	}
}

func TestTable_CloneDoesNotAlias(t *testing.T) {
	tbl := tabular.New("FERIAS", "MATRICULA", "DIAS_DE_FERIAS")
	tbl.AppendRow("1001", "5")

	clone := tbl.Clone()
	clone.SetCell(0, "DIAS_DE_FERIAS", "10")

	if got := tbl.Cell(0, "DIAS_DE_FERIAS"); got != "5" {
		t.Errorf("original mutated through clone: got %q", got)
	}
}

// =============================================================================
// COERCION
// =============================================================================

func TestParseDate_AcceptsDayFirstAndISO(t *testing.T) {
	want := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-08-20", "20/08/2025", "20/08/2025 00:00:00"} {
		got, err := tabular.ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_RejectsGarbage(t *testing.T) {
	if _, err := tabular.ParseDate("not a date"); !errors.Is(err, tabular.ErrDataType) {
		t.Errorf("expected ErrDataType, got %v", err)
	}
}

func TestParseDecimal_AcceptsBothSeparators(t *testing.T) {
	for _, in := range []string{"1234.56", "1234,56", "1.234,56", "R$ 1.234,56"} {
		d, err := tabular.ParseDecimal(in)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", in, err)
		}
		if d.StringFixed(2) != "1234.56" {
			t.Errorf("ParseDecimal(%q) = %s, want 1234.56", in, d.StringFixed(2))
		}
	}
}

func TestParseInt_AcceptsWholeDecimals(t *testing.T) {
	n, err := tabular.ParseInt("5.0")
	if err != nil || n != 5 {
		t.Errorf("ParseInt(5.0) = %d, %v; want 5, nil", n, err)
	}
	if _, err := tabular.ParseInt("5.5"); !errors.Is(err, tabular.ErrDataType) {
		t.Errorf("expected ErrDataType for fractional integer, got %v", err)
	}
}

// =============================================================================
// SCHEMA REGISTRY
// =============================================================================

func TestSchema_MissingFromListsAllGaps(t *testing.T) {
	s := tabular.Schema{
		Table:    "TEST_TABLE",
		Required: []string{"MATRICULA", "DATA_DEMISSAO", "COMUNICADO"},
	}
	tbl := tabular.New("TEST_TABLE", "MATRICULA")

	missing := s.MissingFrom(tbl)
	if len(missing) != 2 || missing[0] != "DATA_DEMISSAO" || missing[1] != "COMUNICADO" {
		t.Errorf("MissingFrom = %v, want [DATA_DEMISSAO COMUNICADO]", missing)
	}
}

func TestSchemaRegistry_LookupIsCanonical(t *testing.T) {
	tabular.RegisterSchema(tabular.Schema{Table: "REGISTRY_PROBE", Required: []string{"A"}})

	if _, ok := tabular.LookupSchema("registry probe"); !ok {
		t.Error("expected canonical registry lookup to find the schema")
	}
	if _, ok := tabular.LookupSchema("unknown table"); ok {
		t.Error("expected unknown table lookup to fail")
	}
}
