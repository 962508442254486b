package voucher_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/voucher-engine/store/memory"
	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

// =============================================================================
// FIXTURES - Memory source mimicking a typical HR export
// =============================================================================

func activeTable(rows ...[]string) *tabular.Table {
	t := tabular.New(voucher.TableActive,
		"Matricula", "Nome", "Titulo do Cargo", "Empresa", "Sindicato", "Admissão", "Status")
	for _, r := range rows {
		t.AppendRow(r...)
	}
	return t
}

func vacationsTable(rows ...[]string) *tabular.Table {
	t := tabular.New(voucher.TableVacations,
		"Matricula", "Data Início", "Data Fim", "Dias de Férias")
	for _, r := range rows {
		t.AppendRow(r...)
	}
	return t
}

func terminationsTable(rows ...[]string) *tabular.Table {
	t := tabular.New(voucher.TableTerminations,
		"Matricula", "Data Demissão", "Comunicado de Desligamento")
	for _, r := range rows {
		t.AppendRow(r...)
	}
	return t
}

func sourceWith(t *testing.T, active, vacations, terminations *tabular.Table) *memory.Source {
	t.Helper()
	src := memory.New()
	src.Add("ATIVOS 08 2025", active)
	src.Add("FÉRIAS 08 2025", vacations) // accented name must still be found
	src.Add("DESLIGADOS 08 2025", terminations)
	return src
}

// =============================================================================
// HAPPY PATH
// =============================================================================

func TestLoad_DiscoversTablesByAccentInsensitiveHint(t *testing.T) {
	src := sourceWith(t,
		activeTable(
			[]string{"1001", "Ana Souza", "Analista", "ACME", "Sindicato dos Comerciários de SP", "2020-01-15", "Ativo"},
			[]string{"1002", "Bruno Lima", "Gerente", "ACME", "Sindicato dos Metalúrgicos - MG", "15/03/2021", ""},
		),
		vacationsTable(
			[]string{"1001", "2025-08-04", "2025-08-08", "5"},
		),
		terminationsTable(
			[]string{"1002", "2025-08-20", "OK"},
		),
	)

	rec, err := voucher.Load(src)
	require.NoError(t, err)

	require.Len(t, rec.Employees, 2)
	assert.Equal(t, "Ana Souza", rec.Employees[0].Name)
	assert.Equal(t, voucher.StatusActive, rec.Employees[0].Status)
	assert.Equal(t, time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC), rec.Employees[1].Admission)

	require.Len(t, rec.Vacations, 1)
	assert.Equal(t, 5, rec.Vacations[0].DayCount)

	require.Len(t, rec.Terminations, 1)
	assert.Equal(t, "1002", rec.Terminations[0].Matricula)

	// Raw sheets travel along under canonical names for the report.
	require.Contains(t, rec.Raw, voucher.TableActive)
	require.Contains(t, rec.Raw, voucher.TableVacations)
	require.Contains(t, rec.Raw, voucher.TableTerminations)
}

func TestLoad_StatusVariantsMarkTerminated(t *testing.T) {
	src := sourceWith(t,
		activeTable(
			[]string{"1001", "A", "Analista", "", "", "2020-01-01", "desligado"},
			[]string{"1002", "B", "Analista", "", "", "2020-01-01", "INATIVO"},
			[]string{"1003", "C", "Analista", "", "", "2020-01-01", "Ativo"},
		),
		vacationsTable(),
		terminationsTable(),
	)

	rec, err := voucher.Load(src)
	require.NoError(t, err)

	assert.Equal(t, voucher.StatusTerminated, rec.Employees[0].Status)
	assert.Equal(t, voucher.StatusTerminated, rec.Employees[1].Status)
	assert.Equal(t, voucher.StatusActive, rec.Employees[2].Status)
}

// =============================================================================
// FAILURE POLICY
// =============================================================================

func TestLoad_MissingWorkbookIsTableNotFound(t *testing.T) {
	src := memory.New()
	src.Add("ATIVOS", activeTable())
	src.Add("DESLIGADOS", terminationsTable())
	// no vacations workbook

	_, err := voucher.Load(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, tabular.ErrTableNotFound)
	assert.True(t, tabular.IsNotFound(err))
}

func TestLoad_SchemaErrorListsEveryMissingColumn(t *testing.T) {
	broken := tabular.New(voucher.TableActive, "Matricula", "Empresa")
	src := sourceWith(t, broken, vacationsTable(), terminationsTable())

	_, err := voucher.Load(src)
	require.Error(t, err)

	var schemaErr *tabular.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, voucher.TableActive, schemaErr.Table)
	assert.ElementsMatch(t,
		[]string{voucher.ColName, voucher.ColRole, voucher.ColAdmission},
		schemaErr.Missing)
	assert.True(t, tabular.IsInputError(err))
}

func TestLoad_BadDateCellNamesTableColumnAndRow(t *testing.T) {
	src := sourceWith(t,
		activeTable(
			[]string{"1001", "A", "Analista", "", "", "2020-01-01", ""},
			[]string{"1002", "B", "Analista", "", "", "not-a-date", ""},
		),
		vacationsTable(),
		terminationsTable(),
	)

	_, err := voucher.Load(src)
	require.Error(t, err)

	var typeErr *tabular.DataTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, voucher.TableActive, typeErr.Table)
	assert.Equal(t, voucher.ColAdmission, typeErr.Column)
	assert.Equal(t, 2, typeErr.Row) // 1-based, matching the sheet
	assert.Equal(t, "not-a-date", typeErr.Value)
}

func TestLoad_DuplicateMatriculaRejected(t *testing.T) {
	src := sourceWith(t,
		activeTable(
			[]string{"1001", "A", "Analista", "", "", "2020-01-01", ""},
			[]string{"1001", "A again", "Analista", "", "", "2020-01-01", ""},
		),
		vacationsTable(),
		terminationsTable(),
	)

	_, err := voucher.Load(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrSchema))
	assert.Contains(t, err.Error(), "1001")
}

func TestLoad_VacationSpanMismatchRejected(t *testing.T) {
	// 2025-08-04 .. 2025-08-08 is 5 days; the sheet claims 7.
	src := sourceWith(t,
		activeTable([]string{"1001", "A", "Analista", "", "", "2020-01-01", ""}),
		vacationsTable([]string{"1001", "2025-08-04", "2025-08-08", "7"}),
		terminationsTable(),
	)

	_, err := voucher.Load(src)
	require.Error(t, err)

	var typeErr *tabular.DataTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, voucher.ColVacDays, typeErr.Column)
}

func TestLoad_VacationEndBeforeStartRejected(t *testing.T) {
	src := sourceWith(t,
		activeTable([]string{"1001", "A", "Analista", "", "", "2020-01-01", ""}),
		vacationsTable([]string{"1001", "2025-08-08", "2025-08-04", "5"}),
		terminationsTable(),
	)

	_, err := voucher.Load(src)
	require.Error(t, err)

	var typeErr *tabular.DataTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, voucher.ColVacEnd, typeErr.Column)
}
