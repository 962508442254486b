package xlsx_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/voucher-engine/report"
	"github.com/warp/voucher-engine/store/xlsx"
	"github.com/warp/voucher-engine/tabular"
)

// writeWorkbook creates a single-sheet workbook on disk for tests.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// =============================================================================
// DIR SOURCE
// =============================================================================

func TestDir_ListAndRead(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "ATIVOS 08 2025.xlsx"), "Plan1", [][]string{
		{"Matricula", "Nome"},
		{"1001", "Ana"},
	})
	writeWorkbook(t, filepath.Join(dir, "DESLIGADOS.xlsx"), "Plan1", [][]string{
		{"Matricula", "Data Demissão"},
	})

	src, err := xlsx.NewDir(dir)
	require.NoError(t, err)

	names, err := src.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"ATIVOS 08 2025", "DESLIGADOS"}, names)

	table, err := src.Read("ATIVOS 08 2025")
	require.NoError(t, err)
	assert.Equal(t, []string{"Matricula", "Nome"}, table.Columns)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, "Ana", table.Cell(0, "NOME"))
}

func TestNewDir_MissingDirectoryIsNotFound(t *testing.T) {
	_, err := xlsx.NewDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, tabular.IsNotFound(err))
}

func TestDir_ReadMissingWorkbookIsNotFound(t *testing.T) {
	src, err := xlsx.NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = src.Read("ATIVOS")
	require.Error(t, err)
	assert.True(t, tabular.IsNotFound(err))
}

// =============================================================================
// TEMPLATE SHEET LOOKUP
// =============================================================================

func TestReadSheet_NameHintMatchesAccentInsensitively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Notas"))
	_, err := f.NewSheet("VR Mensal 05.2025")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("VR Mensal 05.2025", "A1", "MATRICULA"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := xlsx.ReadSheet(path, "VR Mensal")
	require.NoError(t, err)
	assert.Equal(t, []string{"MATRICULA"}, table.Columns)
}

func TestReadSheet_FallsBackToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	writeWorkbook(t, path, "Plan1", [][]string{{"MATRICULA", "TOTAL"}})

	table, err := xlsx.ReadSheet(path, "VR Mensal")
	require.NoError(t, err)
	assert.Equal(t, []string{"MATRICULA", "TOTAL"}, table.Columns)
}

// =============================================================================
// REPORT ROUND TRIP
// =============================================================================

func TestWriteReport_ReadReportRoundTrip(t *testing.T) {
	computed := tabular.NewRaw(report.SheetComputed, "MATRICULA", "TOTAL", "Custo empresa", "Desconto profissional")
	computed.AppendRow("1001", "1112.10", "889.68", "222.42")
	validations := tabular.NewRaw(report.SheetValidations, "Check", "Detalhe")
	validations.AppendRow("Status geral", "OK")

	rep := &report.Report{
		Month:  time.August,
		Year:   2025,
		Sheets: []*tabular.Table{computed, validations},
	}

	path := filepath.Join(t.TempDir(), report.DefaultOutputName(time.August, 2025))
	require.NoError(t, xlsx.WriteReport(path, rep))

	back, err := xlsx.ReadReport(path)
	require.NoError(t, err)

	require.Len(t, back.Sheets, 2)
	assert.Equal(t, report.SheetComputed, back.Sheets[0].Name)
	assert.Equal(t, report.SheetValidations, back.Sheets[1].Name)

	got := back.Sheet(report.SheetComputed)
	require.NotNil(t, got)
	assert.Equal(t, computed.Columns, got.Columns)
	assert.Equal(t, computed.Rows, got.Rows)

	vals := back.Sheet(report.SheetValidations)
	require.NotNil(t, vals)
	assert.Equal(t, "OK", vals.Cell(0, "Detalhe"))
}
