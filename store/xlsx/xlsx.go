/*
Package xlsx provides spreadsheet-backed I/O for the voucher pipeline.

PURPOSE:
  Implements the storage edges of one pipeline run: reading the input
  workbooks and the reference template, writing the output report, and
  re-reading a written report for validation.

INTERFACES IMPLEMENTED:
  voucher.Source: Dir reads input tables from a directory of .xlsx files

FILE HANDLING:
  Workbook handles are scoped to each call and released on every exit
  path, including failure. Nothing here retries: a failed read or write
  aborts the run and the caller decides what to do.

SHEET SELECTION:
  Input workbooks contribute their first sheet. Template lookup accepts
  a name hint ("VR Mensal" matches "VR Mensal 05.2025"), matched case-
  and accent-insensitively, falling back to the first sheet.

USAGE:
  src, err := xlsx.NewDir("./entradas")
  records, err := voucher.Load(src)
  ...
  err = xlsx.WriteReport("VR_MENSAL_08_2025.xlsx", rep)

SEE ALSO:
  - store/memory: In-memory Source for tests
  - report: The Report type written and re-read here
*/
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/warp/voucher-engine/report"
	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

const fileExt = ".xlsx"

// =============================================================================
// DIR - voucher.Source over a directory of workbooks
// =============================================================================

type Dir struct {
	path string
}

var _ voucher.Source = (*Dir)(nil)

// NewDir opens a directory of input workbooks. A missing directory is a
// NotFoundError carrying the path.
func NewDir(path string) (*Dir, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, &tabular.NotFoundError{Path: path}
	}
	return &Dir{path: path}, nil
}

// List returns the workbook names (without extension) in sorted order.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("reading input dir %s: %w", d.path, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	return names, nil
}

// Read loads the first sheet of one workbook.
func (d *Dir) Read(name string) (*tabular.Table, error) {
	f, err := openWorkbook(filepath.Join(d.path, name+fileExt))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", tabular.ErrTableNotFound, name)
	}
	return readSheet(f, sheets[0], name)
}

// =============================================================================
// TEMPLATE AND REPORT I/O
// =============================================================================

// ReadSheet reads one sheet of a workbook by name hint, falling back to
// the first sheet. Used for the reference template.
func ReadSheet(path, nameHint string) (*tabular.Table, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", tabular.ErrTableNotFound, path)
	}
	chosen := sheets[0]
	hint := tabular.NormalizeColumn(nameHint)
	for _, s := range sheets {
		if strings.Contains(tabular.NormalizeColumn(s), hint) {
			chosen = s
			break
		}
	}
	return readSheet(f, chosen, chosen)
}

// WriteReport writes every report sheet, in order, to one workbook.
func WriteReport(path string, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range rep.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("writing report %s: %w", path, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("writing report %s: %w", path, err)
		}
		if err := writeSheet(f, sheet); err != nil {
			return fmt.Errorf("writing report %s: %w", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}

// ReadReport reloads a written report, preserving sheet order, for
// re-validation or reading the persisted Validações sheet.
func ReadReport(path string) (*report.Report, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep := &report.Report{}
	for _, name := range f.GetSheetList() {
		t, err := readSheet(f, name, name)
		if err != nil {
			return nil, err
		}
		rep.Sheets = append(rep.Sheets, t)
	}
	return rep, nil
}

// =============================================================================
// WORKBOOK HELPERS
// =============================================================================

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &tabular.NotFoundError{Path: path}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return f, nil
}

// readSheet converts one sheet into a table. The first row is the
// header; rows shorter than the header are padded.
func readSheet(f *excelize.File, sheet, tableName string) (*tabular.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return tabular.NewRaw(tableName), nil
	}

	t := tabular.NewRaw(tableName, rows[0]...)
	for _, row := range rows[1:] {
		t.AppendRow(row...)
	}
	return t, nil
}

func writeSheet(f *excelize.File, sheet *tabular.Table) error {
	for ci, col := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, col); err != nil {
			return err
		}
	}
	for ri, row := range sheet.Rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
