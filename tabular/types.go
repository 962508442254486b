/*
Package tabular provides the domain-agnostic table layer.

PURPOSE:
  Everything in the voucher pipeline moves through tables: the three input
  sheets, the reference template, the computed report sheet, and the
  validation summary. This package owns the table model plus the plumbing
  every consumer needs: column-name normalization, typed cell coercion,
  and a registry of table schemas.

KEY CONCEPTS IN THIS FILE (types.go):
  - Table: A named sheet with ordered columns and string-celled rows
  - Cells are stored as strings; coercion to dates/decimals is explicit
    and reports the offending column and row on failure (see coerce.go)

DESIGN PRINCIPLES:
  1. Canonical names: column lookup always goes through NormalizeColumn,
     so "Data Demissão", "DATA_DEMISSAO" and "data demissao " are the
     same column
  2. Order matters: column and row order are preserved; report layout and
     determinism depend on it
  3. Strings at the boundary: spreadsheet cells arrive as text, so the
     table keeps text and the pipeline coerces where types are needed

SEE ALSO:
  - normalize.go: Column/value normalization rules
  - coerce.go: Typed cell parsing
  - schema.go: Required/optional column registry
  - errors.go: Error taxonomy shared by the pipeline
*/
package tabular

// =============================================================================
// TABLE - Named sheet with ordered columns and rows
// =============================================================================

type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// New creates an empty table. Column names are normalized to their
// canonical form and order is preserved.
func New(name string, columns ...string) *Table {
	canonical := make([]string, len(columns))
	for i, c := range columns {
		canonical[i] = NormalizeColumn(c)
	}
	return &Table{Name: name, Columns: canonical}
}

// NewRaw creates a table keeping column names exactly as given.
// Used for template and report sheets where display names (e.g.
// "Custo empresa") must survive a round trip to disk.
func NewRaw(name string, columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// ColumnIndex returns the position of a column, or -1 when absent.
// Matching is canonical: accents, case and stray whitespace are ignored.
func (t *Table) ColumnIndex(name string) int {
	want := NormalizeColumn(name)
	for i, c := range t.Columns {
		if NormalizeColumn(c) == want {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table defines the column.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// AppendRow adds a row, padding or truncating to the column count.
func (t *Table) AppendRow(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Cell returns the value at (row, column), or "" when either is out of
// range. Row indexes are zero-based and exclude the header.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	i := t.ColumnIndex(column)
	if i < 0 || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// SetCell overwrites the value at (row, column). Out-of-range writes are
// ignored; callers build tables through AppendRow first.
func (t *Table) SetCell(row int, column, value string) {
	if row < 0 || row >= len(t.Rows) {
		return
	}
	i := t.ColumnIndex(column)
	if i < 0 || i >= len(t.Rows[row]) {
		return
	}
	t.Rows[row][i] = value
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int { return len(t.Rows) }

// Column returns all values of one column in row order.
// Returns nil when the column is absent.
func (t *Table) Column(name string) []string {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// Clone returns a deep copy. Raw input sheets are carried into the report
// verbatim, and validation must not alias the sheets it inspects.
func (t *Table) Clone() *Table {
	c := &Table{Name: t.Name, Columns: make([]string, len(t.Columns))}
	copy(c.Columns, t.Columns)
	c.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		c.Rows[i] = make([]string, len(row))
		copy(c.Rows[i], row)
	}
	return c
}
