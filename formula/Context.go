package formula

import (
	"errors"
	"fmt"
	"strings"

	"vergoReports/contracts"
)

var ColumnLettersError = errors.New("invalid column letters")

// Context binds named column references to sheet data. It is built
// fresh for every evaluation call and never mutated afterwards, so
// concurrent evaluations against the same context are safe.
type Context struct {
	sheet       *contracts.Sheet
	sheets      map[string]*contracts.Sheet
	columns     []contracts.Column
	labelToKey  map[string]string
	columnKeys  map[string]contracts.Column
	identityKey string
}

// NewContext builds a named-reference context. sheets is a flat
// registry keyed by both sheet id and label; sheetId selects the
// primary sheet unqualified references resolve against. identityKey,
// when set, names the column used to align rows across sheets.
func NewContext(sheetId string, sheets []contracts.Sheet, columns []contracts.Column, identityKey string) *Context {
	registry := make(map[string]*contracts.Sheet, len(sheets)*2)
	for i := range sheets {
		sheet := &sheets[i]
		registry[sheet.Id] = sheet
		if sheet.Label != "" {
			registry[sheet.Label] = sheet
		}
	}

	labelToKey := make(map[string]string, len(columns))
	columnKeys := make(map[string]contracts.Column, len(columns))
	for _, column := range columns {
		if _, ok := labelToKey[column.Label]; !ok {
			labelToKey[column.Label] = column.Key
		}
		columnKeys[column.Key] = column
	}

	return &Context{
		sheet:       registry[sheetId],
		sheets:      registry,
		columns:     columns,
		labelToKey:  labelToKey,
		columnKeys:  columnKeys,
		identityKey: identityKey,
	}
}

// ResolveKey maps a reference name to a column key: exact label match
// first, column key as fallback.
func (c *Context) ResolveKey(name string) (string, bool) {
	if key, ok := c.labelToKey[name]; ok {
		return key, true
	}
	if _, ok := c.columnKeys[name]; ok {
		return name, true
	}
	return "", false
}

// Column returns the descriptor for a column key.
func (c *Context) Column(key string) (contracts.Column, bool) {
	column, ok := c.columnKeys[key]
	return column, ok
}

// ColumnValues returns every coercible numeric value of the referenced
// column, in row order. Nulls and non-numeric values are dropped.
func (c *Context) ColumnValues(ref *ColumnRef) []float64 {
	sheet := c.sheet
	if ref.Sheet != "" {
		sheet = c.sheets[ref.Sheet]
	}
	if sheet == nil {
		return nil
	}

	key, ok := c.ResolveKey(ref.Name)
	if !ok {
		return nil
	}

	values := make([]float64, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if value, ok := CoerceNumeric(row[key]); ok {
			values = append(values, value)
		}
	}
	return values
}

// ValuesGetter resolves reference names to numeric values. A nil entry
// means the name could not be resolved.
type ValuesGetter func(names []string) []*float64

// NewValuesGetterChain combines two getters: names the first getter
// leaves unresolved are retried against the second.
func NewValuesGetterChain(first ValuesGetter, second ValuesGetter) ValuesGetter {
	if second == nil {
		return first
	}

	if first == nil {
		return second
	}

	return func(names []string) []*float64 {
		result := first(names)

		secondNames := make([]string, 0, len(names))
		for index, value := range result {
			if value == nil {
				secondNames = append(secondNames, names[index])
			}
		}

		if len(secondNames) != 0 {
			secondResult := second(secondNames)

			searchIndex := 0
			for index, value := range result {
				if value == nil {
					result[index] = secondResult[searchIndex]
					searchIndex++
				}
			}
		}

		return result
	}
}

// RowGetter resolves unqualified names against a single row record.
func (c *Context) RowGetter(cursor RowCursor) ValuesGetter {
	return func(names []string) []*float64 {
		values := make([]*float64, len(names))
		for index, name := range names {
			if strings.Contains(name, ".") {
				continue
			}
			key, ok := c.ResolveKey(name)
			if !ok {
				continue
			}
			if value, ok := CoerceNumeric(cursor.Row[key]); ok {
				values[index] = &value
			}
		}
		return values
	}
}

// CrossSheetGetter resolves `Sheet.Column` qualified names. The row of
// the target sheet is picked by identity-key match when the context
// has one, by the cursor's row index otherwise.
func (c *Context) CrossSheetGetter(cursor RowCursor) ValuesGetter {
	return func(names []string) []*float64 {
		values := make([]*float64, len(names))
		for index, name := range names {
			sheetLabel, columnName, found := strings.Cut(name, ".")
			if !found {
				continue
			}

			sheet := c.sheets[sheetLabel]
			if sheet == nil {
				continue
			}

			key, ok := c.ResolveKey(columnName)
			if !ok {
				continue
			}

			row := c.matchRow(sheet, cursor)
			if row == nil {
				continue
			}

			if value, ok := CoerceNumeric(row[key]); ok {
				values[index] = &value
			}
		}
		return values
	}
}

func (c *Context) matchRow(sheet *contracts.Sheet, cursor RowCursor) contracts.Row {
	if c.identityKey != "" {
		identity := cursor.Row[c.identityKey]
		if identity != nil {
			for _, row := range sheet.Rows {
				if row[c.identityKey] == identity {
					return row
				}
			}
		}
		return nil
	}

	if cursor.Index >= 0 && cursor.Index < len(sheet.Rows) {
		return sheet.Rows[cursor.Index]
	}
	return nil
}

// CellContext maps (column, row) pairs to the raw values of a
// rectangular grid for A1-style formulas.
type CellContext struct {
	columns []contracts.Column
	grid    [][]any
}

// NewCellContext builds a grid context from the sheet identified by
// sheetId. Column order follows the descriptor order.
func NewCellContext(sheetId string, sheets []contracts.Sheet, columns []contracts.Column) *CellContext {
	var target *contracts.Sheet
	for i := range sheets {
		if sheets[i].Id == sheetId || sheets[i].Label == sheetId {
			target = &sheets[i]
			break
		}
	}

	ctx := &CellContext{columns: columns}
	if target == nil {
		return ctx
	}

	ctx.grid = make([][]any, len(target.Rows))
	for rowIndex, row := range target.Rows {
		gridRow := make([]any, len(columns))
		for colIndex, column := range columns {
			gridRow[colIndex] = row[column.Key]
		}
		ctx.grid[rowIndex] = gridRow
	}
	return ctx
}

// Value resolves a grid coordinate to a numeric value. Out-of-range
// and non-numeric cells resolve to 0, mirroring the spreadsheet
// "empty cell is zero" convention.
func (c *CellContext) Value(col int, row int) float64 {
	if row < 0 || row >= len(c.grid) {
		return 0
	}
	if col < 0 || col >= len(c.grid[row]) {
		return 0
	}

	value, ok := CoerceNumeric(c.grid[row][col])
	if !ok {
		return 0
	}
	return value
}

// InRange reports whether a grid coordinate addresses a stored cell.
func (c *CellContext) InRange(col int, row int) bool {
	return row >= 0 && row < len(c.grid) && col >= 0 && col < len(c.columns)
}

func (c *CellContext) Rows() int {
	return len(c.grid)
}

func (c *CellContext) Columns() []contracts.Column {
	return c.columns
}

// ColumnToLetter converts a zero-based column index to its A1 letter
// sequence: 0 -> A, 25 -> Z, 26 -> AA.
func ColumnToLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// LetterToColumn is the inverse of ColumnToLetter.
func LetterToColumn(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty", ColumnLettersError)
	}

	index := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %s", ColumnLettersError, letters)
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1, nil
}
