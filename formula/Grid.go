package formula

import (
	"strconv"
	"strings"

	"vergoReports/contracts"
)

// ErrorPrefix marks an evaluation failure in a rendered cell.
const ErrorPrefix = "ERROR: "

// EvaluateGrid evaluates every formula cell of a sheet against the
// grid of raw values. Each cell fails independently: one bad formula
// renders as an error cell without aborting the rest of the sheet.
//
// The returned rows have formula strings replaced by rendered results;
// the cell list describes just the formula cells, keyed by A1 address.
func EvaluateGrid(data *contracts.SheetData) ([]contracts.Row, []*contracts.Cell) {
	sheets := []contracts.Sheet{{Id: data.Id, Rows: data.Rows}}
	cellCtx := NewCellContext(data.Id, sheets, data.Columns)

	rows := make([]contracts.Row, len(data.Rows))
	cells := make([]*contracts.Cell, 0)

	for rowIndex, row := range data.Rows {
		evaluated := make(contracts.Row, len(row))
		for key, value := range row {
			evaluated[key] = value
		}

		for colIndex, column := range data.Columns {
			raw, ok := row[column.Key].(string)
			if !ok || !strings.HasPrefix(raw, FormulaPrefix) {
				continue
			}

			rendered := evaluateGridCell(raw, cellCtx, column)
			evaluated[column.Key] = rendered
			cells = append(cells, &contracts.Cell{
				Key:    ColumnToLetter(colIndex) + strconv.Itoa(rowIndex+1),
				Value:  raw,
				Result: rendered,
			})
		}

		rows[rowIndex] = evaluated
	}

	return rows, cells
}

func evaluateGridCell(raw string, cellCtx *CellContext, column contracts.Column) string {
	ast, err := ParseCell(strings.TrimPrefix(raw, FormulaPrefix))
	if err != nil {
		return ErrorPrefix + err.Error()
	}

	result, err := EvaluateCellFormula(ast, cellCtx)
	if err != nil {
		return ErrorPrefix + err.Error()
	}

	result.Format = FormatHint(column.DataType)
	return result.Formatted()
}
