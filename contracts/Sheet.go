package contracts

import "errors"

// Row maps column keys to raw cell values (number, string or nil).
type Row map[string]any

type Sheet struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

const (
	ColumnTypeText     = "text"
	ColumnTypeNumber   = "number"
	ColumnTypeCurrency = "currency"
	ColumnTypeDate     = "date"
	ColumnTypeBoolean  = "boolean"
)

// Column describes one sheet column. Label is what `{...}` references
// are matched against, Key is the row-map key the value lives under.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	DataType string `json:"data_type"`
}

// SheetData is the stored shape of a sheet: its column descriptors
// plus its row records.
type SheetData struct {
	Id      string   `json:"id"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

var SheetNotFoundError = errors.New("sheet not found")

var EmptySheetError = errors.New("sheet has no columns")
