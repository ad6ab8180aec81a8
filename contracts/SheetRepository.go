package contracts

type SheetRepository interface {
	// SaveSheet stores the columns and rows of a sheet and returns the
	// evaluated formula cells.
	SaveSheet(sheetId string, data *SheetData) ([]*Cell, error)

	// GetSheet returns the stored sheet with every formula cell
	// replaced by its evaluated result.
	GetSheet(sheetId string) (*SheetData, error)

	ListSheets() ([]string, error)
}
