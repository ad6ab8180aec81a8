package contracts

type RowSerializer interface {
	Marshal(rowId string, row Row) ([]byte, error)
	Unmarshal(data []byte) (rowId string, row Row, err error)
}
