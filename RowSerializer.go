package main

import (
	"encoding/binary"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"

	"vergoReports/contracts"
)

var SerializerError = errors.New("invalid serialized data")

// BinaryRowSerializer stores a row as a length-prefixed row id
// followed by the sonic-encoded row payload.
type BinaryRowSerializer struct {
}

func NewBinaryRowSerializer() *BinaryRowSerializer {
	return &BinaryRowSerializer{}
}

func (s *BinaryRowSerializer) Marshal(rowId string, row contracts.Row) ([]byte, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}

	idBytes := []byte(rowId)

	serializedData := make([]byte, 0, 2+len(idBytes)+len(payload))
	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(len(idBytes)))
	serializedData = append(serializedData, idBytes...)
	serializedData = append(serializedData, payload...)
	return serializedData, nil
}

func (s *BinaryRowSerializer) Unmarshal(data []byte) (rowId string, row contracts.Row, err error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("%w: should be more than 2 bytes (data: %v)", SerializerError, string(data))
	}

	idLength := binary.LittleEndian.Uint16(data)
	if len(data) < int(idLength)+2 {
		return "", nil, fmt.Errorf("%w: id size is less than bytes amount (idSize: %d; data: %v)", SerializerError, idLength, string(data))
	}

	rowId = string(data[2 : idLength+2])

	row = contracts.Row{}
	if err = json.Unmarshal(data[idLength+2:], &row); err != nil {
		return "", nil, fmt.Errorf("%w: %s", SerializerError, err)
	}
	return
}
