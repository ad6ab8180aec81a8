package main

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/bytedance/sonic"
	"go.etcd.io/bbolt"

	"vergoReports/contracts"
	"vergoReports/formula"
)

const columnsKey = "columns"

const rowKeyPrefix = "row:"

type SheetRepository struct {
	db                *bbolt.DB
	serializer        contracts.RowSerializer
	webhookDispatcher contracts.WebhookDispatcher
}

func NewSheetRepository(db *bbolt.DB, serializer contracts.RowSerializer, webhookDispatcher contracts.WebhookDispatcher) *SheetRepository {
	return &SheetRepository{
		db:                db,
		serializer:        serializer,
		webhookDispatcher: webhookDispatcher,
	}
}

func (s *SheetRepository) SaveSheet(sheetId string, data *contracts.SheetData) ([]*contracts.Cell, error) {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)

	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.EmptySheetError)
	}

	data.Id = sheetId
	_, cells := formula.EvaluateGrid(data)

	columnsData, err := json.Marshal(data.Columns)
	if err != nil {
		return nil, err
	}

	err = s.db.Batch(func(tx *bbolt.Tx) error {
		if tx.Bucket(sheetIdByte) != nil {
			if err := tx.DeleteBucket(sheetIdByte); err != nil {
				return err
			}
		}

		bucket, err := tx.CreateBucket(sheetIdByte)
		if err != nil {
			return err
		}

		if err := bucket.Put([]byte(columnsKey), columnsData); err != nil {
			return err
		}

		for index, row := range data.Rows {
			serializedData, err := s.serializer.Marshal(strconv.Itoa(index), row)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(rowKey(index)), serializedData); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.webhookDispatcher.Notify(sheetId, cells)

	return cells, nil
}

func (s *SheetRepository) GetSheet(sheetId string) (*contracts.SheetData, error) {
	sheetId = strings.ToLower(sheetId)

	data := &contracts.SheetData{Id: sheetId}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		if err := json.Unmarshal(bucket.Get([]byte(columnsKey)), &data.Columns); err != nil {
			return err
		}

		c := bucket.Cursor()
		for k, v := c.Seek([]byte(rowKeyPrefix)); k != nil && strings.HasPrefix(string(k), rowKeyPrefix); k, v = c.Next() {
			_, row, err := s.serializer.Unmarshal(v)
			if err != nil {
				return err
			}
			data.Rows = append(data.Rows, row)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	data.Rows, _ = formula.EvaluateGrid(data)

	return data, nil
}

func (s *SheetRepository) ListSheets() ([]string, error) {
	sheetIds := make([]string, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			sheetIds = append(sheetIds, string(name))
			return nil
		})
	})

	return sheetIds, err
}

// rowKey pads the index so bucket cursor order matches row order.
func rowKey(index int) string {
	return fmt.Sprintf("%s%08d", rowKeyPrefix, index)
}
