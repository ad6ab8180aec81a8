package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vergoReports/contracts"
)

func TestColumnToLetter(t *testing.T) {
	cases := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}

	for index, letters := range cases {
		assert.Equal(t, letters, ColumnToLetter(index), "index: %d", index)

		back, err := LetterToColumn(letters)
		assert.NoError(t, err)
		assert.Equal(t, index, back, "letters: %s", letters)
	}
}

func TestLetterToColumn_Invalid(t *testing.T) {
	for _, letters := range []string{"", "a", "A1", "-"} {
		_, err := LetterToColumn(letters)
		assert.ErrorIs(t, err, ColumnLettersError, "letters: %q", letters)
	}
}

func TestContext_ResolveKey(t *testing.T) {
	ctx := NewContext("s", nil, []contracts.Column{
		{Key: "amount", Label: "Contract Value", DataType: contracts.ColumnTypeCurrency},
		{Key: "label_clash", Label: "amount", DataType: contracts.ColumnTypeNumber},
	}, "")

	t.Run("label_match_wins", func(t *testing.T) {
		key, ok := ctx.ResolveKey("Contract Value")
		assert.True(t, ok)
		assert.Equal(t, "amount", key)

		// "amount" is both a label and a key; the label match is preferred
		key, ok = ctx.ResolveKey("amount")
		assert.True(t, ok)
		assert.Equal(t, "label_clash", key)
	})

	t.Run("key_fallback", func(t *testing.T) {
		key, ok := ctx.ResolveKey("label_clash")
		assert.True(t, ok)
		assert.Equal(t, "label_clash", key)
	})

	t.Run("unresolvable", func(t *testing.T) {
		_, ok := ctx.ResolveKey("nothing")
		assert.False(t, ok)
	})
}

func TestContext_ColumnValues(t *testing.T) {
	ctx := _contractContext()

	t.Run("coerces_and_drops_non_numeric", func(t *testing.T) {
		values := ctx.ColumnValues(&ColumnRef{Name: "Contract Value"})
		assert.Equal(t, []float64{100, 1500}, values)
	})

	t.Run("unresolvable_column_is_empty", func(t *testing.T) {
		assert.Empty(t, ctx.ColumnValues(&ColumnRef{Name: "Nothing"}))
	})

	t.Run("unknown_sheet_is_empty", func(t *testing.T) {
		assert.Empty(t, ctx.ColumnValues(&ColumnRef{Sheet: "Nowhere", Name: "Contract Value"}))
	})
}

func TestValuesGetterChain(t *testing.T) {
	_ref := func(v float64) *float64 { return &v }

	first := func(names []string) []*float64 {
		values := make([]*float64, len(names))
		for i, name := range names {
			if name == "a" {
				values[i] = _ref(1)
			}
		}
		return values
	}
	second := func(names []string) []*float64 {
		values := make([]*float64, len(names))
		for i, name := range names {
			if name == "b" {
				values[i] = _ref(2)
			}
		}
		return values
	}

	t.Run("fills_gaps_from_second", func(t *testing.T) {
		chain := NewValuesGetterChain(first, second)
		values := chain([]string{"a", "b", "c"})

		assert.Equal(t, 1.0, *values[0])
		assert.Equal(t, 2.0, *values[1])
		assert.Nil(t, values[2])
	})

	t.Run("nil_links_collapse", func(t *testing.T) {
		chain := NewValuesGetterChain(nil, second)
		values := chain([]string{"b"})
		assert.Equal(t, 2.0, *values[0])

		chain = NewValuesGetterChain(first, nil)
		values = chain([]string{"a"})
		assert.Equal(t, 1.0, *values[0])
	})
}

func TestCellContext(t *testing.T) {
	columns := []contracts.Column{
		{Key: "x", Label: "X", DataType: contracts.ColumnTypeNumber},
		{Key: "y", Label: "Y", DataType: contracts.ColumnTypeNumber},
	}
	sheets := []contracts.Sheet{{
		Id: "grid",
		Rows: []contracts.Row{
			{"x": 1.0, "y": "$2.50"},
			{"x": "bad", "y": nil},
		},
	}}

	cells := NewCellContext("grid", sheets, columns)

	t.Run("values", func(t *testing.T) {
		assert.Equal(t, 1.0, cells.Value(0, 0))
		assert.Equal(t, 2.5, cells.Value(1, 0))
	})

	t.Run("non_numeric_is_zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cells.Value(0, 1))
		assert.Equal(t, 0.0, cells.Value(1, 1))
	})

	t.Run("out_of_range_is_zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cells.Value(5, 0))
		assert.Equal(t, 0.0, cells.Value(0, 5))
		assert.Equal(t, 0.0, cells.Value(-1, -1))
	})

	t.Run("in_range", func(t *testing.T) {
		assert.True(t, cells.InRange(1, 1))
		assert.False(t, cells.InRange(2, 0))
		assert.False(t, cells.InRange(0, 2))
	})

	t.Run("unknown_sheet_is_empty", func(t *testing.T) {
		empty := NewCellContext("nowhere", sheets, columns)
		assert.Equal(t, 0, empty.Rows())
		assert.Equal(t, 0.0, empty.Value(0, 0))
	})
}
