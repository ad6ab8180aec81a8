package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("precedence", func(t *testing.T) {
		ast, err := Parse("2 + 3 * 4")
		assert.NoError(t, err)

		expected := &Binary{
			Op:   TokenPlus,
			Left: &Literal{Value: 2},
			Right: &Binary{
				Op:    TokenStar,
				Left:  &Literal{Value: 3},
				Right: &Literal{Value: 4},
			},
		}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("parentheses_override_precedence", func(t *testing.T) {
		ast, err := Parse("(2 + 3) * 4")
		assert.NoError(t, err)

		expected := &Binary{
			Op: TokenStar,
			Left: &Group{Inner: &Binary{
				Op:    TokenPlus,
				Left:  &Literal{Value: 2},
				Right: &Literal{Value: 3},
			}},
			Right: &Literal{Value: 4},
		}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := Parse("{Revenue} - {Costs} / 2")
		assert.NoError(t, err)
		second, err := Parse("{Revenue} - {Costs} / 2")
		assert.NoError(t, err)

		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("named_reference", func(t *testing.T) {
		ast, err := Parse("{Contract Value} - {Contract Cost}")
		assert.NoError(t, err)

		expected := &Binary{
			Op:    TokenMinus,
			Left:  &ColumnRef{Name: "Contract Value"},
			Right: &ColumnRef{Name: "Contract Cost"},
		}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("cross_sheet_reference", func(t *testing.T) {
		ast, err := Parse("{Contracts.Gross Profit}")
		assert.NoError(t, err)
		assert.Empty(t, cmp.Diff(&ColumnRef{Sheet: "Contracts", Name: "Gross Profit"}, ast))
	})

	t.Run("bare_identifier", func(t *testing.T) {
		ast, err := Parse("revenue - cost")
		assert.NoError(t, err)

		expected := &Binary{
			Op:    TokenMinus,
			Left:  &ColumnRef{Name: "revenue"},
			Right: &ColumnRef{Name: "cost"},
		}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("unary_minus", func(t *testing.T) {
		ast, err := Parse("-5 + 2")
		assert.NoError(t, err)

		expected := &Binary{
			Op:    TokenPlus,
			Left:  &Unary{Op: TokenMinus, X: &Literal{Value: 5}},
			Right: &Literal{Value: 2},
		}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("function_call", func(t *testing.T) {
		ast, err := Parse("sum({Gross Profit})")
		assert.NoError(t, err)

		expected := &Call{Name: "SUM", Args: []Expr{&ColumnRef{Name: "Gross Profit"}}}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("unknown_function", func(t *testing.T) {
		_, err := Parse("FOO(1)")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown function FOO")
	})

	t.Run("empty_argument", func(t *testing.T) {
		_, err := Parse("SUM()")
		assert.Error(t, err)

		_, err = Parse("SUM(1,)")
		assert.Error(t, err)
	})

	t.Run("depth_limit", func(t *testing.T) {
		deep := ""
		for i := 0; i < 100; i++ {
			deep += "("
		}
		deep += "1"
		for i := 0; i < 100; i++ {
			deep += ")"
		}

		_, err := Parse(deep)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deeply nested")

		_, err = ParseWithOptions(deep, false, ParserOptions{MaxDepth: 1000})
		assert.NoError(t, err)
	})

	t.Run("malformed_input_returns_error", func(t *testing.T) {
		inputs := []string{
			"",
			"   ",
			"1 +",
			"* 2",
			"(1 + 2",
			"1 + 2)",
			"{unclosed",
			"{}",
			"1..2",
			"@#$",
			"SUM(",
			"1 2",
		}

		for _, input := range inputs {
			ast, err := Parse(input)
			assert.Error(t, err, "input: %q", input)
			assert.Nil(t, ast, "input: %q", input)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr, "input: %q", input)
		}
	})
}

func TestParseCell(t *testing.T) {
	t.Run("cell_references", func(t *testing.T) {
		ast, err := ParseCell("A1+B2*2")
		assert.NoError(t, err)

		expected := &Binary{
			Op:   TokenPlus,
			Left: &CellRef{Col: 0, Row: 0},
			Right: &Binary{
				Op:    TokenStar,
				Left:  &CellRef{Col: 1, Row: 1},
				Right: &Literal{Value: 2},
			},
		}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("multi_letter_column", func(t *testing.T) {
		ast, err := ParseCell("AA10")
		assert.NoError(t, err)
		assert.Empty(t, cmp.Diff(&CellRef{Col: 26, Row: 9}, ast))
	})

	t.Run("function_over_cells", func(t *testing.T) {
		ast, err := ParseCell("SUM(A1, B1, C1)")
		assert.NoError(t, err)

		expected := &Call{Name: "SUM", Args: []Expr{
			&CellRef{Col: 0, Row: 0},
			&CellRef{Col: 1, Row: 0},
			&CellRef{Col: 2, Row: 0},
		}}
		assert.Empty(t, cmp.Diff(expected, ast))
	})

	t.Run("row_zero_is_invalid", func(t *testing.T) {
		_, err := ParseCell("A0")
		assert.Error(t, err)
	})

	t.Run("lowercase_stays_identifier", func(t *testing.T) {
		// a1 does not match the strict cell pattern, so it parses as a
		// named column reference, not a cell address
		ast, err := ParseCell("a1")
		assert.NoError(t, err)
		assert.IsType(t, &ColumnRef{}, ast)
	})
}
