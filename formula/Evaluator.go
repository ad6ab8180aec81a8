package formula

import (
	"errors"
	"fmt"
	"math"

	"vergoReports/contracts"
)

var (
	ExpressionError          = errors.New("expression error")
	DivisionByZeroError      = fmt.Errorf("%w: %s", ExpressionError, "division by zero")
	InvalidResultError       = fmt.Errorf("%w: %s", ExpressionError, "non-finite result")
	UnresolvedReferenceError = fmt.Errorf("%w: %s", ExpressionError, "unresolved reference")
)

// FormulaPrefix marks a grid cell value as a formula.
const FormulaPrefix = "="

// RowCursor addresses the row a per-row formula is evaluated against.
type RowCursor struct {
	Index int
	Row   contracts.Row
}

// Formula is a stored aggregate-row formula definition.
type Formula struct {
	Expression string `json:"expression"`
	ResultType string `json:"result_type"`
}

// Result is the typed outcome of a successful evaluation. A nil Value
// is the null result of an aggregate over no data.
type Result struct {
	Value  any    `json:"value"`
	Format string `json:"format,omitempty"`
}

// Formatted renders the result for display.
func (r *Result) Formatted() string {
	return FormatResult(r.Value, r.Format)
}

type evaluator struct {
	ctx        *Context
	cells      *CellContext
	getter     ValuesGetter
	columnMode bool
}

// EvaluateExpression parses and evaluates a row formula at the given
// cursor. Unresolved references are lenient and contribute 0, so a
// half-typed formula still previews.
func EvaluateExpression(expression string, ctx *Context, cursor RowCursor) (result *Result, err error) {
	defer recoverToError(&err)

	ast, err := Parse(expression)
	if err != nil {
		return nil, err
	}

	e := &evaluator{
		ctx:    ctx,
		getter: NewValuesGetterChain(ctx.RowGetter(cursor), ctx.CrossSheetGetter(cursor)),
	}
	return e.run(ast, FormatNumber)
}

// EvaluateRowFormula evaluates an aggregate formula at a column
// cursor: column references passed to aggregate functions expand to
// every value of that column. The result format comes from the
// formula's result type, falling back to the cursor column's data
// type.
func EvaluateRowFormula(f Formula, ctx *Context, columnKey string) (result *Result, err error) {
	defer recoverToError(&err)

	ast, err := Parse(f.Expression)
	if err != nil {
		return nil, err
	}

	format := f.ResultType
	if format == "" {
		format = FormatNumber
		if column, ok := ctx.Column(columnKey); ok {
			format = FormatHint(column.DataType)
		}
	}

	e := &evaluator{ctx: ctx, columnMode: true}
	return e.run(ast, format)
}

// EvaluateCellFormula evaluates a parsed grid formula against a cell
// context.
func EvaluateCellFormula(ast Expr, cells *CellContext) (result *Result, err error) {
	defer recoverToError(&err)

	e := &evaluator{cells: cells}
	return e.run(ast, FormatNumber)
}

// ValidateExpression is the strict variant used before a formula is
// saved: every reference must resolve against the context.
func ValidateExpression(expression string, ctx *Context) error {
	ast, err := Parse(expression)
	if err != nil {
		return err
	}
	return validateRefs(ast, ctx)
}

func validateRefs(node Expr, ctx *Context) error {
	switch n := node.(type) {
	case *ColumnRef:
		if n.Sheet != "" && ctx.sheets[n.Sheet] == nil {
			return fmt.Errorf("%w: unknown sheet %s", UnresolvedReferenceError, n.Sheet)
		}
		if _, ok := ctx.ResolveKey(n.Name); !ok {
			return fmt.Errorf("%w: %s", UnresolvedReferenceError, n.RefName())
		}
	case *Unary:
		return validateRefs(n.X, ctx)
	case *Binary:
		if err := validateRefs(n.Left, ctx); err != nil {
			return err
		}
		return validateRefs(n.Right, ctx)
	case *Group:
		return validateRefs(n.Inner, ctx)
	case *Call:
		for _, arg := range n.Args {
			if err := validateRefs(arg, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *evaluator) run(ast Expr, format string) (*Result, error) {
	value, isNull, err := e.eval(ast)
	if err != nil {
		return nil, err
	}

	if isNull {
		return &Result{Value: nil, Format: format}, nil
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, InvalidResultError
	}

	return &Result{Value: Round2(value), Format: format}, nil
}

func (e *evaluator) eval(node Expr) (float64, bool, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Value, false, nil

	case *Group:
		return e.eval(n.Inner)

	case *Unary:
		value, isNull, err := e.eval(n.X)
		if err != nil || isNull {
			return 0, isNull, err
		}
		return -value, false, nil

	case *Binary:
		return e.evalBinary(n)

	case *ColumnRef:
		return e.resolveColumnRef(n), false, nil

	case *CellRef:
		if e.cells == nil {
			return 0, false, nil
		}
		return e.cells.Value(n.Col, n.Row), false, nil

	case *Call:
		return e.evalCall(n)
	}

	return 0, false, fmt.Errorf("%w: unknown node", ExpressionError)
}

func (e *evaluator) evalBinary(n *Binary) (float64, bool, error) {
	left, leftNull, err := e.eval(n.Left)
	if err != nil {
		return 0, false, err
	}
	right, rightNull, err := e.eval(n.Right)
	if err != nil {
		return 0, false, err
	}

	// null operands act as 0 inside arithmetic
	if leftNull {
		left = 0
	}
	if rightNull {
		right = 0
	}

	switch n.Op {
	case TokenPlus:
		return left + right, false, nil
	case TokenMinus:
		return left - right, false, nil
	case TokenStar:
		return left * right, false, nil
	case TokenSlash:
		if right == 0 {
			return 0, false, DivisionByZeroError
		}
		return left / right, false, nil
	}

	return 0, false, fmt.Errorf("%w: unknown operator", ExpressionError)
}

// resolveColumnRef is the lenient arithmetic substitution path:
// anything unresolvable contributes 0.
func (e *evaluator) resolveColumnRef(n *ColumnRef) float64 {
	if e.getter == nil {
		return 0
	}

	values := e.getter([]string{n.RefName()})
	if values[0] == nil {
		return 0
	}
	return *values[0]
}

func (e *evaluator) evalCall(n *Call) (float64, bool, error) {
	fn, ok := LookupFunction(n.Name)
	if !ok {
		// parser rejects unknown names; kept as a guard for
		// hand-built trees
		return 0, false, fmt.Errorf("%w: unknown function %s", ExpressionError, n.Name)
	}

	values := make([]float64, 0, len(n.Args))
	for _, arg := range n.Args {
		if ref, ok := arg.(*ColumnRef); ok && e.ctx != nil {
			values = append(values, e.ctx.ColumnValues(ref)...)
			continue
		}

		value, isNull, err := e.eval(arg)
		if err != nil {
			return 0, false, err
		}
		if !isNull {
			values = append(values, value)
		}
	}

	result := fn(values)
	if result == nil {
		return 0, true, nil
	}
	return *result, false, nil
}

func recoverToError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ExpressionError, r)
	}
}
