package formula

// Expr is a parsed formula node. Nodes carry no evaluation state; the
// same tree can be evaluated against any number of contexts.
type Expr interface {
	exprNode()
}

type Literal struct {
	Value float64
}

// ColumnRef is a named column reference, optionally qualified with a
// sheet label (`{Sheet.Column}`).
type ColumnRef struct {
	Sheet string
	Name  string
}

// CellRef is an A1-style address, zero-based in both dimensions.
type CellRef struct {
	Col int
	Row int
}

type Unary struct {
	Op TokenType
	X  Expr
}

type Binary struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

type Call struct {
	Name string
	Args []Expr
}

type Group struct {
	Inner Expr
}

func (*Literal) exprNode()   {}
func (*ColumnRef) exprNode() {}
func (*CellRef) exprNode()   {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
func (*Group) exprNode()     {}

// RefName is the reference name as written in the formula source,
// including the sheet qualifier when present.
func (r *ColumnRef) RefName() string {
	if r.Sheet == "" {
		return r.Name
	}
	return r.Sheet + "." + r.Name
}
