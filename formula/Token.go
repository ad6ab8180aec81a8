package formula

import "fmt"

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdent
	TokenNamedRef
	TokenCellRef
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenComma
	TokenLeftParen
	TokenRightParen
)

type Token struct {
	Type TokenType
	Pos  int
	Val  string
}

func (t Token) String() string {
	return fmt.Sprintf("%q@%d", t.Val, t.Pos)
}
