package formula

import (
	"fmt"
	"strconv"
	"strings"
)

type ParseError struct {
	Message string
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Message)
}

// DefaultMaxDepth bounds expression nesting so adversarial input
// cannot force pathological parse or evaluation cost.
const DefaultMaxDepth = 64

type ParserOptions struct {
	MaxDepth int
}

// Parse parses a row/aggregate formula: named `{Label}` references,
// bare identifiers, literals, the four arithmetic operators and
// aggregate function calls.
func Parse(expression string) (Expr, error) {
	return ParseWithOptions(expression, false, ParserOptions{})
}

// ParseCell parses a grid formula: same operators and functions, but
// references are strict A1 cell addresses.
func ParseCell(expression string) (Expr, error) {
	return ParseWithOptions(expression, true, ParserOptions{})
}

func ParseWithOptions(expression string, cellMode bool, options ParserOptions) (Expr, error) {
	maxDepth := options.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	tokens, err := scanAll(expression, cellMode)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, maxDepth: maxDepth}
	expr, err := p.expression(0)
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Message: "unexpected token " + tok.Val, Pos: tok.Pos}
	}

	return expr, nil
}

func scanAll(expression string, cellMode bool) ([]Token, error) {
	scanner := NewScanner(expression, cellMode)

	tokens := make([]Token, 0, 8)
	for {
		tok, err := scanner.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

type parser struct {
	tokens   []Token
	current  int
	maxDepth int
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

func (p *parser) match(typ TokenType) bool {
	if p.peek().Type == typ {
		p.advance()
		return true
	}
	return false
}

// expression := term (("+" | "-") term)*
func (p *parser) expression(depth int) (Expr, error) {
	if depth > p.maxDepth {
		return nil, &ParseError{Message: "expression too deeply nested", Pos: p.peek().Pos}
	}

	left, err := p.term(depth + 1)
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek().Type
		if op != TokenPlus && op != TokenMinus {
			return left, nil
		}
		p.advance()

		right, err := p.term(depth + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

// term := unary (("*" | "/") unary)*
func (p *parser) term(depth int) (Expr, error) {
	if depth > p.maxDepth {
		return nil, &ParseError{Message: "expression too deeply nested", Pos: p.peek().Pos}
	}

	left, err := p.unary(depth + 1)
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek().Type
		if op != TokenStar && op != TokenSlash {
			return left, nil
		}
		p.advance()

		right, err := p.unary(depth + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) unary(depth int) (Expr, error) {
	if depth > p.maxDepth {
		return nil, &ParseError{Message: "expression too deeply nested", Pos: p.peek().Pos}
	}

	if p.match(TokenMinus) {
		x, err := p.unary(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: TokenMinus, X: x}, nil
	}

	return p.primary(depth + 1)
}

func (p *parser) primary(depth int) (Expr, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Val, 64)
		if err != nil {
			return nil, &ParseError{Message: "malformed number " + tok.Val, Pos: tok.Pos}
		}
		return &Literal{Value: value}, nil

	case TokenNamedRef:
		return namedRefNode(tok), nil

	case TokenCellRef:
		return cellRefNode(tok)

	case TokenIdent:
		if p.peek().Type == TokenLeftParen {
			return p.call(tok, depth)
		}
		return &ColumnRef{Name: tok.Val}, nil

	case TokenLeftParen:
		inner, err := p.expression(depth + 1)
		if err != nil {
			return nil, err
		}
		if !p.match(TokenRightParen) {
			return nil, &ParseError{Message: "missing closing parenthesis", Pos: p.peek().Pos}
		}
		return &Group{Inner: inner}, nil

	case TokenEOF:
		return nil, &ParseError{Message: "unexpected end of expression", Pos: tok.Pos}
	}

	return nil, &ParseError{Message: "unexpected token " + tok.Val, Pos: tok.Pos}
}

func (p *parser) call(name Token, depth int) (Expr, error) {
	fnName := strings.ToUpper(name.Val)
	if !IsFunction(fnName) {
		return nil, &ParseError{Message: "unknown function " + name.Val, Pos: name.Pos}
	}

	// consume "("
	p.advance()

	args := make([]Expr, 0, 1)
	for {
		if p.peek().Type == TokenRightParen || p.peek().Type == TokenComma {
			return nil, &ParseError{Message: "empty argument in call to " + fnName, Pos: p.peek().Pos}
		}

		arg, err := p.expression(depth + 1)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.match(TokenComma) {
			continue
		}
		if p.match(TokenRightParen) {
			return &Call{Name: fnName, Args: args}, nil
		}
		return nil, &ParseError{Message: "missing closing parenthesis in call to " + fnName, Pos: p.peek().Pos}
	}
}

func namedRefNode(tok Token) Expr {
	if sheet, name, found := strings.Cut(tok.Val, "."); found {
		return &ColumnRef{Sheet: strings.TrimSpace(sheet), Name: strings.TrimSpace(name)}
	}
	return &ColumnRef{Name: tok.Val}
}

func cellRefNode(tok Token) (Expr, error) {
	letters := 0
	for letters < len(tok.Val) && tok.Val[letters] >= 'A' && tok.Val[letters] <= 'Z' {
		letters++
	}

	col, err := LetterToColumn(tok.Val[:letters])
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Pos: tok.Pos}
	}

	row, err := strconv.Atoi(tok.Val[letters:])
	if err != nil || row < 1 {
		return nil, &ParseError{Message: "malformed cell reference " + tok.Val, Pos: tok.Pos}
	}

	// surface syntax is 1-based, the tree is 0-based
	return &CellRef{Col: col, Row: row - 1}, nil
}
