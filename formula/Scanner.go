package formula

import "strings"

// Scanner tokenizes a formula expression. In cell mode, identifiers
// matching the strict uppercase-letters-then-digits pattern are
// classified as A1 cell references; outside cell mode they stay plain
// identifiers and only brace-delimited named references address
// columns.
type Scanner struct {
	input    string
	mark     int
	pos      int
	cellMode bool
}

func NewScanner(input string, cellMode bool) *Scanner {
	return &Scanner{input: input, cellMode: cellMode}
}

func (s *Scanner) AtEnd() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) advance() byte {
	if s.AtEnd() {
		return 0
	}
	b := s.input[s.pos]
	s.pos++
	return b
}

func (s *Scanner) peek() byte {
	if s.AtEnd() {
		return 0
	}
	return s.input[s.pos]
}

func (s *Scanner) val() string {
	return s.input[s.mark:s.pos]
}

func (s *Scanner) token(typ TokenType) (Token, error) {
	return Token{Type: typ, Pos: s.mark, Val: s.val()}, nil
}

// NextToken scans the next token and advances the scanner. At the end
// of the input it returns a TokenEOF token.
func (s *Scanner) NextToken() (Token, error) {
	for !s.AtEnd() && isSpace(s.peek()) {
		s.pos++
	}

	s.mark = s.pos
	if s.AtEnd() {
		return s.token(TokenEOF)
	}

	b := s.advance()
	switch {
	case b == '+':
		return s.token(TokenPlus)
	case b == '-':
		return s.token(TokenMinus)
	case b == '*':
		return s.token(TokenStar)
	case b == '/':
		return s.token(TokenSlash)
	case b == ',':
		return s.token(TokenComma)
	case b == '(':
		return s.token(TokenLeftParen)
	case b == ')':
		return s.token(TokenRightParen)
	case b == '{':
		return s.namedRef()
	case isDigit(b):
		return s.number()
	case isIdentStart(b):
		return s.identifier()
	}

	return Token{}, &ParseError{Message: "unexpected character " + string(rune(b)), Pos: s.mark}
}

func (s *Scanner) namedRef() (Token, error) {
	closing := strings.IndexByte(s.input[s.pos:], '}')
	if closing < 0 {
		return Token{}, &ParseError{Message: "unclosed named reference", Pos: s.mark}
	}

	name := strings.TrimSpace(s.input[s.pos : s.pos+closing])
	s.pos += closing + 1
	if name == "" {
		return Token{}, &ParseError{Message: "empty named reference", Pos: s.mark}
	}

	return Token{Type: TokenNamedRef, Pos: s.mark, Val: name}, nil
}

func (s *Scanner) number() (Token, error) {
	for isDigit(s.peek()) {
		s.pos++
	}

	if s.peek() == '.' {
		s.pos++
		if !isDigit(s.peek()) {
			return Token{}, &ParseError{Message: "malformed number " + s.val(), Pos: s.mark}
		}
		for isDigit(s.peek()) {
			s.pos++
		}
	}

	return s.token(TokenNumber)
}

func (s *Scanner) identifier() (Token, error) {
	for isIdentPart(s.peek()) {
		s.pos++
	}

	if s.cellMode && isCellAddress(s.val()) {
		return s.token(TokenCellRef)
	}

	return s.token(TokenIdent)
}

// isCellAddress reports whether val matches [A-Z]+[1-9][0-9]*.
func isCellAddress(val string) bool {
	i := 0
	for i < len(val) && val[i] >= 'A' && val[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(val) || val[i] == '0' {
		return false
	}
	for _, b := range []byte(val[i:]) {
		if !isDigit(b) {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
