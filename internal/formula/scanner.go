package formula

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenTrue
	tokenFalse
	tokenLParen
	tokenRParen
	tokenComma
	tokenEq
	tokenNeq
	tokenLt
	tokenGt
	tokenLte
	tokenGte
	tokenNot
	tokenAnd
	tokenOr
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) && unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return token{kind: tokenEOF, pos: s.pos}, nil
	}

	start := s.pos
	c := s.src[s.pos]
	switch {
	case c == '(':
		s.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case c == ')':
		s.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case c == ',':
		s.pos++
		return token{kind: tokenComma, text: ",", pos: start}, nil
	case c == '=':
		s.pos++
		return token{kind: tokenEq, text: "=", pos: start}, nil
	case c == '<':
		s.pos++
		if s.pos < len(s.src) {
			switch s.src[s.pos] {
			case '>':
				s.pos++
				return token{kind: tokenNeq, text: "<>", pos: start}, nil
			case '=':
				s.pos++
				return token{kind: tokenLte, text: "<=", pos: start}, nil
			}
		}
		return token{kind: tokenLt, text: "<", pos: start}, nil
	case c == '>':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			return token{kind: tokenGte, text: ">=", pos: start}, nil
		}
		return token{kind: tokenGt, text: ">", pos: start}, nil
	case c == '"' || c == '\'':
		return s.scanString(c)
	case c >= '0' && c <= '9':
		return s.scanNumber()
	case isIdentStart(c):
		return s.scanIdent()
	}
	return token{}, fmt.Errorf("unexpected character %q at position %d", c, start)
}

func (s *scanner) scanString(quote byte) (token, error) {
	start := s.pos
	s.pos++ // opening quote
	var sb strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' && s.pos+1 < len(s.src) {
			s.pos++
			sb.WriteByte(s.src[s.pos])
			s.pos++
			continue
		}
		if c == quote {
			s.pos++
			return token{kind: tokenString, text: sb.String(), pos: start}, nil
		}
		sb.WriteByte(c)
		s.pos++
	}
	return token{}, fmt.Errorf("unterminated string starting at position %d", start)
}

func (s *scanner) scanNumber() (token, error) {
	start := s.pos
	seenDot := false
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '.' && !seenDot {
			seenDot = true
			s.pos++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		s.pos++
	}
	return token{kind: tokenNumber, text: s.src[start:s.pos], pos: start}, nil
}

func (s *scanner) scanIdent() (token, error) {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	text := s.src[start:s.pos]
	switch strings.ToUpper(text) {
	case "NOT":
		return token{kind: tokenNot, text: text, pos: start}, nil
	case "AND":
		return token{kind: tokenAnd, text: text, pos: start}, nil
	case "OR":
		return token{kind: tokenOr, text: text, pos: start}, nil
	case "TRUE":
		return token{kind: tokenTrue, text: text, pos: start}, nil
	case "FALSE":
		return token{kind: tokenFalse, text: text, pos: start}, nil
	}
	return token{kind: tokenIdent, text: text, pos: start}, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}
