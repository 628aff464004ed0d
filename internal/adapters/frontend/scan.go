package frontend

import (
	"go.trai.ch/unbundle/internal/core/domain"
)

// loaderCall is one `require('x')` style call found in a script.
type loaderCall struct {
	// Ident covers the loader identifier.
	Ident domain.Range
	// Literal covers the request string literal, quotes included.
	Literal domain.Range
	// Call covers the whole call expression.
	Call domain.Range
	// Request is the literal's text without quotes.
	Request string
	// Bundler is set when the call uses the bundler's loader identifier.
	Bundler bool
}

// scanLoaderCalls finds loader calls with a single plain string argument.
// Comments, string literals and template literals are skipped. Regular expression
// literals are not recognized, so a quote inside one can hide later calls.
func scanLoaderCalls(src []byte) []loaderCall {
	var calls []loaderCall
	s := scanner{src: src}

	for s.pos < len(src) {
		c := src[s.pos]
		switch {
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		case c == '\'' || c == '"':
			s.skipString(c)
		case c == '`':
			s.skipTemplate()
		case isIdentStart(c):
			start := s.pos
			ident := s.readIdent()
			if ident != domain.NativeLoaderIdent && ident != domain.BundlerLoaderIdent {
				continue
			}
			if s.precededByMember(start) {
				continue
			}
			if call, ok := s.readCall(start, ident); ok {
				calls = append(calls, call)
			}
		default:
			s.pos++
		}
	}
	return calls
}

type scanner struct {
	src []byte
	pos int
}

func (s *scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *scanner) skipLineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) skipBlockComment() {
	s.pos += 2
	for s.pos < len(s.src) {
		if s.src[s.pos] == '*' && s.peek(1) == '/' {
			s.pos += 2
			return
		}
		s.pos++
	}
}

func (s *scanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote, '\n':
			s.pos++
			return
		}
		s.pos++
	}
}

func (s *scanner) skipTemplate() {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '`':
			s.pos++
			return
		}
		s.pos++
	}
}

func (s *scanner) readIdent() string {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

// precededByMember reports whether the identifier at start is a property access such as `x.require`.
func (s *scanner) precededByMember(start int) bool {
	for i := start - 1; i >= 0; i-- {
		switch s.src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '.':
			return true
		default:
			return false
		}
	}
	return false
}

// readCall parses `(<ws>'request'<ws>)` after the identifier. On success the
// scanner is positioned after the closing parenthesis.
func (s *scanner) readCall(identStart int, ident string) (loaderCall, bool) {
	i := s.skipSpace(s.pos)
	if i >= len(s.src) || s.src[i] != '(' {
		return loaderCall{}, false
	}
	i = s.skipSpace(i + 1)
	if i >= len(s.src) || (s.src[i] != '\'' && s.src[i] != '"') {
		return loaderCall{}, false
	}

	quote := s.src[i]
	litStart := i
	i++
	for i < len(s.src) && s.src[i] != quote {
		if s.src[i] == '\\' || s.src[i] == '\n' {
			return loaderCall{}, false
		}
		i++
	}
	if i >= len(s.src) {
		return loaderCall{}, false
	}
	litEnd := i + 1

	i = s.skipSpace(litEnd)
	if i >= len(s.src) || s.src[i] != ')' {
		return loaderCall{}, false
	}
	s.pos = i + 1

	return loaderCall{
		Ident:   domain.Range{Start: identStart, End: identStart + len(ident)},
		Literal: domain.Range{Start: litStart, End: litEnd},
		Call:    domain.Range{Start: identStart, End: s.pos},
		Request: string(s.src[litStart+1 : litEnd-1]),
		Bundler: ident == domain.BundlerLoaderIdent,
	}, true
}

func (s *scanner) skipSpace(i int) int {
	for i < len(s.src) {
		switch s.src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
