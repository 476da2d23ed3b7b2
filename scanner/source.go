package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dr8co/langkit/lang"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/token"
)

// SourceScanner tokenizes raw source text via a [lang.Definition],
// sharing [BinaryScanner]'s flags, line counting, and EOS-sticky
// contract. Where [BinaryScanner] reads prepacked binary tokens, it
// reads characters directly and classifies them.
type SourceScanner struct {
	def        *lang.Definition
	src        string
	pos        int // byte offset of the next rune to consume
	sourceName string

	current    token.Token
	loaded     bool
	lineNumber int
	flags      Flags
}

// NewSourceScanner returns a scanner over src tokenized with def. name
// identifies the source for diagnostics (e.g. a file path). Its first
// token is loaded immediately, matching [NewBinaryScanner].
func NewSourceScanner(def *lang.Definition, src, name string) *SourceScanner {
	s := &SourceScanner{def: def, src: src, sourceName: name, lineNumber: 1, flags: DefaultFlags}
	s.Next()
	return s
}

// SetFlags replaces the scanner's whitespace/line-ending policy.
func (s *SourceScanner) SetFlags(f Flags) { s.flags = f }

// Flags returns the scanner's current policy.
func (s *SourceScanner) Flags() Flags { return s.flags }

// Current returns the current token.
func (s *SourceScanner) Current() token.Token { return s.current }

// LineNumber returns the 1-based current line number.
func (s *SourceScanner) LineNumber() int { return s.lineNumber }

// SourceName returns the name this scanner reports for diagnostics.
func (s *SourceScanner) SourceName() string { return s.sourceName }

// Continues reports whether there is a current token and it is not the
// stream-ending sentinel.
func (s *SourceScanner) Continues() bool {
	return s.loaded && !s.current.IsStreamEnding()
}

// Next advances the scanner by tokenizing the next run of characters.
// EOS is sticky, as for [BinaryScanner].
func (s *SourceScanner) Next() {
	if s.loaded && s.current.IsStreamEnding() {
		return
	}
	for {
		tok, ok := s.lexOne()
		if !ok {
			s.current = token.StreamEnding
			s.loaded = true
			return
		}

		switch tok.Category() {
		case opcode.Space:
			if s.flags&NoWhitespace != 0 {
				continue
			}
			if s.flags&ConsolidateWhitespace != 0 {
				for s.peekStartsCategory(opcode.Space) {
					next, ok := s.lexOne()
					if !ok {
						break
					}
					tok = next
				}
			}
			s.current = tok
			s.loaded = true
			return
		case opcode.EOL:
			count, _ := tok.LineCount()
			if s.flags&ConsolidateLineEndings != 0 {
				for s.peekStartsCategory(opcode.EOL) {
					next, ok := s.lexOne()
					if !ok {
						break
					}
					c, _ := next.LineCount()
					count += c
				}
			}
			s.lineNumber += int(count)
			s.current = token.NewLineEnding(count)
			s.loaded = true
			return
		default:
			s.current = tok
			s.loaded = true
			return
		}
	}
}

// Peek tokenizes the next run of characters without advancing the
// scanner's position.
func (s *SourceScanner) Peek() (token.Token, bool) {
	save := s.pos
	tok, ok := s.lexOne()
	s.pos = save
	return tok, ok
}

func (s *SourceScanner) peekStartsCategory(cat opcode.Code) bool {
	save := s.pos
	tok, ok := s.lexOne()
	s.pos = save
	return ok && tok.Category() == cat
}

// lexOne consumes exactly one token's worth of characters starting at
// s.pos, advancing s.pos past it. It reports false at end of input.
func (s *SourceScanner) lexOne() (token.Token, bool) {
	if s.pos >= len(s.src) {
		return token.Token{}, false
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])

	switch {
	case r == '\n':
		s.pos += size
		// A lone \n is one line ending; \r\n is folded in the \r case.
		return token.NewLineEnding(1), true
	case r == '\r':
		s.pos += size
		if s.pos < len(s.src) && s.src[s.pos] == '\n' {
			s.pos++
		}
		return token.NewLineEnding(1), true
	case r == ' ' || r == '\t':
		start := s.pos
		for s.pos < len(s.src) {
			r2, sz2 := utf8.DecodeRuneInString(s.src[s.pos:])
			if r2 != ' ' && r2 != '\t' {
				break
			}
			s.pos += sz2
		}
		_ = start
		return token.NewGeneric(opcode.Space), true
	case r == s.def.StringQuote():
		return s.lexString(r)
	case isIdentStart(s.def, r):
		return s.lexIdentifier(), true
	case isDigit(s.def, r):
		return s.lexNumber(), true
	case isOperatorChar(s.def, r):
		return s.lexOperator(), true
	default:
		s.pos += size
		return token.NewGeneric(opcode.Dummy), true
	}
}

func (s *SourceScanner) lexIdentifier() token.Token {
	start := s.pos
	for s.pos < len(s.src) {
		r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(s.def, r) {
			break
		}
		s.pos += sz
	}
	text := s.src[start:s.pos]
	op := s.def.Classify(text)
	if op == 0 {
		return token.NewSymbolicFromText(opcode.Identifier, text)
	}
	return token.NewGeneric(op)
}

func (s *SourceScanner) lexNumber() token.Token {
	start := s.pos
	for s.pos < len(s.src) {
		r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isDigit(s.def, r) {
			break
		}
		s.pos += sz
	}
	return token.NewSymbolicFromText(opcode.Number, s.src[start:s.pos])
}

func (s *SourceScanner) lexString(quote rune) (token.Token, bool) {
	qsize := utf8.RuneLen(quote)
	s.pos += qsize
	start := s.pos
	var b strings.Builder
	for s.pos < len(s.src) {
		r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
		if r == quote {
			text := b.String()
			if text == "" {
				text = s.src[start:s.pos]
			}
			s.pos += sz
			return token.NewSymbolicFromText(opcode.String, text), true
		}
		if r == '\\' && s.pos+sz < len(s.src) {
			s.pos += sz
			r2, sz2 := utf8.DecodeRuneInString(s.src[s.pos:])
			b.WriteRune(unescape(r2))
			s.pos += sz2
			continue
		}
		b.WriteRune(r)
		s.pos += sz
	}
	// Unterminated string: return what was read as a dummy-opcode token
	// so the parser driver's own error reporting can flag it.
	return token.NewSymbolicFromText(opcode.Dummy, b.String()), true
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

func (s *SourceScanner) lexOperator() token.Token {
	maxLen := s.def.MaxOperatorLen
	if maxLen < 1 {
		maxLen = 1
	}
	remaining := s.src[s.pos:]
	for try := maxLen; try >= 1; try-- {
		if try > len(remaining) {
			continue
		}
		// Clamp to a rune boundary.
		cut := try
		for cut > 0 && cut < len(remaining) && !utf8.RuneStart(remaining[cut]) {
			cut--
		}
		candidate := remaining[:cut]
		if op := s.def.Classify(candidate); op != 0 {
			s.pos += len(candidate)
			return token.NewGeneric(op)
		}
	}
	_, size := utf8.DecodeRuneInString(remaining)
	s.pos += size
	return token.NewGeneric(opcode.Dummy)
}

func isIdentStart(def *lang.Definition, r rune) bool {
	if def.IsIdentStart != nil {
		return def.IsIdentStart(r)
	}
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentPart(def *lang.Definition, r rune) bool {
	if def.IsIdentPart != nil {
		return def.IsIdentPart(r)
	}
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func isDigit(def *lang.Definition, r rune) bool {
	if def.IsDigit != nil {
		return def.IsDigit(r)
	}
	return '0' <= r && r <= '9'
}

func isOperatorChar(def *lang.Definition, r rune) bool {
	if def.IsOperatorChar != nil {
		return def.IsOperatorChar(r)
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
