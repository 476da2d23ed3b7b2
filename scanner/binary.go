// Package scanner implements the two scanner variants that turn a byte or
// character stream into a lazy token sequence: [BinaryScanner] iterates
// prepacked intermediate code, and [SourceScanner] tokenizes raw source
// text via a [lang.Definition].
package scanner

import (
	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/token"
)

// Flags controls whitespace and line-ending handling.
type Flags uint8

const (
	// NoWhitespace discards SPACE-category tokens entirely: the current
	// token is never of category Space.
	NoWhitespace Flags = 1 << iota
	// ConsolidateWhitespace combines a run of same-kind whitespace
	// tokens into a single current-token event. Ignored if NoWhitespace
	// is set.
	ConsolidateWhitespace
	// ConsolidateLineEndings combines a run of consecutive line endings
	// into one LineEnding token with the summed line count.
	ConsolidateLineEndings
)

// DefaultFlags matches the teacher's out-of-the-box behavior.
const DefaultFlags = NoWhitespace | ConsolidateWhitespace

// BinaryScanner iterates an intermediate-code byte stream, applying
// whitespace and line-ending policy as tokens are read. Its first Next()
// is invoked by [NewBinaryScanner], so the first token is already loaded
// (or the stream-ending sentinel, if the stream was empty) immediately
// after construction.
type BinaryScanner struct {
	stream     iostream.Stream
	current    token.Token
	loaded     bool
	lineNumber int
	flags      Flags
	err        error
}

// NewBinaryScanner returns a scanner over s with [DefaultFlags] and loads
// its first token.
func NewBinaryScanner(s iostream.Stream) *BinaryScanner {
	return NewBinaryScannerWithFlags(s, DefaultFlags)
}

// NewBinaryScannerWithFlags returns a scanner over s with an explicit
// whitespace/line-ending policy and loads its first token.
func NewBinaryScannerWithFlags(s iostream.Stream, flags Flags) *BinaryScanner {
	sc := &BinaryScanner{stream: s, lineNumber: 1, flags: flags}
	sc.Next()
	return sc
}

// SetFlags replaces the scanner's whitespace/line-ending policy.
func (s *BinaryScanner) SetFlags(f Flags) { s.flags = f }

// Flags returns the scanner's current policy.
func (s *BinaryScanner) Flags() Flags { return s.flags }

// Current returns the current token.
func (s *BinaryScanner) Current() token.Token { return s.current }

// LineNumber returns the 1-based current line number.
func (s *BinaryScanner) LineNumber() int { return s.lineNumber }

// Err returns the error, if any, from the most recent read.
func (s *BinaryScanner) Err() error { return s.err }

// Continues reports whether there is a current token and it is not the
// stream-ending sentinel.
func (s *BinaryScanner) Continues() bool {
	return s.loaded && !s.current.IsStreamEnding()
}

// Next advances the scanner. Once the current token is the
// stream-ending sentinel, Next is a no-op: EOS is sticky.
func (s *BinaryScanner) Next() {
	if s.loaded && s.current.IsStreamEnding() {
		return
	}
	for {
		tok, err := s.readRaw()
		if err != nil {
			s.err = err
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
				for s.peekCategory() == opcode.Space {
					next, err := s.readRaw()
					if err != nil {
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
				for s.peekCategory() == opcode.EOL {
					next, err := s.readRaw()
					if err != nil {
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

// Peek reads the next token without updating the current-token state,
// then returns it to the stream.
func (s *BinaryScanner) Peek() (token.Token, error) {
	tok, err := s.readRaw()
	if err != nil {
		return token.Token{}, err
	}
	if rerr := tok.ReturnTo(s.stream); rerr != nil {
		return token.Token{}, rerr
	}
	return tok, nil
}

// ReturnToken rewinds the stream past tok's on-disk payload.
func (s *BinaryScanner) ReturnToken(tok token.Token) error {
	return tok.ReturnTo(s.stream)
}

// Rewind returns the current token to the stream and clears it; a
// subsequent Next() re-reads from the rewound position.
func (s *BinaryScanner) Rewind() error {
	err := s.current.ReturnTo(s.stream)
	s.current = token.Token{}
	s.loaded = false
	return err
}

func (s *BinaryScanner) readRaw() (token.Token, error) {
	return token.ReadFrom(s.stream)
}

// peekCategory reads one raw token, returns it to the stream, and
// reports its category. It returns opcode.EOS (never a Space or EOL
// category token is mistaken for it) on any read error.
func (s *BinaryScanner) peekCategory() opcode.Code {
	tok, err := s.readRaw()
	if err != nil {
		return opcode.EOS
	}
	_ = tok.ReturnTo(s.stream)
	return tok.Category()
}
