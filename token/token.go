// Package token implements the token hierarchy and its binary streaming
// format. A [Token] is a tagged variant: every token shares an
// {Opcode, Silenced} header, and carries one of three optional payloads
// depending on its opcode's category — a [symref.Ref] for identifiers,
// numbers, and strings; a line count for consolidated line endings; or no
// payload at all for everything else. [StreamEnding] is a sentinel with
// no on-disk representation.
package token

import (
	"encoding/binary"
	"fmt"

	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/symref"
)

// Kind distinguishes a token's payload shape. It is derived from the
// token's opcode category, not stored independently on disk.
type Kind int

const (
	// Generic tokens carry no payload beyond the opcode.
	Generic Kind = iota
	// Symbolic tokens carry a [symref.Ref] into a symbol vector.
	Symbolic
	// LineEndingKind tokens carry a consolidated line count.
	LineEndingKind
	// StreamEndingKind is the sentinel reached at end of stream.
	StreamEndingKind
)

// Token is a single lexical unit: an opcode plus whichever payload its
// category implies.
type Token struct {
	Opcode   opcode.Code
	Silenced bool

	kind      Kind
	symbolRef symref.Ref
	lineCount int32

	// text is the raw spelling of a source-scanned identifier, number,
	// or string literal, carried only until the parser resolves it to a
	// placed symbol and calls SetSymbolRef. It is never part of the
	// on-disk binary format — by the time a token reaches the
	// intermediate stream it should already carry a resolved SymbolRef.
	text string
}

// NewGeneric returns a plain token carrying only op.
func NewGeneric(op opcode.Code) Token {
	return Token{Opcode: op, kind: Generic}
}

// NewSymbolic returns a token of category identifier/number/string that
// refers to a symbol via ref.
func NewSymbolic(op opcode.Code, ref symref.Ref) Token {
	return Token{Opcode: op, kind: Symbolic, symbolRef: ref}
}

// NewSymbolicFromText returns a symbolic token scanned fresh from source
// text: its spelling is text, and its symbol reference is
// [symref.NoneRef] until the parser resolves or declares it and calls
// [Token.SetSymbolRef].
func NewSymbolicFromText(op opcode.Code, text string) Token {
	return Token{Opcode: op, kind: Symbolic, symbolRef: symref.NoneRef, text: text}
}

// Text returns the raw source spelling of a symbolic token scanned from
// text, before it has been resolved to a placed symbol.
func (t Token) Text() string { return t.text }

// SetSymbolRef assigns t's symbol reference once the parser has resolved
// or placed the symbol t names.
func (t *Token) SetSymbolRef(ref symref.Ref) {
	t.symbolRef = ref
}

// NewLineEnding returns a line-ending token consolidating count
// consecutive line terminators. count must be >= 1.
func NewLineEnding(count int32) Token {
	if count < 1 {
		count = 1
	}
	return Token{Opcode: opcode.EOL, kind: LineEndingKind, lineCount: count}
}

// StreamEnding is the sentinel token synthesized once a stream is
// exhausted. It is never written to disk.
var StreamEnding = Token{Opcode: opcode.EOS, kind: StreamEndingKind}

// Kind reports which payload variant the token carries.
func (t Token) Kind() Kind { return t.kind }

// Category returns the token's opcode category.
func (t Token) Category() opcode.Code { return t.Opcode.Category() }

// SymbolRef returns the token's symbol reference and whether it is a
// symbolic token at all.
func (t Token) SymbolRef() (symref.Ref, bool) {
	return t.symbolRef, t.kind == Symbolic
}

// LineCount returns the token's consolidated line count and whether it is
// a line-ending token at all.
func (t Token) LineCount() (int32, bool) {
	return t.lineCount, t.kind == LineEndingKind
}

// IsStreamEnding reports whether t is the end-of-stream sentinel.
func (t Token) IsStreamEnding() bool { return t.kind == StreamEndingKind }

// SetSilenced sets the silenced flag and returns its previous value. The
// flag is parser-local annotation, never persisted to the intermediate
// code stream.
func (t *Token) SetSilenced(v bool) bool {
	prev := t.Silenced
	t.Silenced = v
	return prev
}

// Size returns the token's on-disk payload size in bytes, including the
// 4-byte opcode — its "self streaming length". [StreamEnding] has size 0
// since it is never written.
func (t Token) Size() int {
	switch t.kind {
	case Symbolic:
		return 4 + 8
	case LineEndingKind:
		return 4 + 4
	case StreamEndingKind:
		return 0
	default:
		return 4
	}
}

// WriteTo serializes t to s per the layout in §4.3: opcode, then a
// category-dependent payload. [StreamEnding] tokens are never written.
func (t Token) WriteTo(s iostream.Stream) (int, error) {
	if t.kind == StreamEndingKind {
		return 0, nil
	}
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(t.Opcode))
	n := 4
	switch t.kind {
	case Symbolic:
		binary.BigEndian.PutUint32(buf[4:8], uint32(t.symbolRef.Scope))
		binary.BigEndian.PutUint32(buf[8:12], uint32(t.symbolRef.Index))
		n = 12
	case LineEndingKind:
		binary.BigEndian.PutUint32(buf[4:8], uint32(t.lineCount))
		n = 8
	}
	return s.Write(buf[:n])
}

// ReadFrom is the factory that inspects the category of the next opcode
// on s and constructs the matching token subtype. If s is already
// exhausted, it returns [StreamEnding] without touching s further — the
// EOS state is sticky, so once reached it is never left.
func ReadFrom(s iostream.Stream) (Token, error) {
	if s.HasEnded() {
		return StreamEnding, nil
	}

	var opBuf [4]byte
	if err := readFull(s, opBuf[:]); err != nil {
		if s.HasEnded() {
			return StreamEnding, nil
		}
		return Token{}, fmt.Errorf("token: reading opcode from %s: %w", s.Name(), err)
	}
	op := opcode.Code(binary.BigEndian.Uint32(opBuf[:]))
	cat := op.Category()

	switch cat {
	case opcode.Identifier, opcode.Number, opcode.String:
		var payload [8]byte
		if err := readFull(s, payload[:]); err != nil {
			return Token{}, fmt.Errorf("token: reading symbol ref from %s: %w", s.Name(), err)
		}
		ref := symref.Ref{
			Scope: symref.Scope(binary.BigEndian.Uint32(payload[0:4])),
			Index: int32(binary.BigEndian.Uint32(payload[4:8])),
		}
		return NewSymbolic(op, ref), nil
	case opcode.EOL:
		var payload [4]byte
		if err := readFull(s, payload[:]); err != nil {
			return Token{}, fmt.Errorf("token: reading line count from %s: %w", s.Name(), err)
		}
		return NewLineEnding(int32(binary.BigEndian.Uint32(payload[:]))), nil
	case opcode.EOS:
		return StreamEnding, nil
	default:
		return NewGeneric(op), nil
	}
}

// readFull reads exactly len(buf) bytes from s, looping over short reads
// from the underlying source.
func readFull(s iostream.Stream, buf []byte) error {
	for read := 0; read < len(buf); {
		n, err := s.Read(buf[read:])
		read += n
		if read == len(buf) {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("token: no progress reading from %s", s.Name())
		}
	}
	return nil
}

// ReturnTo rewinds s by exactly t's on-disk payload size, so the next
// [ReadFrom] call reproduces t. It is a no-op for [StreamEnding].
func (t Token) ReturnTo(s iostream.Stream) error {
	if t.kind == StreamEndingKind {
		return nil
	}
	return s.RewindBy(t.Size())
}
