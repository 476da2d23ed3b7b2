// Package symbol implements named entities with scope, category, and a
// parent reference. Two variants exist because of the two-phase nature of
// the parsing pipeline: [FromSource] is built while reading text and
// keeps an in-memory pointer to its parent type; [Recalled] is
// reconstituted from the intermediate stream and keeps only a
// [symref.Ref] to its parent, since direct references don't survive
// serialization.
package symbol

import (
	"encoding/binary"
	"fmt"

	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/symref"
)

// Category classifies what a symbol names. Values below 0x100 are
// reserved by this package; client grammars define their own categories
// starting at [UserCategory]. [External] is bit-or'd on top of any base
// category.
type Category uint32

const (
	Undefined       Category = 0
	Type            Category = 1
	Literal         Category = 2
	Variable        Category = 3
	Subroutine      Category = 4
	StructureMember Category = 5
	Parameter       Category = 6

	// UserCategory is the first category value available to clients.
	UserCategory Category = 0x100

	// External is bit-or'd onto a base category to mark a symbol defined
	// outside the current translation unit.
	External Category = 0x80000000
)

// Base strips the [External] bit, returning the underlying category.
func (c Category) Base() Category { return c &^ External }

// IsExternal reports whether c carries the external bit.
func (c Category) IsExternal() bool { return c&External != 0 }

// Symbol is the field set shared by both [FromSource] and [Recalled]:
// its name, the scope it has been placed into ([symref.None] until
// placed), its category, and its index within that scope's vector.
type Symbol struct {
	Name     string
	Scope    symref.Scope
	Category Category
	Index    int32
}

// Ref returns the symbol's stable (scope, index) identity.
func (s Symbol) Ref() symref.Ref {
	return symref.Ref{Scope: s.Scope, Index: s.Index}
}

// FromSource is a symbol created while reading source text. Its parent
// type, if any, is a direct in-memory reference — resolvable only while
// the parse that created it is still live. The reference is
// conceptually weak: dropping the parent invalidates lookups through it,
// but does not dangle anything in the streaming format, which only ever
// stores a [symref.Ref].
type FromSource struct {
	Symbol
	Parent     *FromSource
	SourceName string
	SourceLine int
}

// CanAssignFrom reports whether a value of other's type may be assigned
// to a variable of s's type, walking both symbols' parent chains in
// lockstep one link at a time until either chain is exhausted or a
// matching pair of types is found. (The original implementation this is
// modeled on dereferenced Self.Parent twice instead of walking Self and
// Other in parallel; this is the corrected behavior.)
func (s *FromSource) CanAssignFrom(other *FromSource) bool {
	return s.walksCompatibleWith(other)
}

// ComparableWith reports whether s and other may be compared, using the
// same parent-chain walk as [FromSource.CanAssignFrom].
func (s *FromSource) ComparableWith(other *FromSource) bool {
	return s.walksCompatibleWith(other)
}

func (s *FromSource) walksCompatibleWith(other *FromSource) bool {
	for self, that := s, other; self != nil && that != nil; self, that = self.Parent, that.Parent {
		if self.Name == that.Name && self.Category.Base() == that.Category.Base() {
			return true
		}
	}
	return false
}

// Recalled is a symbol reconstituted from the intermediate stream. Its
// parent is named by a [symref.Ref] rather than a pointer, since direct
// references are not meaningful once a symbol has been serialized.
type Recalled struct {
	Symbol
	Parent symref.Ref
}

// WriteTo serializes a symbol record: name, scope, category, and — for a
// [Recalled]-producing write — the parent reference. Clients write the
// surrounding symbol-table structure themselves; this only fixes the
// per-symbol record layout from §6.
func WriteTo(s iostream.Stream, sym Symbol, parent symref.Ref) (int, error) {
	nameBytes := []byte(sym.Name)
	if len(nameBytes) > 0xFFFF {
		return 0, fmt.Errorf("symbol: name %q too long to serialize", sym.Name)
	}
	buf := make([]byte, 2+len(nameBytes)+4+4+4+4)
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(len(nameBytes)))
	off += 2
	off += copy(buf[off:], nameBytes)
	binary.BigEndian.PutUint32(buf[off:], uint32(sym.Scope))
	off += 4
	binary.BigEndian.PutUint32(buf[off:], uint32(sym.Category))
	off += 4
	binary.BigEndian.PutUint32(buf[off:], uint32(parent.Scope))
	off += 4
	binary.BigEndian.PutUint32(buf[off:], uint32(parent.Index))
	off += 4
	return s.Write(buf[:off])
}

// ReadRecalled deserializes a symbol record written by [WriteTo] into a
// [Recalled] symbol. index is the position this symbol will occupy in
// the caller's symtab.Vector (the library does not assign indices
// itself at recall time — that is the vector's job).
func ReadRecalled(s iostream.Stream, scope symref.Scope, index int32) (Recalled, error) {
	var lenBuf [2]byte
	if err := readFull(s, lenBuf[:]); err != nil {
		return Recalled{}, fmt.Errorf("symbol: reading name length: %w", err)
	}
	nameLen := int(binary.BigEndian.Uint16(lenBuf[:]))

	nameBuf := make([]byte, nameLen)
	if err := readFull(s, nameBuf); err != nil {
		return Recalled{}, fmt.Errorf("symbol: reading name: %w", err)
	}

	var rest [16]byte
	if err := readFull(s, rest[:]); err != nil {
		return Recalled{}, fmt.Errorf("symbol: reading scope/category/parent: %w", err)
	}

	return Recalled{
		Symbol: Symbol{
			Name:     string(nameBuf),
			Scope:    scope,
			Category: Category(binary.BigEndian.Uint32(rest[4:8])),
			Index:    index,
		},
		Parent: symref.Ref{
			Scope: symref.Scope(binary.BigEndian.Uint32(rest[8:12])),
			Index: int32(binary.BigEndian.Uint32(rest[12:16])),
		},
	}, nil
}

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
			return fmt.Errorf("symbol: no progress reading from %s", s.Name())
		}
	}
	return nil
}
