// Package symref defines the stable cross-stream identity of a symbol: a
// (scope, index) pair. It is split out from the symbol and token packages
// because both need it — a [Ref] is what a symbolic token carries, and
// what a recalled symbol's parent is stored as.
package symref

// Scope indexes into a symbol table vector. Global is the outermost
// table; None marks "not yet placed".
type Scope int32

const (
	// None is the scope of a symbol that has not been placed into any
	// table yet.
	None Scope = -1

	// Global is the outermost table's scope index.
	Global Scope = 0
)

// Ref is the stable identity of a symbol once it has been placed into a
// table: the scope it lives in, and its index within that scope's vector.
// It survives serialization to the intermediate code stream, unlike an
// in-memory pointer.
type Ref struct {
	Scope Scope
	Index int32
}

// IsNone reports whether r refers to no symbol at all.
func (r Ref) IsNone() bool {
	return r.Scope == None && r.Index == -1
}

// NoneRef is the "no symbol" reference (scope None, index -1). It is not
// the zero Ref, which names index 0 of the global scope.
var NoneRef = Ref{Scope: None, Index: -1}
