package symtab

import (
	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/symref"
)

// Vector is an index-keyed reconstitution of one scope's symbols, built
// while reading an intermediate-code file. Unlike [Table] it is not
// name-keyed: a recalled symbol's parent names its parent by
// (scope, index) into a [VectorVector], not by name.
type Vector struct {
	scope   symref.Scope
	symbols []symbol.Recalled
}

// newVector returns an empty vector for scope.
func newVector(scope symref.Scope) *Vector {
	return &Vector{scope: scope}
}

// Scope returns the vector's own scope index.
func (v *Vector) Scope() symref.Scope { return v.scope }

// Append adds sym to the vector, assigning it the next index, and
// returns that index.
func (v *Vector) Append(sym symbol.Recalled) int32 {
	idx := int32(len(v.symbols))
	sym.Scope = v.scope
	sym.Index = idx
	v.symbols = append(v.symbols, sym)
	return idx
}

// At returns the symbol at index.
func (v *Vector) At(index int32) (symbol.Recalled, bool) {
	if index < 0 || int(index) >= len(v.symbols) {
		return symbol.Recalled{}, false
	}
	return v.symbols[index], true
}

// Len returns the number of symbols held.
func (v *Vector) Len() int { return len(v.symbols) }

// VectorVector is an ordered collection of [Vector]s indexed by scope,
// the recall-time counterpart of [TableVector].
type VectorVector struct {
	vectors []*Vector
}

// NewVectorVector returns an empty vector-of-vectors.
func NewVectorVector() *VectorVector {
	return &VectorVector{}
}

// Push appends a new, empty vector and returns it. Its scope is its
// index in the collection.
func (vv *VectorVector) Push() *Vector {
	v := newVector(symref.Scope(len(vv.vectors)))
	vv.vectors = append(vv.vectors, v)
	return v
}

// Vector returns the vector at scope, falling back to the global vector
// (scope 0) for out-of-range scopes, matching [TableVector.Table]'s
// convention.
func (vv *VectorVector) Vector(scope symref.Scope) (*Vector, bool) {
	if len(vv.vectors) == 0 {
		return nil, false
	}
	if scope < 0 || int(scope) >= len(vv.vectors) {
		return vv.vectors[0], true
	}
	return vv.vectors[scope], true
}

// Resolve follows ref across the vector-of-vectors, returning the
// symbol it names.
func (vv *VectorVector) Resolve(ref symref.Ref) (symbol.Recalled, bool) {
	if ref.IsNone() {
		return symbol.Recalled{}, false
	}
	v, ok := vv.Vector(ref.Scope)
	if !ok {
		return symbol.Recalled{}, false
	}
	return v.At(ref.Index)
}

// Len returns the number of vectors pushed.
func (vv *VectorVector) Len() int { return len(vv.vectors) }
