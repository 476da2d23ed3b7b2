// Package symtab implements the two symbol-table representations the
// parsing pipeline needs: a name-keyed [Table] (and its [TableVector])
// used while parsing, with lexical parent-scope lookup; and an
// index-keyed [Vector] (and its [VectorVector]) used while recalling
// symbols from an intermediate-code stream.
package symtab

import (
	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/symref"
)

// Table is a name-keyed scope. Lookup walks outward: the table itself
// first, then its parent chain, until the name is found or the chain is
// exhausted.
type Table struct {
	scope   symref.Scope
	parent  *Table
	entries map[string]*symbol.FromSource
	order   []*symbol.FromSource
}

// newTable returns an empty table at scope, optionally enclosed by
// parent.
func newTable(scope symref.Scope, parent *Table) *Table {
	return &Table{scope: scope, parent: parent, entries: make(map[string]*symbol.FromSource)}
}

// Scope returns the table's own scope index.
func (t *Table) Scope() symref.Scope { return t.scope }

// Parent returns the table's enclosing scope, or nil for the outermost
// (global) table.
func (t *Table) Parent() *Table { return t.parent }

// Define inserts sym under its own name. It reports false and leaves the
// table unchanged if a symbol of that name already exists locally in
// this table (parent scopes are not consulted for the duplicate check —
// shadowing an outer name is allowed).
func (t *Table) Define(sym *symbol.FromSource) (*symbol.FromSource, bool) {
	if _, exists := t.entries[sym.Name]; exists {
		return nil, false
	}
	sym.Scope = t.scope
	sym.Index = int32(len(t.order))
	t.entries[sym.Name] = sym
	t.order = append(t.order, sym)
	return sym, true
}

// LookupLocal finds a symbol named name defined directly in t, without
// consulting the parent chain.
func (t *Table) LookupLocal(name string) (*symbol.FromSource, bool) {
	sym, ok := t.entries[name]
	return sym, ok
}

// Lookup finds a symbol named name in t, falling back to t's parent
// chain if it is not found locally.
func (t *Table) Lookup(name string) (*symbol.FromSource, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if sym, ok := cur.entries[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Len returns the number of symbols defined directly in t.
func (t *Table) Len() int { return len(t.order) }

// Entries returns the symbols defined directly in t, in declaration
// order. The caller must not mutate the returned slice.
func (t *Table) Entries() []*symbol.FromSource { return t.order }

// TableVector is an ordered collection of [Table]s indexed by scope.
// Index 0 is always the global scope.
type TableVector struct {
	tables []*Table
}

// NewTableVector returns an empty table vector. Push must be called at
// least once (with a nil parent) to establish the global scope before
// any symbol is defined.
func NewTableVector() *TableVector {
	return &TableVector{}
}

// Push appends a new table enclosed by parent (nil for the global
// table) and returns it. Its scope is its index in the vector.
func (v *TableVector) Push(parent *Table) *Table {
	t := newTable(symref.Scope(len(v.tables)), parent)
	v.tables = append(v.tables, t)
	return t
}

// Table returns the table at scope. Out-of-range scopes fall back to
// the global table (scope 0); this is the single, intentional
// convention this library uses everywhere a scope index is validated —
// see SPEC_FULL.md's Open Question decisions.
func (v *TableVector) Table(scope symref.Scope) (*Table, bool) {
	if len(v.tables) == 0 {
		return nil, false
	}
	if scope < 0 || int(scope) >= len(v.tables) {
		return v.tables[0], true
	}
	return v.tables[scope], true
}

// InRange reports whether scope names an existing table.
func (v *TableVector) InRange(scope symref.Scope) bool {
	return scope >= 0 && int(scope) < len(v.tables)
}

// Len returns the number of tables pushed.
func (v *TableVector) Len() int { return len(v.tables) }
