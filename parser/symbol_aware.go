package parser

import (
	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/symref"
	"github.com/dr8co/langkit/symtab"
)

// SymbolAware adds a symbol table vector and a current-scope cursor to
// [LanguageAware]: entering and looking up named symbols, with the
// library's one built-in syntax error — duplicate identifier detection.
type SymbolAware struct {
	*LanguageAware
	symtab       *symtab.TableVector
	currentScope symref.Scope
	parent       *SymbolAware
}

// NewSymbolAware returns a root symbol-aware parser. Its symbol table
// vector is constructed lazily by [SymbolAware.ReadyToParse].
func NewSymbolAware(la *LanguageAware) *SymbolAware {
	return &SymbolAware{LanguageAware: la, currentScope: symref.None}
}

// SymbolAwareForSource returns a child symbol-aware parser over sc,
// borrowing parent's symbol table vector and current scope.
func SymbolAwareForSource(parent *SymbolAware, sc Scanner) *SymbolAware {
	var laParent *LanguageAware
	if parent != nil {
		laParent = parent.LanguageAware
	}
	s := &SymbolAware{LanguageAware: LanguageAwareForSource(laParent, sc), parent: parent, currentScope: symref.None}
	if parent != nil {
		s.symtab = parent.symtab
		s.currentScope = parent.currentScope
	}
	return s
}

// ReadyToParse extends [LanguageAware.ReadyToParse] with "a symbol table
// vector is present, inherited from parent if possible, otherwise
// constructed fresh with a single global table".
func (s *SymbolAware) ReadyToParse() bool {
	if !s.LanguageAware.ReadyToParse() {
		return false
	}
	if s.symtab == nil {
		if s.parent != nil && s.parent.symtab != nil {
			s.symtab = s.parent.symtab
			s.currentScope = s.parent.currentScope
		} else {
			s.symtab = symtab.NewTableVector()
			s.symtab.Push(nil)
			s.currentScope = symref.Global
		}
	}
	return s.symtab != nil
}

// CurrentScope returns the scope new symbols are entered into by
// [SymbolAware.EnterSymbol].
func (s *SymbolAware) CurrentScope() symref.Scope { return s.currentScope }

// EnterScope pushes a new table enclosed by the current scope's table
// and makes it current, returning its scope index.
func (s *SymbolAware) EnterScope() symref.Scope {
	parentTable, _ := s.symtab.Table(s.currentScope)
	t := s.symtab.Push(parentTable)
	s.currentScope = t.Scope()
	return s.currentScope
}

// ExitScope makes the current table's enclosing scope current again, or
// the global scope if there is none.
func (s *SymbolAware) ExitScope() {
	t, ok := s.symtab.Table(s.currentScope)
	if !ok {
		s.currentScope = symref.Global
		return
	}
	if parent := t.Parent(); parent != nil {
		s.currentScope = parent.Scope()
	} else {
		s.currentScope = symref.Global
	}
}

// EnterSymbolInto inserts sym into the table at scope. If a symbol of
// the same name already exists there, it logs the library's one
// built-in syntax error — naming sym's name and the source file/line of
// the existing declaration — and returns false without modifying the
// table. An out-of-range scope falls back to the global table, per
// [symtab.TableVector.Table].
func (s *SymbolAware) EnterSymbolInto(scope symref.Scope, sym *symbol.FromSource) (*symbol.FromSource, bool) {
	t, ok := s.symtab.Table(scope)
	if !ok {
		return nil, false
	}
	if existing, dup := t.LookupLocal(sym.Name); dup {
		s.log.Syntax(s.sourceName, s.LineNumber(),
			"duplicate identifier %q, previously declared at %s:%d",
			sym.Name, existing.SourceName, existing.SourceLine)
		return nil, false
	}
	return t.Define(sym)
}

// EnterSymbol inserts sym into the current scope.
func (s *SymbolAware) EnterSymbol(sym *symbol.FromSource) (*symbol.FromSource, bool) {
	return s.EnterSymbolInto(s.currentScope, sym)
}

// EnterGlobalSymbol inserts sym into the global scope regardless of the
// current scope.
func (s *SymbolAware) EnterGlobalSymbol(sym *symbol.FromSource) (*symbol.FromSource, bool) {
	return s.EnterSymbolInto(symref.Global, sym)
}

// NamedSymbolIn looks up name in the table at scope, walking outward to
// its parent chain. An out-of-range scope falls back to the global
// table.
func (s *SymbolAware) NamedSymbolIn(scope symref.Scope, name string) (*symbol.FromSource, bool) {
	t, ok := s.symtab.Table(scope)
	if !ok {
		return nil, false
	}
	return t.Lookup(name)
}

// SymbolNamed looks up name starting from the current scope.
func (s *SymbolAware) SymbolNamed(name string) (*symbol.FromSource, bool) {
	return s.NamedSymbolIn(s.currentScope, name)
}

// GlobalTable returns the session's global symbol table, for callers
// that need to enumerate every symbol placed at file scope (e.g.
// serializing it to an intermediate-code file).
func (s *SymbolAware) GlobalTable() *symtab.Table {
	t, _ := s.symtab.Table(symref.Global)
	return t
}
