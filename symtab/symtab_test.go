package symtab_test

import (
	"testing"

	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/symref"
	"github.com/dr8co/langkit/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeWalkReachesGlobalFromNestedScope(t *testing.T) {
	v := symtab.NewTableVector()
	global := v.Push(nil)
	inner := v.Push(global)

	_, ok := global.Define(&symbol.FromSource{Symbol: symbol.Symbol{Name: "x", Category: symbol.Variable}})
	require.True(t, ok)

	found, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x", found.Name)
	assert.Equal(t, symref.Global, found.Scope)
}

func TestDuplicateDefinitionRejectedLocally(t *testing.T) {
	global := symtab.NewTableVector().Push(nil)
	_, ok := global.Define(&symbol.FromSource{Symbol: symbol.Symbol{Name: "x"}})
	require.True(t, ok)

	_, ok = global.Define(&symbol.FromSource{Symbol: symbol.Symbol{Name: "x"}})
	assert.False(t, ok)
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	v := symtab.NewTableVector()
	global := v.Push(nil)
	inner := v.Push(global)

	global.Define(&symbol.FromSource{Symbol: symbol.Symbol{Name: "x"}})
	_, ok := inner.Define(&symbol.FromSource{Symbol: symbol.Symbol{Name: "x"}})
	assert.True(t, ok)
}

func TestTableVectorOutOfRangeFallsBackToGlobal(t *testing.T) {
	v := symtab.NewTableVector()
	global := v.Push(nil)

	got, ok := v.Table(symref.Scope(99))
	require.True(t, ok)
	assert.Same(t, global, got)
}

func TestVectorVectorResolveAcrossScopes(t *testing.T) {
	vv := symtab.NewVectorVector()
	global := vv.Push()
	inner := vv.Push()

	idx := global.Append(symbol.Recalled{Symbol: symbol.Symbol{Name: "g"}})
	parentRef := symref.Ref{Scope: global.Scope(), Index: idx}
	inner.Append(symbol.Recalled{Symbol: symbol.Symbol{Name: "i"}, Parent: parentRef})

	got, ok := inner.At(0)
	require.True(t, ok)

	resolved, ok := vv.Resolve(got.Parent)
	require.True(t, ok)
	assert.Equal(t, "g", resolved.Name)
}

func TestVectorVectorResolveNoneIsFalse(t *testing.T) {
	vv := symtab.NewVectorVector()
	vv.Push()
	_, ok := vv.Resolve(symref.NoneRef)
	assert.False(t, ok)
}
