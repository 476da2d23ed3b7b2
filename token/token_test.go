package token_test

import (
	"bytes"
	"testing"

	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/symref"
	"github.com/dr8co/langkit/token"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStream() *iostream.Buffered {
	return iostream.NewBuffered("test", &bytes.Buffer{})
}

const plusOp = opcode.UserBase + 1 // arbitrary non-symbolic, non-EOL opcode

func TestGenericTokenRoundTrip(t *testing.T) {
	s := newStream()
	tok := token.NewGeneric(plusOp)

	_, err := tok.WriteTo(s)
	require.NoError(t, err)

	got, err := token.ReadFrom(s)
	require.NoError(t, err)
	assert.Equal(t, plusOp, got.Opcode)
	assert.Equal(t, token.Generic, got.Kind())
}

func TestSymbolicTokenRoundTrip(t *testing.T) {
	s := newStream()
	ref := symref.Ref{Scope: 3, Index: 42}
	tok := token.NewSymbolic(opcode.Identifier, ref)

	_, err := tok.WriteTo(s)
	require.NoError(t, err)

	got, err := token.ReadFrom(s)
	require.NoError(t, err)
	assert.Equal(t, opcode.Identifier, got.Opcode)

	gotRef, ok := got.SymbolRef()
	require.True(t, ok)
	if diff := cmp.Diff(ref, gotRef); diff != "" {
		t.Errorf("symbol ref mismatch (-want +got):\n%s", diff)
	}
}

func TestLineEndingTokenRoundTrip(t *testing.T) {
	s := newStream()
	tok := token.NewLineEnding(5)

	_, err := tok.WriteTo(s)
	require.NoError(t, err)

	got, err := token.ReadFrom(s)
	require.NoError(t, err)
	assert.Equal(t, opcode.EOL, got.Opcode)

	count, ok := got.LineCount()
	require.True(t, ok)
	assert.Equal(t, int32(5), count)
}

func TestStreamEndingSentinelOnExhaustedStream(t *testing.T) {
	s := newStream()
	tok := token.NewGeneric(plusOp)
	_, err := tok.WriteTo(s)
	require.NoError(t, err)

	first, err := token.ReadFrom(s)
	require.NoError(t, err)
	assert.False(t, first.IsStreamEnding())

	second, err := token.ReadFrom(s)
	require.NoError(t, err)
	assert.True(t, second.IsStreamEnding())
	assert.Equal(t, opcode.EOS, second.Opcode)
}

func TestReturnToIsIdempotent(t *testing.T) {
	s := newStream()
	ref := symref.Ref{Scope: 0, Index: 7}
	tok := token.NewSymbolic(opcode.Number, ref)
	_, err := tok.WriteTo(s)
	require.NoError(t, err)

	read1, err := token.ReadFrom(s)
	require.NoError(t, err)

	require.NoError(t, read1.ReturnTo(s))

	read2, err := token.ReadFrom(s)
	require.NoError(t, err)

	assert.Equal(t, read1.Opcode, read2.Opcode)
	ref1, _ := read1.SymbolRef()
	ref2, _ := read2.SymbolRef()
	assert.Equal(t, ref1, ref2)
}

func TestStreamEndingReturnToIsNoOp(t *testing.T) {
	s := newStream()
	require.NoError(t, token.StreamEnding.ReturnTo(s))
}

func TestCategoryMaskInvariant(t *testing.T) {
	tok := token.NewSymbolic(opcode.String, symref.Ref{})
	assert.Equal(t, opcode.String, tok.Category())
}

func TestSilencedNotPersisted(t *testing.T) {
	s := newStream()
	tok := token.NewGeneric(plusOp)
	tok.SetSilenced(true)

	_, err := tok.WriteTo(s)
	require.NoError(t, err)

	got, err := token.ReadFrom(s)
	require.NoError(t, err)
	assert.False(t, got.Silenced)
}

func TestSetSilencedReturnsPreviousValue(t *testing.T) {
	tok := token.NewGeneric(plusOp)
	prev := tok.SetSilenced(true)
	assert.False(t, prev)
	prev = tok.SetSilenced(false)
	assert.True(t, prev)
}

func TestTokenListPushPopAt(t *testing.T) {
	var l token.List
	a := token.NewGeneric(plusOp)
	b := token.NewGeneric(opcode.EOS)

	l.Push(a)
	l.Push(b)
	assert.Equal(t, 2, l.Len())

	at0, ok := l.At(0)
	require.True(t, ok)
	assert.Equal(t, a.Opcode, at0.Opcode)

	// Clamped lookups.
	atHigh, ok := l.At(99)
	require.True(t, ok)
	assert.Equal(t, b.Opcode, atHigh.Opcode)

	popped, ok := l.Pop()
	require.True(t, ok)
	assert.Equal(t, b.Opcode, popped.Opcode)
	assert.Equal(t, 1, l.Len())

	_, ok = l.Pop()
	require.True(t, ok)
	_, ok = l.Pop()
	assert.False(t, ok)
}
