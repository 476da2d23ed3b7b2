package scanner_test

import (
	"bytes"
	"testing"

	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/scanner"
	"github.com/dr8co/langkit/symref"
	"github.com/dr8co/langkit/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identOp = opcode.UserBase + 1

func writeAll(t *testing.T, s iostream.Stream, toks ...token.Token) {
	t.Helper()
	for _, tok := range toks {
		_, err := tok.WriteTo(s)
		require.NoError(t, err)
	}
}

func TestBinaryScannerDiscardsWhitespaceByDefault(t *testing.T) {
	s := iostream.NewBuffered("test", &bytes.Buffer{})
	writeAll(t, s,
		token.NewGeneric(opcode.Space),
		token.NewSymbolic(opcode.Identifier, symref.Ref{Index: 0}),
		token.NewGeneric(opcode.Space),
	)

	sc := scanner.NewBinaryScanner(s)
	assert.Equal(t, opcode.Identifier, sc.Current().Opcode)

	sc.Next()
	assert.True(t, sc.Current().IsStreamEnding())
	assert.False(t, sc.Continues())
}

func TestBinaryScannerConsolidatesWhitespaceRun(t *testing.T) {
	s := iostream.NewBuffered("test", &bytes.Buffer{})
	writeAll(t, s,
		token.NewGeneric(opcode.Space),
		token.NewGeneric(opcode.Space),
		token.NewGeneric(opcode.Space),
		token.NewSymbolic(opcode.Identifier, symref.Ref{}),
	)

	sc := scanner.NewBinaryScannerWithFlags(s, scanner.ConsolidateWhitespace)
	assert.Equal(t, opcode.Space, sc.Current().Category())

	sc.Next()
	assert.Equal(t, opcode.Identifier, sc.Current().Opcode)
}

func TestBinaryScannerConsolidatesLineEndings(t *testing.T) {
	s := iostream.NewBuffered("test", &bytes.Buffer{})
	writeAll(t, s,
		token.NewLineEnding(1),
		token.NewLineEnding(1),
		token.NewLineEnding(1),
	)

	sc := scanner.NewBinaryScannerWithFlags(s, scanner.ConsolidateLineEndings)
	count, ok := sc.Current().LineCount()
	require.True(t, ok)
	assert.Equal(t, int32(3), count)
	assert.Equal(t, 4, sc.LineNumber()) // 1 + 3
}

func TestBinaryScannerLineNumberAccumulatesWithoutConsolidation(t *testing.T) {
	s := iostream.NewBuffered("test", &bytes.Buffer{})
	writeAll(t, s,
		token.NewLineEnding(1),
		token.NewLineEnding(1),
		token.NewGeneric(identOp),
	)

	sc := scanner.NewBinaryScannerWithFlags(s, 0)
	assert.Equal(t, 2, sc.LineNumber())
	sc.Next()
	assert.Equal(t, 3, sc.LineNumber())
	sc.Next()
	assert.Equal(t, identOp, sc.Current().Opcode)
}

func TestBinaryScannerPeekDoesNotAdvance(t *testing.T) {
	s := iostream.NewBuffered("test", &bytes.Buffer{})
	writeAll(t, s, token.NewGeneric(identOp), token.NewGeneric(opcode.EOS))
	// s also holds a generic EOS-opcode token; the scanner below reads s2,
	// which holds only the first token.
	s2 := iostream.NewBuffered("test2", &bytes.Buffer{})
	writeAll(t, s2, token.NewGeneric(identOp))

	sc := scanner.NewBinaryScannerWithFlags(s2, 0)
	peeked, err := sc.Peek()
	require.NoError(t, err)
	assert.True(t, peeked.IsStreamEnding())
	// current token unaffected by Peek
	assert.Equal(t, identOp, sc.Current().Opcode)
}

func TestBinaryScannerEOSIsSticky(t *testing.T) {
	s := iostream.NewBuffered("test", &bytes.Buffer{})
	writeAll(t, s, token.NewGeneric(identOp))

	sc := scanner.NewBinaryScannerWithFlags(s, 0)
	sc.Next()
	assert.True(t, sc.Current().IsStreamEnding())
	sc.Next()
	assert.True(t, sc.Current().IsStreamEnding())
	assert.False(t, sc.Continues())
}
