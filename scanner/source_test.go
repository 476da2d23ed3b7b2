package scanner_test

import (
	"testing"

	"github.com/dr8co/langkit/lang"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/rule"
	"github.com/dr8co/langkit/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kwLet = opcode.UserBase + iota + 1
	opPlus
	opAssign
	opLParen
	opRParen
)

func testDefinition() *lang.Definition {
	dict := opcode.NewDictionary()
	dict.Bind("let", kwLet)
	dict.Bind("+", opPlus)
	dict.Bind("=", opAssign)
	dict.Bind("(", opLParen)
	dict.Bind(")", opRParen)
	return lang.New(dict, rule.NewSet(), nil)
}

func TestSourceScannerClassifiesKeyword(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let", "test")
	assert.Equal(t, opcode.Code(kwLet), sc.Current().Opcode)
	sc.Next()
	assert.True(t, sc.Current().IsStreamEnding())
}

func TestSourceScannerClassifiesPlainIdentifierAsSymbolic(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "total", "test")
	tok := sc.Current()
	assert.Equal(t, opcode.Identifier, tok.Category())
	assert.Equal(t, "total", tok.Text())
	ref, ok := tok.SymbolRef()
	require.True(t, ok)
	assert.True(t, ref.IsNone())
}

func TestSourceScannerLexesNumberLiteral(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "42", "test")
	tok := sc.Current()
	assert.Equal(t, opcode.Number, tok.Category())
	assert.Equal(t, "42", tok.Text())
}

func TestSourceScannerLexesQuotedString(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), `"hi there"`, "test")
	tok := sc.Current()
	assert.Equal(t, opcode.String, tok.Category())
	assert.Equal(t, "hi there", tok.Text())
}

func TestSourceScannerHandlesEscapesInString(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), `"a\nb"`, "test")
	assert.Equal(t, "a\nb", sc.Current().Text())
}

func TestSourceScannerLexesOperatorsAndParens(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "(+)", "test")
	assert.Equal(t, opcode.Code(opLParen), sc.Current().Opcode)
	sc.Next()
	assert.Equal(t, opcode.Code(opPlus), sc.Current().Opcode)
	sc.Next()
	assert.Equal(t, opcode.Code(opRParen), sc.Current().Opcode)
}

func TestSourceScannerDiscardsWhitespaceByDefault(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let  total", "test")
	assert.Equal(t, opcode.Code(kwLet), sc.Current().Opcode)
	sc.Next()
	assert.Equal(t, opcode.Identifier, sc.Current().Category())
}

func TestSourceScannerConsolidatesWhitespaceRun(t *testing.T) {
	// NewSourceScanner always loads its first token under DefaultFlags
	// (which discards whitespace), so exercise consolidation on the
	// *second* token, after switching policy.
	sc := scanner.NewSourceScanner(testDefinition(), "a   b", "test")
	assert.Equal(t, opcode.Identifier, sc.Current().Category())

	sc.SetFlags(scanner.ConsolidateWhitespace)
	sc.Next()
	assert.Equal(t, opcode.Space, sc.Current().Category())

	sc.Next()
	assert.Equal(t, opcode.Identifier, sc.Current().Category())
	assert.Equal(t, "b", sc.Current().Text())
}

func TestSourceScannerConsolidatesLineEndings(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let\n\n\nlet", "test")
	assert.Equal(t, opcode.Code(kwLet), sc.Current().Opcode)

	sc.SetFlags(scanner.ConsolidateLineEndings)
	sc.Next()
	count, ok := sc.Current().LineCount()
	require.True(t, ok)
	assert.Equal(t, int32(3), count)

	sc.Next()
	assert.Equal(t, opcode.Code(kwLet), sc.Current().Opcode)
}

func TestSourceScannerLineNumberAdvancesAcrossLines(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let\nlet\nlet", "test")
	sc.SetFlags(0)
	assert.Equal(t, 1, sc.LineNumber())
	sc.Next() // line ending
	assert.Equal(t, 2, sc.LineNumber())
	sc.Next() // let
	sc.Next() // line ending
	assert.Equal(t, 3, sc.LineNumber())
}

func TestSourceScannerPeekDoesNotAdvance(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let total", "test")
	sc.SetFlags(0)
	peeked, ok := sc.Peek()
	require.True(t, ok)
	assert.Equal(t, opcode.Space, peeked.Opcode)
	assert.Equal(t, opcode.Code(kwLet), sc.Current().Opcode)
}

func TestSourceScannerEOSIsSticky(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let", "test")
	sc.Next()
	assert.True(t, sc.Current().IsStreamEnding())
	sc.Next()
	assert.True(t, sc.Current().IsStreamEnding())
	assert.False(t, sc.Continues())
}

func TestSourceScannerSourceName(t *testing.T) {
	sc := scanner.NewSourceScanner(testDefinition(), "let", "demo.lk")
	assert.Equal(t, "demo.lk", sc.SourceName())
}
