package lang_test

import (
	"strings"
	"testing"

	"github.com/dr8co/langkit/lang"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUsesFold(t *testing.T) {
	dict := opcode.NewDictionary()
	dict.Bind("if", opcode.UserBase+1)

	d := lang.New(dict, rule.NewSet(), strings.ToLower)
	assert.Equal(t, opcode.UserBase+1, d.Classify("IF"))
	assert.Equal(t, opcode.Code(0), d.Classify("else"))
}

func TestClassifyWithoutFoldIsCaseSensitive(t *testing.T) {
	dict := opcode.NewDictionary()
	dict.Bind("if", opcode.UserBase+1)

	d := lang.New(dict, rule.NewSet(), nil)
	assert.Equal(t, opcode.Code(0), d.Classify("IF"))
	assert.Equal(t, opcode.UserBase+1, d.Classify("if"))
}

func TestSyntaxRuleLookup(t *testing.T) {
	rules := rule.NewSet()
	r := rule.New("endStatement", opcode.EOS)
	rules.Define(rule.EndStatement, r)

	d := lang.New(opcode.NewDictionary(), rules, nil)

	got, ok := d.SyntaxRule(rule.EndStatement)
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = d.SyntaxRule(rule.ID(999))
	assert.False(t, ok)
}
