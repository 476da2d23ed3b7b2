// Package demo is a client grammar exercising the full langkit pipeline:
// a small arithmetic-and-let-statement language, built as a language
// definition plus a symbol-aware parser on top of the core packages,
// rather than inside them — the "client subclass" the core library
// itself never ships.
package demo

import (
	"github.com/dr8co/langkit/lang"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/rule"
)

// Opcodes for the demo grammar's keywords and operators. Ordinary
// identifiers and number literals use the core package's Identifier and
// Number categories directly.
const (
	KwLet = opcode.UserBase + iota + 1
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpLParen
	OpRParen
	OpAssign
	OpSemicolon
)

// NewDefinition returns the demo grammar's language definition: its
// keyword/operator dictionary, its end-of-statement synchronization
// rule, and ASCII scanning policy matching the teacher's Monkey lexer.
func NewDefinition() *lang.Definition {
	dict := opcode.NewDictionary()
	dict.BindMany(
		[]string{"let", "+", "-", "*", "/", "(", ")", "=", ";"},
		[]opcode.Code{KwLet, OpPlus, OpMinus, OpStar, OpSlash, OpLParen, OpRParen, OpAssign, OpSemicolon},
	)

	rules := rule.NewSet()
	rules.Define(rule.EndStatement, rule.New("end-statement", OpSemicolon, opcode.EOS))
	rules.Define(RuleProgramEnd, rule.New("program-end", opcode.EOS))

	return lang.New(dict, rules, nil)
}

// RuleProgramEnd is the demo grammar's own rule id (distinct from the
// core package's well-known [rule.EndStatement]): the set a top-level
// ParseUntil loop stops at, containing only the stream-ending sentinel.
const RuleProgramEnd = rule.EndStatement + 1

// precedence levels for the expression grammar's operators, lowest
// first — the same precedence-climbing shape as the teacher's Pratt
// parser, keyed by opcode instead of token type.
const (
	lowest int = iota
	sum        // + -
	product    // * /
)

func precedenceOf(op opcode.Code) int {
	switch op {
	case OpPlus, OpMinus:
		return sum
	case OpStar, OpSlash:
		return product
	default:
		return lowest
	}
}
