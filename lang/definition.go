// Package lang aggregates an opcode dictionary and a syntax rule set into a
// single language definition consumed by the scanner and the parser driver.
package lang

import (
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/rule"
)

// Definition owns an opcode dictionary, a rule set, and an optional
// case-folding policy applied to identifiers before dictionary lookup
// (so e.g. a case-insensitive keyword like "IF" and "if" resolve to the
// same opcode).
type Definition struct {
	Dictionary *opcode.Dictionary
	Rules      *rule.Set

	// Fold, if non-nil, is applied to an identifier's raw text before it
	// is looked up in Dictionary. A nil Fold means the language is
	// case-sensitive.
	Fold func(string) string

	// The remaining fields are scanning policy consumed by
	// scanner.SourceScanner: which characters start/continue an
	// identifier, a digit, an operator, the maximum operator length to
	// try when matching Dictionary (longest match wins), and the quote
	// rune that delimits string literals. Zero values fall back to
	// ASCII-letter identifiers, ASCII digits, punctuation/symbol
	// operator characters, a 1-character max operator length, and '"'
	// as the string quote.
	IsIdentStart   func(r rune) bool
	IsIdentPart    func(r rune) bool
	IsDigit        func(r rune) bool
	IsOperatorChar func(r rune) bool
	MaxOperatorLen int
	Quote          rune
}

// New returns a language definition over dict and rules. fold may be nil.
func New(dict *opcode.Dictionary, rules *rule.Set, fold func(string) string) *Definition {
	return &Definition{Dictionary: dict, Rules: rules, Fold: fold, MaxOperatorLen: 1, Quote: '"'}
}

// StringQuote returns the rune that delimits string literals, defaulting
// to '"'.
func (d *Definition) StringQuote() rune {
	if d.Quote == 0 {
		return '"'
	}
	return d.Quote
}

// SyntaxRule returns the rule bound to id and whether it was found.
func (d *Definition) SyntaxRule(id rule.ID) (*rule.Rule, bool) {
	if d.Rules == nil {
		return nil, false
	}
	r := d.Rules.Rule(id)
	return r, r != nil
}

// Classify looks up the opcode a raw identifier/keyword text resolves to,
// applying the case-folding policy first. It returns 0 if text is not a
// keyword or operator known to the dictionary (i.e. it is a plain
// identifier).
func (d *Definition) Classify(text string) opcode.Code {
	if d.Fold != nil {
		text = d.Fold(text)
	}
	return d.Dictionary.Lookup(text)
}
