// Package parser implements the parser driver: a base layer providing
// iteration, error logging, and rule-based synchronization primitives;
// a language-aware layer adding rule lookup by id and the parseUntil
// loop; and a symbol-aware layer adding scope tracking and duplicate
// detection. Client grammars embed [SymbolAware] (or a lower layer, if
// they need less) and implement their own Parse.
package parser

import (
	"github.com/dr8co/langkit/errlog"
	"github.com/dr8co/langkit/rule"
	"github.com/dr8co/langkit/token"
)

// Scanner is the minimal surface the parser driver pulls tokens from.
// Both [scanner.BinaryScanner] and [scanner.SourceScanner] satisfy it.
type Scanner interface {
	Current() token.Token
	Next()
	LineNumber() int
	Continues() bool
}

// Base drives a single scanner: it tracks the current token, a lookback
// buffer of previously-seen tokens, and an error log, and provides the
// rule-based resync/skip primitives every parser layer builds on.
type Base struct {
	scanner    Scanner
	current    token.Token
	tokens     *token.List
	log        *errlog.Log
	sourceName string
	parent     *Base
}

// NewBase returns a root parser driver over sc, owning log. Its current
// token is loaded immediately from sc.
func NewBase(sc Scanner, log *errlog.Log, sourceName string) *Base {
	b := &Base{scanner: sc, tokens: &token.List{}, log: log, sourceName: sourceName}
	if sc != nil {
		b.current = sc.Current()
	}
	return b
}

// BaseForSource returns a child parser driver over sc, borrowing parent's
// error log and source name rather than owning its own.
func BaseForSource(parent *Base, sc Scanner) *Base {
	b := &Base{scanner: sc, tokens: &token.List{}, parent: parent}
	if parent != nil {
		b.log = parent.log
		b.sourceName = parent.sourceName
	}
	if sc != nil {
		b.current = sc.Current()
	}
	return b
}

// ReadyToParse reports whether b has everything the base layer needs: a
// scanner and an error log (borrowed from parent if not set directly).
func (b *Base) ReadyToParse() bool {
	if b.scanner == nil {
		return false
	}
	if b.log == nil && b.parent != nil {
		b.log = b.parent.log
	}
	return b.log != nil
}

// Current returns the current token.
func (b *Base) Current() token.Token { return b.current }

// LineNumber returns the scanner's current line number.
func (b *Base) LineNumber() int {
	if b.scanner == nil {
		return 0
	}
	return b.scanner.LineNumber()
}

// SourceName returns the name this parser reports in diagnostics.
func (b *Base) SourceName() string { return b.sourceName }

// Log returns the error log this parser reports to.
func (b *Base) Log() *errlog.Log { return b.log }

// Continues reports whether the underlying scanner still has tokens.
func (b *Base) Continues() bool {
	return b.scanner != nil && b.scanner.Continues()
}

// NextToken advances past the current token, pushing it onto the
// lookback buffer, and returns the new current token.
func (b *Base) NextToken() token.Token {
	b.tokens.Push(b.current)
	if b.scanner != nil {
		b.scanner.Next()
		b.current = b.scanner.Current()
	}
	return b.current
}

// PreviousToken returns the most recently superseded token, without
// removing it from the lookback buffer.
func (b *Base) PreviousToken() (token.Token, bool) {
	if b.tokens.Len() == 0 {
		return token.Token{}, false
	}
	return b.tokens.At(b.tokens.Len() - 1)
}

func isPartOf(tok token.Token, r *rule.Rule) bool {
	return r.Has(tok.Opcode)
}

// ResyncTo logs a syntax error at the current token's position, then
// advances (silencing every skipped token) until the current token is a
// member of r or the stream ends.
func (b *Base) ResyncTo(r *rule.Rule) {
	b.log.Syntax(b.sourceName, b.LineNumber(), "syntax error near token %#x", uint32(b.current.Opcode))
	b.SkipTo(r, true)
}

// SkipTo advances (optionally silencing every skipped token) until the
// current token is a member of r or the stream ends. Unlike [ResyncTo]
// it does not log anything.
func (b *Base) SkipTo(r *rule.Rule, silenceIntervening bool) {
	for !b.current.IsStreamEnding() && !isPartOf(b.current, r) {
		if silenceIntervening {
			b.current.SetSilenced(true)
		}
		b.NextToken()
	}
}

// SkipOver advances (optionally silencing every skipped token) while the
// current token remains a member of r.
func (b *Base) SkipOver(r *rule.Rule, silenceIntervening bool) {
	for !b.current.IsStreamEnding() && isPartOf(b.current, r) {
		if silenceIntervening {
			b.current.SetSilenced(true)
		}
		b.NextToken()
	}
}
