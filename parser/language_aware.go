package parser

import "github.com/dr8co/langkit/lang"
import "github.com/dr8co/langkit/rule"

// Parser is implemented by a concrete grammar's driver so [LanguageAware.ParseUntil]
// can repeatedly invoke it without knowing its concrete type — the
// language-aware layer drives parse() polymorphically via this interface,
// since Go has no virtual methods to override.
type Parser interface {
	Parse()
}

// LanguageAware adds a language definition to [Base]: rule lookup by id,
// and the parseUntil driving loop.
type LanguageAware struct {
	*Base
	def    *lang.Definition
	parent *LanguageAware
}

// NewLanguageAware returns a root language-aware parser over base, using
// def to resolve rule ids.
func NewLanguageAware(base *Base, def *lang.Definition) *LanguageAware {
	return &LanguageAware{Base: base, def: def}
}

// LanguageAwareForSource returns a child language-aware parser over sc,
// borrowing parent's language definition.
func LanguageAwareForSource(parent *LanguageAware, sc Scanner) *LanguageAware {
	var baseParent *Base
	if parent != nil {
		baseParent = parent.Base
	}
	l := &LanguageAware{Base: BaseForSource(baseParent, sc), parent: parent}
	if parent != nil {
		l.def = parent.def
	}
	return l
}

// ReadyToParse extends [Base.ReadyToParse] with "a language definition is
// present, inherited from parent if necessary".
func (l *LanguageAware) ReadyToParse() bool {
	if !l.Base.ReadyToParse() {
		return false
	}
	if l.def == nil && l.parent != nil {
		l.def = l.parent.def
	}
	return l.def != nil
}

// Definition returns the language definition this parser resolves rules
// and opcodes against.
func (l *LanguageAware) Definition() *lang.Definition { return l.def }

// ResyncTo looks up id on the language definition and forwards to
// [Base.ResyncTo]. Unknown ids are a no-op.
func (l *LanguageAware) ResyncTo(id rule.ID) {
	if r, ok := l.def.SyntaxRule(id); ok {
		l.Base.ResyncTo(r)
	}
}

// SkipTo looks up id on the language definition and forwards to
// [Base.SkipTo]. Unknown ids are a no-op.
func (l *LanguageAware) SkipTo(id rule.ID, silenceIntervening bool) {
	if r, ok := l.def.SyntaxRule(id); ok {
		l.Base.SkipTo(r, silenceIntervening)
	}
}

// SkipOver looks up id on the language definition and forwards to
// [Base.SkipOver]. Unknown ids are a no-op.
func (l *LanguageAware) SkipOver(id rule.ID, silenceIntervening bool) {
	if r, ok := l.def.SyntaxRule(id); ok {
		l.Base.SkipOver(r, silenceIntervening)
	}
}

// ParseUntil repeatedly invokes p.Parse() until the current token is a
// member of the rule named by id:
//
//   - if the current token becomes the stream-ending sentinel and the
//     rule includes it, ParseUntil stops and returns successfully;
//   - if the current token becomes the stream-ending sentinel and the
//     rule does not include it, ParseUntil raises a fatal "unexpected
//     end of stream" error;
//   - otherwise, once the current token is a member of the rule,
//     ParseUntil stops without consuming it.
//
// It returns the number of errors logged by the inner Parse() calls, or
// -1 if id names no known rule.
func (l *LanguageAware) ParseUntil(p Parser, id rule.ID) (int, error) {
	r, ok := l.def.SyntaxRule(id)
	if !ok {
		return -1, nil
	}
	before := l.log.Errors()
	for {
		p.Parse()
		cur := l.Current()
		if cur.IsStreamEnding() {
			if r.Has(cur.Opcode) {
				return l.log.Errors() - before, nil
			}
			errs := l.log.Errors() - before
			err := l.log.Fatal(l.sourceName, l.LineNumber(), "unexpected end of stream")
			return errs, err
		}
		if r.Has(cur.Opcode) {
			return l.log.Errors() - before, nil
		}
		l.NextToken()
	}
}
