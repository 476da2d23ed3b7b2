package demo

import (
	"fmt"

	"github.com/dr8co/langkit/errlog"
	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/parser"
	"github.com/dr8co/langkit/rule"
	"github.com/dr8co/langkit/scanner"
	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/token"
)

// Parser parses the demo grammar — let-declarations and arithmetic
// expression statements — driving every core primitive end to end:
// scanning, symbol placement and lookup, resync on syntax error, and
// writing resolved tokens to an output intermediate-code stream.
type Parser struct {
	*parser.SymbolAware
	out iostream.Stream
}

// New returns a root demo parser over src. out, if non-nil, receives
// every token the parse accepts, resolved to its final symbol reference.
func New(src, sourceName string, out iostream.Stream, log *errlog.Log) *Parser {
	def := NewDefinition()
	sc := scanner.NewSourceScanner(def, src, sourceName)
	base := parser.NewBase(sc, log, sourceName)
	la := parser.NewLanguageAware(base, def)
	sa := parser.NewSymbolAware(la)
	sa.ReadyToParse()
	return &Parser{SymbolAware: sa, out: out}
}

// Run parses the entirety of src as a sequence of statements, returning
// the parser (so callers can inspect its symbol table afterward), the
// number of errors logged, and a fatal error if one terminated the
// parse early.
func Run(src, sourceName string, out iostream.Stream, log *errlog.Log) (*Parser, int, error) {
	p := New(src, sourceName, out, log)
	return run(p)
}

// Continue parses src as a new chunk of the same session prev belongs
// to, reusing its symbol table and current scope so a let-declaration
// entered in one chunk is visible in the next — the REPL's persistent
// environment, built on [parser.SymbolAwareForSource] borrowing rather
// than a fresh table per line.
func Continue(prev *Parser, src, sourceName string, out iostream.Stream) (*Parser, int, error) {
	def := NewDefinition()
	sc := scanner.NewSourceScanner(def, src, sourceName)
	sa := parser.SymbolAwareForSource(prev.SymbolAware, sc)
	p := &Parser{SymbolAware: sa, out: out}
	return run(p)
}

func run(p *Parser) (*Parser, int, error) {
	if !p.ReadyToParse() {
		return p, 0, fmt.Errorf("demo: parser not ready")
	}
	errs, err := p.LanguageAware.ParseUntil(p, RuleProgramEnd)
	return p, errs, err
}

func (p *Parser) emit(tok token.Token) {
	if p.out == nil {
		return
	}
	_, _ = tok.WriteTo(p.out)
}

// Parse parses a single statement, leaving its terminating ';' as the
// current token, and does nothing at end of stream. It satisfies
// [parser.Parser] so [parser.LanguageAware.ParseUntil] can drive it:
// ParseUntil's own one-token advance moves past the ';' to the next
// statement.
func (p *Parser) Parse() {
	if p.Current().IsStreamEnding() {
		return
	}
	if p.Current().Opcode == KwLet {
		p.parseLetStatement()
		return
	}
	p.parseExpressionStatement()
}

func (p *Parser) parseLetStatement() {
	p.emit(p.Current())
	p.NextToken()

	if p.Current().Category() != opcode.Identifier {
		p.Log().Syntax(p.SourceName(), p.LineNumber(), "expected identifier after 'let'")
		p.resyncToEndStatement()
		return
	}
	nameTok := p.Current()
	sym := &symbol.FromSource{
		Symbol:     symbol.Symbol{Name: nameTok.Text(), Category: symbol.Variable},
		SourceName: p.SourceName(),
		SourceLine: p.LineNumber(),
	}
	if inserted, ok := p.EnterSymbol(sym); ok {
		nameTok.SetSymbolRef(inserted.Ref())
	}
	p.emit(nameTok)
	p.NextToken()

	if p.Current().Opcode != OpAssign {
		p.Log().Syntax(p.SourceName(), p.LineNumber(), "expected '=' in let statement")
		p.resyncToEndStatement()
		return
	}
	p.emit(p.Current())
	p.NextToken()

	p.parseExpression(lowest)

	if p.Current().Opcode != OpSemicolon {
		p.Log().Syntax(p.SourceName(), p.LineNumber(), "expected ';' to end statement")
		p.resyncToEndStatement()
		return
	}
	p.emit(p.Current())
}

func (p *Parser) parseExpressionStatement() {
	p.parseExpression(lowest)
	if p.Current().Opcode == OpSemicolon {
		p.emit(p.Current())
		return
	}
	if !p.Current().IsStreamEnding() {
		p.Log().Syntax(p.SourceName(), p.LineNumber(), "expected ';' to end statement")
		p.resyncToEndStatement()
	}
}

// resyncToEndStatement skips to the next end-of-statement token without
// logging: every call site has already logged its own specific syntax
// error, so this only needs [parser.LanguageAware.SkipTo]'s silent skip,
// not [parser.LanguageAware.ResyncTo]'s redundant generic one.
func (p *Parser) resyncToEndStatement() {
	p.LanguageAware.SkipTo(rule.EndStatement, true)
}

func (p *Parser) parseExpression(minPrec int) {
	p.parsePrefix()
	for !p.Current().IsStreamEnding() && precedenceOf(p.Current().Opcode) > minPrec {
		op := p.Current()
		p.emit(op)
		p.NextToken()
		p.parseExpression(precedenceOf(op.Opcode))
	}
}

func (p *Parser) parsePrefix() {
	cur := p.Current()
	switch {
	case cur.Opcode == OpMinus:
		p.emit(cur)
		p.NextToken()
		p.parsePrefix()
	case cur.Opcode == OpLParen:
		p.emit(cur)
		p.NextToken()
		p.parseExpression(lowest)
		if p.Current().Opcode == OpRParen {
			p.emit(p.Current())
			p.NextToken()
		} else {
			p.Log().Syntax(p.SourceName(), p.LineNumber(), "expected ')'")
		}
	case cur.Category() == opcode.Number:
		p.emit(cur)
		p.NextToken()
	case cur.Category() == opcode.Identifier:
		if sym, ok := p.SymbolNamed(cur.Text()); ok {
			cur.SetSymbolRef(sym.Ref())
		} else {
			p.Log().Syntax(p.SourceName(), p.LineNumber(), "undeclared identifier %q", cur.Text())
		}
		p.emit(cur)
		p.NextToken()
	default:
		p.Log().Syntax(p.SourceName(), p.LineNumber(), "unexpected token in expression")
		p.NextToken()
	}
}
