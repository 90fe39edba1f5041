// Package parser implements a hand-written recursive-descent parser with
// one-token lookahead. It never aborts: every missing or malformed
// construct is recorded on the shared ErrorHandler and patched with a
// best-effort placeholder so parsing always produces a complete Program.
package parser

import (
	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/token"
)

// Parser consumes tokens from a Lexer and builds a Program.
type Parser struct {
	lex     *lexer.Lexer
	handler *errs.Handler

	current token.Token
	peek    token.Token
}

// New returns a Parser reading from lex, reporting problems to handler.
func New(lex *lexer.Lexer, handler *errs.Handler) *Parser {
	p := &Parser{lex: lex, handler: handler}
	p.current = p.lex.NextToken()
	p.peek = p.lex.NextToken()
	return p
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) at(kind token.Kind) bool {
	return p.current.Kind == kind
}

// expect consumes and returns the current token if it has kind; otherwise
// it records a parser error at the current position, leaves the current
// token unconsumed, and returns an empty placeholder token of the expected
// kind, so the caller treats the required token as having been "virtually"
// inserted and carries on from here.
func (p *Parser) expect(kind token.Kind, errKind errs.ParserErrorKind, detail string) token.Token {
	if p.at(kind) {
		tok := p.current
		p.advance()
		return tok
	}
	p.handler.Add(&errs.ParserError{Kind: errKind, Detail: detail, Position: p.current.Position})
	return token.New(kind, "", p.current.Position)
}

// synchronize records an error and skips exactly one token, guaranteeing
// forward progress when the current token cannot start any known
// production.
func (p *Parser) synchronize(errKind errs.ParserErrorKind, detail string) {
	p.handler.Add(&errs.ParserError{Kind: errKind, Detail: detail, Position: p.current.Position})
	if !p.at(token.EOF) {
		p.advance()
	}
}

// Parse consumes the entire token stream and returns the resulting
// Program. It always returns a non-nil Program, possibly with errors
// recorded on the handler and dangling/placeholder sub-trees.
func (p *Parser) Parse() *ast.Program {
	program := ast.NewProgram()
	for !p.at(token.EOF) {
		fn := p.parseFunctionDef()
		if fn == nil {
			continue
		}
		if !program.AddFunction(fn) {
			p.handler.Add(&errs.ParserError{
				Kind:     errs.FunctionAlreadyExists,
				Detail:   fn.Name,
				Position: fn.Pos(),
			})
		}
	}
	return program
}

// parseFunctionDef parses `IDENT "(" parameters? ")" block`.
func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	pos := p.current.Position
	if !p.at(token.Identifier) {
		p.synchronize(errs.MissingFunctionName, "expected a function name")
		return nil
	}
	name := p.current.Lexeme
	p.advance()

	p.expect(token.LParen, errs.MissingOpeningBracket, "expected '(' after function name")
	var params []*ast.Parameter
	seen := make(map[string]bool)
	if !p.at(token.RParen) {
		params = append(params, p.parseParameter(seen))
		for p.at(token.Comma) {
			p.advance()
			params = append(params, p.parseParameter(seen))
		}
	}
	p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after parameter list")

	block := p.parseBlock()

	return &ast.FunctionDef{
		Base: ast.At(pos), Name: name, Parameters: params, Block: block,
	}
}

func (p *Parser) parseParameter(seen map[string]bool) *ast.Parameter {
	if !p.at(token.Identifier) {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingParameter, Position: p.current.Position})
		return &ast.Parameter{Name: "", IsOptional: false}
	}
	name := p.current.Lexeme
	p.advance()
	if seen[name] {
		p.handler.Add(&errs.ParserError{Kind: errs.ParameterAlreadyExists, Detail: name, Position: p.current.Position})
	}
	seen[name] = true

	param := &ast.Parameter{Name: name}
	if p.at(token.Optional) {
		p.advance()
		param.IsOptional = true
		if p.at(token.Assign) {
			p.advance()
			param.Default = p.parseDefaultValue()
		}
	}
	return param
}

// parseDefaultValue parses the `literalOrIdentAccess` production used for
// parameter defaults: a literal, or an access-expression chain.
func (p *Parser) parseDefaultValue() ast.Expr {
	switch p.current.Kind {
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral,
		token.KeywordTrue, token.KeywordFalse, token.KeywordNull:
		return p.parseLiteral()
	case token.Identifier:
		return p.parseAccessExpr()
	default:
		p.handler.Add(&errs.ParserError{Kind: errs.InvalidParameterValue, Position: p.current.Position})
		return &ast.NullLiteral{Base: ast.At(p.current.Position)}
	}
}
