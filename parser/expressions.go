package parser

import (
	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/token"
)

var binOpOf = map[token.Kind]ast.BinaryOp{
	token.Plus:    ast.OpAdd,
	token.Minus:   ast.OpSub,
	token.Star:    ast.OpMul,
	token.Slash:   ast.OpDiv,
	token.Percent: ast.OpMod,
	token.Eq:      ast.OpEq,
	token.NotEq:   ast.OpNotEq,
	token.Gt:      ast.OpGt,
	token.GtEq:    ast.OpGtEq,
	token.Lt:      ast.OpLt,
	token.LtEq:    ast.OpLtEq,
}

// parseExpr is the entry point of the expression grammar: `expr := orExpr`.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.Or) {
		pos := p.current.Position
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseCmp()
	for p.at(token.And) {
		pos := p.current.Position
		p.advance()
		right := p.parseCmp()
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseCmp() ast.Expr {
	left := p.parseAdd()
	for p.at(token.Eq) || p.at(token.NotEq) || p.at(token.Gt) || p.at(token.GtEq) || p.at(token.Lt) || p.at(token.LtEq) {
		opTok := p.current
		p.advance()
		right := p.parseAdd()
		left = &ast.BinaryExpr{Base: ast.At(opTok.Position), Op: binOpOf[opTok.Kind], Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseMul()
	for p.at(token.Plus) || p.at(token.Minus) {
		opTok := p.current
		p.advance()
		right := p.parseMul()
		left = &ast.BinaryExpr{Base: ast.At(opTok.Position), Op: binOpOf[opTok.Kind], Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		opTok := p.current
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Base: ast.At(opTok.Position), Op: binOpOf[opTok.Kind], Left: left, Right: right}
	}
	return left
}

// parseUnary implements `unary := ("!"|"-") expr | typeCheck`. The
// negation operand is the *full* expression production, not another
// unary, so a leading `!`/`-` binds as loosely as possible and swallows
// everything to its right; this mirrors the grammar as specified rather
// than the tighter precedence a C-like unary operator would have.
func (p *Parser) parseUnary() ast.Expr {
	if p.at(token.Not) || p.at(token.Minus) {
		pos := p.current.Position
		op := ast.OpBitwiseNegation
		if p.at(token.Minus) {
			op = ast.OpNumericNegation
		}
		p.advance()
		operand := p.parseExpr()
		return &ast.UnaryExpr{Base: ast.At(pos), Op: op, Operand: operand}
	}
	return p.parseTypeCheck()
}

// parseTypeCheck implements `typeCheck := primary ("is" IDENT)?`.
func (p *Parser) parseTypeCheck() ast.Expr {
	pos := p.current.Position
	expr := p.parsePrimary()
	if !p.at(token.KeywordIs) {
		return expr
	}
	p.advance()
	if !p.at(token.Identifier) {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingTypeName, Position: p.current.Position})
		return &ast.TypeCheckExpr{Base: ast.At(pos), Expr: expr}
	}
	name := p.current.Lexeme
	p.advance()
	return &ast.TypeCheckExpr{Base: ast.At(pos), Expr: expr, TypeName: name}
}

// parsePrimary implements `primary := literal | accessExpr | "(" expr ")"`.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.current.Kind {
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral,
		token.KeywordTrue, token.KeywordFalse, token.KeywordNull:
		return p.parseLiteral()
	case token.Identifier:
		return p.parseAccessExpr()
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' to close grouped expression")
		return inner
	default:
		pos := p.current.Position
		p.handler.Add(&errs.ParserError{Kind: errs.MissingExpression, Position: pos})
		if !p.at(token.EOF) {
			p.advance()
		}
		return &ast.NullLiteral{Base: ast.At(pos)}
	}
}

func (p *Parser) parseLiteral() ast.Expr {
	tok := p.current
	pos := tok.Position
	p.advance()
	switch tok.Kind {
	case token.IntLiteral:
		return &ast.IntLiteral{Base: ast.At(pos), Value: lexer.ParseIntLexeme(tok.Lexeme)}
	case token.FloatLiteral:
		return &ast.FloatLiteral{Base: ast.At(pos), Value: lexer.ParseFloatLexeme(tok.Lexeme)}
	case token.StringLiteral:
		return &ast.StringLiteral{Base: ast.At(pos), Value: tok.Lexeme}
	case token.KeywordTrue:
		return &ast.BoolLiteral{Base: ast.At(pos), Value: true}
	case token.KeywordFalse:
		return &ast.BoolLiteral{Base: ast.At(pos), Value: false}
	default: // token.KeywordNull
		return &ast.NullLiteral{Base: ast.At(pos)}
	}
}

// parseAccessExpr implements `accessExpr := identOrCall (("."|"?.") identOrCall)*`.
func (p *Parser) parseAccessExpr() ast.Expr {
	left := p.parseIdentOrCall()
	for p.at(token.Dot) || p.at(token.NullableAccess) {
		optional := p.at(token.NullableAccess)
		pos := p.current.Position
		p.advance()
		member := p.parseIdentOrCall()
		op := ast.OpPropertyAccess
		if optional {
			op = ast.OpOptionalPropertyAccess
		}
		left = &ast.BinaryExpr{Base: ast.At(pos), Op: op, Left: left, Right: member}
	}
	return left
}

// parseIdentOrCall implements `identOrCall := IDENT ("(" arguments? ")")?`.
func (p *Parser) parseIdentOrCall() ast.Expr {
	pos := p.current.Position
	if !p.at(token.Identifier) {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingExpression, Detail: "expected an identifier", Position: pos})
		if !p.at(token.EOF) {
			p.advance()
		}
		return &ast.Identifier{Base: ast.At(pos)}
	}
	name := p.current.Lexeme
	p.advance()
	if !p.at(token.LParen) {
		return &ast.Identifier{Base: ast.At(pos), Name: name}
	}
	p.advance() // '('
	var args []*ast.Argument
	if !p.at(token.RParen) {
		args = append(args, p.parseArgument())
		for p.at(token.Comma) {
			p.advance()
			args = append(args, p.parseArgument())
		}
	}
	p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after arguments")
	return &ast.FunctionCall{Base: ast.At(pos), Name: name, Args: args}
}

// parseArgument implements `argument := "@"? expr`.
func (p *Parser) parseArgument() *ast.Argument {
	isRef := false
	if p.at(token.At) {
		isRef = true
		p.advance()
	}
	return &ast.Argument{Value: p.parseExpr(), IsReference: isRef}
}
