package parser

import (
	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/token"
)

// parseBlock parses `"{" statement* "}"`.
func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.current.Position
	p.expect(token.LBrace, errs.MissingBlockStart, "expected '{'")
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(token.RBrace, errs.MissingBlockEnd, "expected '}'")
	return &ast.BlockStmt{Base: ast.At(pos), Statements: stmts}
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.current.Kind {
	case token.KeywordIf:
		return p.parseIf()
	case token.KeywordWhile:
		return p.parseWhile()
	case token.KeywordFor:
		return p.parseFor()
	case token.KeywordReturn:
		return p.parseReturn()
	case token.KeywordTry:
		return p.parseTry()
	case token.KeywordThrow:
		return p.parseThrow()
	case token.KeywordBreak:
		pos := p.current.Position
		p.advance()
		p.expect(token.Semicolon, errs.MissingSemicolon, "expected ';' after break")
		return &ast.BreakStmt{Base: ast.At(pos)}
	case token.KeywordContinue:
		pos := p.current.Position
		p.advance()
		p.expect(token.Semicolon, errs.MissingSemicolon, "expected ';' after continue")
		return &ast.ContinueStmt{Base: ast.At(pos)}
	case token.RBrace, token.EOF:
		return nil
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.current.Position
	p.advance() // 'if'
	p.expect(token.LParen, errs.MissingOpeningBracket, "expected '(' after if")
	cond := p.parseExprOrPlaceholder()
	p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after condition")
	block := p.parseBlock()

	stmt := &ast.IfStmt{Base: ast.At(pos), Cond: cond, Block: block}
	for p.at(token.KeywordElif) {
		elifPos := p.current.Position
		p.advance()
		p.expect(token.LParen, errs.MissingOpeningBracket, "expected '(' after elif")
		elifCond := p.parseExprOrPlaceholder()
		p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after elif condition")
		elifBlock := p.parseBlock()
		stmt.Elifs = append(stmt.Elifs, &ast.ElifClause{Base: ast.At(elifPos), Cond: elifCond, Block: elifBlock})
	}
	if p.at(token.KeywordElse) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.current.Position
	p.advance() // 'while'
	p.expect(token.LParen, errs.MissingOpeningBracket, "expected '(' after while")
	cond := p.parseExprOrPlaceholder()
	p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after condition")
	block := p.parseBlock()
	return &ast.WhileStmt{Base: ast.At(pos), Cond: cond, Block: block}
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.current.Position
	p.advance() // 'for'
	p.expect(token.LParen, errs.MissingOpeningBracket, "expected '(' after for")

	varName := ""
	if p.at(token.Identifier) {
		varName = p.current.Lexeme
		p.advance()
	} else {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingForVariable, Position: p.current.Position})
	}

	p.expect(token.Colon, errs.MissingForColon, "expected ':' in for loop header")

	var iterable ast.Expr
	if p.at(token.Identifier) {
		iterable = p.parseAccessExpr()
	} else {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingForIterable, Position: p.current.Position})
		iterable = &ast.NullLiteral{Base: ast.At(p.current.Position)}
	}

	p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after for loop header")
	block := p.parseBlock()
	return &ast.ForStmt{Base: ast.At(pos), VarName: varName, Iterable: iterable, Block: block}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.current.Position
	p.advance() // 'return'
	var value ast.Expr
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, errs.MissingSemicolon, "expected ';' after return")
	return &ast.ReturnStmt{Base: ast.At(pos), Value: value}
}

func (p *Parser) parseTry() ast.Stmt {
	pos := p.current.Position
	p.advance() // 'try'
	tryBlock := p.parseBlock()

	var catches []*ast.CatchClause
	for p.at(token.KeywordCatch) {
		catches = append(catches, p.parseCatchClause())
	}
	if len(catches) == 0 {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingCatchKeyword, Position: p.current.Position})
	}
	return &ast.TryCatchStmt{Base: ast.At(pos), Try: tryBlock, Catches: catches}
}

func (p *Parser) parseCatchClause() *ast.CatchClause {
	pos := p.current.Position
	p.advance() // 'catch'

	var types []string
	var errVar string
	if p.at(token.LParen) {
		p.advance()
		if !p.at(token.Identifier) {
			p.handler.Add(&errs.ParserError{Kind: errs.MissingErrorType, Position: p.current.Position})
		} else {
			types = append(types, p.current.Lexeme)
			p.advance()
		}
		for p.at(token.Or) {
			p.advance()
			if !p.at(token.Identifier) {
				p.handler.Add(&errs.ParserError{Kind: errs.MissingErrorType, Position: p.current.Position})
				break
			}
			types = append(types, p.current.Lexeme)
			p.advance()
		}
		if !p.at(token.Identifier) {
			p.handler.Add(&errs.ParserError{Kind: errs.MissingErrorVariable, Position: p.current.Position})
		} else {
			errVar = p.current.Lexeme
			p.advance()
		}
		p.expect(token.RParen, errs.MissingClosingBracket, "expected ')' after catch clause")
	}
	block := p.parseBlock()
	return &ast.CatchClause{Base: ast.At(pos), ErrorTypes: types, ErrorVar: errVar, Block: block}
}

// parseThrow parses `"throw" identOrCall ";"`: only a bare identifier or a
// function call may be thrown directly, matching the grammar's
// restriction to identOrCall rather than a full expression.
func (p *Parser) parseThrow() ast.Stmt {
	pos := p.current.Position
	p.advance() // 'throw'
	var expr ast.Expr
	if p.at(token.Identifier) {
		expr = p.parseIdentOrCall()
	} else {
		p.handler.Add(&errs.ParserError{Kind: errs.MissingExpression, Detail: "expected an error expression after throw", Position: p.current.Position})
		expr = &ast.NullLiteral{Base: ast.At(p.current.Position)}
	}
	p.expect(token.Semicolon, errs.MissingSemicolon, "expected ';' after throw")
	return &ast.ThrowStmt{Base: ast.At(pos), Expr: expr}
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:        ast.OpAssign,
	token.PlusAssign:    ast.OpAddAssign,
	token.MinusAssign:   ast.OpSubAssign,
	token.StarAssign:    ast.OpMulAssign,
	token.SlashAssign:   ast.OpDivAssign,
	token.PercentAssign: ast.OpPercentAssign,
}

// parseExprOrAssignStatement parses `exprOrAssign ";"`.
func (p *Parser) parseExprOrAssignStatement() ast.Stmt {
	pos := p.current.Position
	target := p.parseAccessExpr()

	if op, ok := assignOps[p.current.Kind]; ok {
		p.advance()
		value := p.parseExprOrPlaceholder()
		p.expect(token.Semicolon, errs.MissingSemicolon, "expected ';' after assignment")
		return &ast.AssignStmt{Base: ast.At(pos), Target: target, Op: op, Value: value}
	}

	p.expect(token.Semicolon, errs.MissingSemicolon, "expected ';' after expression")
	return &ast.ExprStmt{Base: ast.At(pos), Expr: target}
}

// parseExprOrPlaceholder parses a full expression, substituting a Null
// placeholder if the current token cannot start one (reported by
// parseExpr's own recovery path).
func (p *Parser) parseExprOrPlaceholder() ast.Expr {
	return p.parseExpr()
}
