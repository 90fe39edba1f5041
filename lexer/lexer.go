// Package lexer turns a source byte stream into the token stream the
// parser consumes. It tracks line/column position, locks onto the file's
// end-of-line convention on first sight, and never aborts: any malformed
// input is reported through the ErrorHandler and scanning continues to
// EOF. Malformed tokens are replaced with an Undefined token; a
// mismatched end-of-line sequence is only reported and yields no token.
package lexer

import (
	"strings"

	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/token"
)

// MaxIdentifierLength bounds identifier/keyword length; longer runs are
// reported as TOO_LONG_ID.
const MaxIdentifierLength = 64

// MaxNumberLength bounds the digit count of a numeric literal (integer
// and fractional digits counted separately); longer runs are reported as
// TOO_LONG_NUMBER.
const MaxNumberLength = 20

// singleCharTokens maps a byte to the Kind it always produces on its own.
var singleCharTokens = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	';': token.Semicolon,
	'&': token.And,
	'|': token.Or,
	'@': token.At,
	':': token.Colon,
}

// compoundRule describes a byte that is either a one-char operator on its
// own, or the prefix of a "x=" compound when immediately followed by '='.
type compoundRule struct {
	base   token.Kind
	withEq token.Kind
}

var compoundTokens = map[byte]compoundRule{
	'+': {token.Plus, token.PlusAssign},
	'-': {token.Minus, token.MinusAssign},
	'*': {token.Star, token.StarAssign},
	'/': {token.Slash, token.SlashAssign},
	'%': {token.Percent, token.PercentAssign},
	'!': {token.Not, token.NotEq},
	'=': {token.Assign, token.Eq},
	'>': {token.Gt, token.GtEq},
	'<': {token.Lt, token.LtEq},
}

var escapeChars = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'0':  0,
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Lexer scans src one byte at a time, tracking the current position.
type Lexer struct {
	src         string
	pos         int
	current     byte
	line        int
	column      int
	handler     *errs.Handler
	eolSeq      string // first EOL sequence observed ("\n","\r","\n\r","\r\n"); "" until seen
	maxIdentLen int
	maxNumLen   int
}

// New returns a Lexer positioned at the start of src, reporting problems
// to handler, using the default MaxIdentifierLength/MaxNumberLength bounds.
func New(src string, handler *errs.Handler) *Lexer {
	return NewWithLimits(src, handler, MaxIdentifierLength, MaxNumberLength)
}

// NewWithLimits is New with the identifier/number length bounds overridden,
// for hosts that load them from a config file.
func NewWithLimits(src string, handler *errs.Handler, maxIdentLen, maxNumLen int) *Lexer {
	lex := &Lexer{src: src, line: 1, column: 1, handler: handler, maxIdentLen: maxIdentLen, maxNumLen: maxNumLen}
	if len(src) > 0 {
		lex.current = src[0]
	}
	return lex
}

func (lex *Lexer) position() token.Position {
	return token.Position{Line: lex.line, Column: lex.column}
}

// advance consumes the current byte and moves to the next one. End-of-line
// bytes are routed to consumeEOL so line/column accounting and the
// convention check stay in one place.
func (lex *Lexer) advance() {
	if lex.current == '\n' || lex.current == '\r' {
		lex.consumeEOL()
		return
	}
	lex.pos++
	lex.column++
	lex.setCurrent()
}

func (lex *Lexer) setCurrent() {
	if lex.pos >= len(lex.src) {
		lex.current = 0
	} else {
		lex.current = lex.src[lex.pos]
	}
}

// consumeEOL eats one line-break sequence starting at the current byte,
// locking the file's EOL convention on first sight and reporting
// INVALID_EOL whenever a later sequence disagrees with it. Only a
// sequence matching the convention starts a new line; a mismatched one
// advances the column like ordinary characters.
func (lex *Lexer) consumeEOL() {
	seq := string(lex.current)
	atLine, atCol := lex.line, lex.column
	lex.pos++
	next := byte(0)
	if lex.pos < len(lex.src) {
		next = lex.src[lex.pos]
	}
	if (seq[0] == '\n' && next == '\r') || (seq[0] == '\r' && next == '\n') {
		seq += string(next)
		lex.pos++
	}

	if lex.eolSeq == "" {
		lex.eolSeq = seq
	} else if lex.eolSeq != seq {
		lex.handler.Add(&errs.LexerError{
			Kind:     errs.InvalidEOL,
			Lexeme:   seq,
			Position: token.Position{Line: atLine, Column: atCol},
		})
		lex.column += len(seq)
		lex.setCurrent()
		return
	}

	lex.line++
	lex.column = 1
	lex.setCurrent()
}

func (lex *Lexer) skipWhitespaceAndComments() {
	for {
		if isWhitespace(lex.current) {
			lex.advance()
			continue
		}
		if lex.current == '#' {
			for lex.current != '\n' && lex.current != '\r' && lex.current != 0 {
				lex.advance()
			}
			continue
		}
		break
	}
}

// NextToken returns the next token in the stream, advancing past it. It
// always eventually returns an EOF token; a malformed token is reported to
// the handler and surfaces here as an Undefined token rather than an
// error return, so the caller never has to special-case failure. (An
// INVALID_EOL between tokens is reported but produces no token.)
func (lex *Lexer) NextToken() token.Token {
	lex.skipWhitespaceAndComments()

	pos := lex.position()

	if lex.current == 0 {
		return token.New(token.EOF, "", pos)
	}

	if kind, ok := singleCharTokens[lex.current]; ok {
		lexeme := string(lex.current)
		lex.advance()
		return token.New(kind, lexeme, pos)
	}

	if lex.current == '.' {
		lex.advance()
		return token.New(token.Dot, ".", pos)
	}

	if lex.current == '?' {
		lex.advance()
		if lex.current == '.' {
			lex.advance()
			return token.New(token.NullableAccess, "?.", pos)
		}
		return token.New(token.Optional, "?", pos)
	}

	if rule, ok := compoundTokens[lex.current]; ok {
		prefix := lex.current
		lex.advance()
		if lex.current == '=' {
			lex.advance()
			return token.New(rule.withEq, string(prefix)+"=", pos)
		}
		return token.New(rule.base, string(prefix), pos)
	}

	if lex.current == '"' {
		return lex.readString(pos)
	}

	if isDigit(lex.current) {
		return lex.readNumber(pos)
	}

	if isIdentStart(lex.current) {
		return lex.readIdentifier(pos)
	}

	bad := string(lex.current)
	lex.handler.Add(&errs.LexerError{Kind: errs.UnknownToken, Lexeme: bad, Position: pos})
	lex.advance()
	return token.New(token.Undefined, bad, pos)
}

func (lex *Lexer) readIdentifier(pos token.Position) token.Token {
	var sb strings.Builder
	for isIdentChar(lex.current) {
		if sb.Len() >= lex.maxIdentLen {
			for isIdentChar(lex.current) {
				lex.advance()
			}
			lex.handler.Add(&errs.LexerError{Kind: errs.TooLongIdentifier, Lexeme: sb.String(), Position: pos})
			return token.New(token.Undefined, sb.String(), pos)
		}
		sb.WriteByte(lex.current)
		lex.advance()
	}
	text := sb.String()
	return token.New(token.LookupIdent(text), text, pos)
}

func (lex *Lexer) readNumber(pos token.Position) token.Token {
	var digits strings.Builder
	leadingZero := lex.current == '0'

	for isDigit(lex.current) {
		if digits.Len() >= lex.maxNumLen {
			for isDigit(lex.current) {
				lex.advance()
			}
			lex.handler.Add(&errs.LexerError{Kind: errs.TooLongNumber, Lexeme: digits.String(), Position: pos})
			return token.New(token.Undefined, digits.String(), pos)
		}
		digits.WriteByte(lex.current)
		lex.advance()
	}

	if leadingZero && digits.Len() > 1 {
		lexeme := digits.String()[:1]
		lex.handler.Add(&errs.LexerError{Kind: errs.LeadingZeros, Lexeme: lexeme, Position: pos})
		return token.New(token.Undefined, lexeme, pos)
	}

	if lex.current != '.' {
		return token.New(token.IntLiteral, digits.String(), pos)
	}

	lex.advance()
	if !isDigit(lex.current) {
		lexeme := digits.String() + "."
		lex.handler.Add(&errs.LexerError{Kind: errs.InvalidFloat, Lexeme: lexeme, Position: pos})
		return token.New(token.Undefined, lexeme, pos)
	}

	var frac strings.Builder
	for isDigit(lex.current) {
		if frac.Len() >= lex.maxNumLen {
			for isDigit(lex.current) {
				lex.advance()
			}
			lexeme := digits.String() + "." + frac.String()
			lex.handler.Add(&errs.LexerError{Kind: errs.TooLongNumber, Lexeme: lexeme, Position: pos})
			return token.New(token.Undefined, lexeme, pos)
		}
		frac.WriteByte(lex.current)
		lex.advance()
	}

	return token.New(token.FloatLiteral, digits.String()+"."+frac.String(), pos)
}

func (lex *Lexer) readString(pos token.Position) token.Token {
	lex.advance() // opening quote
	var sb strings.Builder
	for lex.current != '"' {
		if lex.current == 0 {
			lex.handler.Add(&errs.LexerError{Kind: errs.UnterminatedStr, Lexeme: sb.String(), Position: pos})
			return token.New(token.Undefined, sb.String(), pos)
		}
		if lex.current == '\\' {
			lex.advance()
			if lex.current == 0 {
				lex.handler.Add(&errs.LexerError{Kind: errs.UnterminatedStr, Lexeme: sb.String(), Position: pos})
				return token.New(token.Undefined, sb.String(), pos)
			}
			if mapped, ok := escapeChars[lex.current]; ok {
				sb.WriteByte(mapped)
			} else {
				sb.WriteByte(lex.current)
			}
			lex.advance()
			continue
		}
		sb.WriteByte(lex.current)
		lex.advance()
	}
	lex.advance() // closing quote
	return token.New(token.StringLiteral, sb.String(), pos)
}
