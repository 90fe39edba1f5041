// Package errs implements the shared ErrorHandler that every pipeline stage
// reports to. Lexer and parser problems are non-fatal individually but
// collectively gate whether the interpreter is allowed to run; a script
// error that escapes main is recorded here too, as a critical error.
package errs

import (
	"fmt"
	"strings"

	"github.com/Radkoski002/jplang/token"
)

// LexerErrorKind enumerates the recoverable problems the lexer can hit.
type LexerErrorKind string

const (
	TooLongIdentifier LexerErrorKind = "TOO_LONG_ID"
	TooLongNumber     LexerErrorKind = "TOO_LONG_NUMBER"
	InvalidFloat      LexerErrorKind = "INVALID_FLOAT"
	LeadingZeros      LexerErrorKind = "LEADING_ZEROS"
	UnterminatedStr   LexerErrorKind = "UNTERMINATED_STRING"
	InvalidEOL        LexerErrorKind = "INVALID_EOL"
	UnknownToken      LexerErrorKind = "UNKNOWN_TOKEN"
)

// LexerError reports one recoverable lexing failure; the lexer always
// emits an Undefined token alongside it and keeps scanning.
type LexerError struct {
	Kind     LexerErrorKind
	Lexeme   string
	Position token.Position
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("[LEXER ERROR - %s]: %q at %s", e.Kind, e.Lexeme, e.Position)
}

// Fatal is always false: a single lexer error never aborts lexing by
// itself, only the accumulated has_errors() check downstream does.
func (e *LexerError) Fatal() bool { return false }

// ParserErrorKind enumerates the recoverable problems the parser can hit.
// Every kind corresponds to one missing-or-malformed grammar production;
// the parser inserts a best-effort placeholder and keeps going.
type ParserErrorKind string

const (
	MissingFunctionName    ParserErrorKind = "MISSING_FUNCTION_NAME"
	FunctionAlreadyExists  ParserErrorKind = "FUNCTION_ALREADY_EXISTS"
	ParameterAlreadyExists ParserErrorKind = "PARAMETER_ALREADY_EXISTS"
	MissingParameter       ParserErrorKind = "MISSING_PARAMETER"
	InvalidParameterValue  ParserErrorKind = "INVALID_PARAMETER_VALUE"
	MissingOpeningBracket  ParserErrorKind = "MISSING_OPENING_BRACKET"
	MissingClosingBracket  ParserErrorKind = "MISSING_CLOSING_BRACKET"
	MissingBlockStart      ParserErrorKind = "MISSING_BLOCK_START"
	MissingBlockEnd        ParserErrorKind = "MISSING_BLOCK_END"
	MissingConditionExpr   ParserErrorKind = "MISSING_CONDITIONAL_EXPRESSION"
	MissingForVariable     ParserErrorKind = "MISSING_FOR_LOOP_VARIABLE"
	MissingForColon        ParserErrorKind = "MISSING_FOR_LOOP_COLON"
	MissingForIterable     ParserErrorKind = "MISSING_FOR_LOOP_ITERABLE"
	MissingSemicolon       ParserErrorKind = "MISSING_SEMICOLON"
	MissingCatchKeyword    ParserErrorKind = "MISSING_CATCH_KEYWORD"
	MissingCatchBlock      ParserErrorKind = "MISSING_CATCH_BLOCK"
	MissingErrorType       ParserErrorKind = "MISSING_ERROR_TYPE"
	MissingErrorVariable   ParserErrorKind = "MISSING_ERROR_VARIABLE"
	MissingExpression      ParserErrorKind = "MISSING_EXPRESSION"
	MissingArgument        ParserErrorKind = "MISSING_ARGUMENT"
	MissingTypeName        ParserErrorKind = "MISSING_TYPE_NAME"
	UnexpectedToken        ParserErrorKind = "UNEXPECTED_TOKEN"
)

// ParserError reports one recoverable parsing failure.
type ParserError struct {
	Kind     ParserErrorKind
	Detail   string
	Position token.Position
}

func (e *ParserError) Error() string {
	detail := e.Detail
	if detail != "" {
		detail = ": " + detail
	}
	return fmt.Sprintf("[PARSER ERROR - %s]%s at %s", e.Kind, detail, e.Position)
}

func (e *ParserError) Fatal() bool { return false }

// ScriptErrorValue is the minimal view a structured interpreter error
// value needs to expose to be filed as a critical error. objects.ScriptError
// satisfies this without errs importing objects (which would cycle, since
// objects never needs to know about errs).
type ScriptErrorValue interface {
	error
	ErrorKind() string
}

// CriticalError wraps a script-level error value that escaped main. Its
// presence always halts the run.
type CriticalError struct {
	Value ScriptErrorValue
}

func (e *CriticalError) Error() string { return e.Value.Error() }

func (e *CriticalError) Fatal() bool { return true }

// Diagnostic is anything the ErrorHandler can collect: lexer errors,
// parser errors, or a critical runtime error.
type Diagnostic interface {
	error
	Fatal() bool
}

// Handler accumulates diagnostics from every pipeline stage. Downstream
// stages call HasErrors before starting; the interpreter itself adds at
// most one critical error per run: when main is missing or takes
// parameters, or when an error escapes main uncaught.
type Handler struct {
	diagnostics []Diagnostic
}

// New returns an empty Handler.
func New() *Handler {
	return &Handler{}
}

// Add records one diagnostic.
func (h *Handler) Add(d Diagnostic) {
	h.diagnostics = append(h.diagnostics, d)
}

// HasErrors reports whether any diagnostic was ever recorded.
func (h *Handler) HasErrors() bool {
	return len(h.diagnostics) > 0
}

// HasFatal reports whether a critical (fatal) diagnostic was recorded.
func (h *Handler) HasFatal() bool {
	for _, d := range h.diagnostics {
		if d.Fatal() {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in recording order.
func (h *Handler) All() []Diagnostic {
	return h.diagnostics
}

// Report writes every diagnostic, one per line, to sb.
func (h *Handler) Report(sb *strings.Builder) {
	for _, d := range h.diagnostics {
		sb.WriteString(d.Error())
		sb.WriteByte('\n')
	}
}
