package oink

import (
	"fmt"

	"github.com/juju/errors"
)

// ErrorKind classifies a CompilationError by which stage raised it and
// what went wrong, per the single error taxonomy shared across the lexer,
// parser and semantic analyzer.
type ErrorKind int

const (
	// UnexpectedCharacter is raised by the lexer for a stray byte that
	// matches no resolution rule (an unknown glyph, a bad digit suffix).
	UnexpectedCharacter ErrorKind = iota
	// MalformedNumber is raised by the lexer for a NUMBER lexeme that
	// isn't a clean (optionally-signed) digit run.
	MalformedNumber
	// UnexpectedToken is raised by the parser when an expected token
	// kind is absent or the wrong kind is present.
	UnexpectedToken
	// StructuralError is raised by the parser for document-shape
	// problems: empty program, missing/misplaced return, unclosed
	// blocks, mismatched mood borders, orphan elif/else, unpaired
	// brackets.
	StructuralError
	// UndeclaredVariable is raised by the analyzer for a reference to a
	// name not declared in any live scope.
	UndeclaredVariable
	// Redeclaration is raised by the analyzer for declaring a name
	// already live in an enclosing scope.
	Redeclaration
	// ImmutableAssignment is raised by the analyzer for assigning to a
	// CONST-declared variable.
	ImmutableAssignment
	// SelfAssignment is raised by the analyzer when a declaration's
	// initializer references the name being declared anywhere, or when
	// an assignment's RHS is exactly the bare target (x @ x).
	SelfAssignment
	// TypeMismatch is raised by the analyzer for any of: a non-bool
	// condition, a bool-vs-integer comparison, a narrowing or otherwise
	// incompatible assignment, arithmetic on a bool operand, or a
	// non-bool operand of NOT/AND/OR.
	TypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case MalformedNumber:
		return "MalformedNumber"
	case UnexpectedToken:
		return "UnexpectedToken"
	case StructuralError:
		return "StructuralError"
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case Redeclaration:
		return "Redeclaration"
	case ImmutableAssignment:
		return "ImmutableAssignment"
	case SelfAssignment:
		return "SelfAssignment"
	case TypeMismatch:
		return "TypeMismatch"
	default:
		return "Unknown"
	}
}

// CompilationError is the single error value surfaced by every stage of
// the pipeline: lexer, parser and semantic analyzer all fail by returning
// one of these, wrapping the underlying cause with github.com/juju/errors
// so the original annotation chain survives as the diagnostic travels up
// through the caller stack.
type CompilationError struct {
	Kind ErrorKind
	Line int
	Col  int
	// Lexeme is the offending token text, when one is meaningful (empty
	// for e.g. an empty-program StructuralError).
	Lexeme string

	cause error
}

// Error implements the error interface, rendering a human-readable
// message that includes the source line and, when meaningful, the
// column and offending lexeme.
func (e *CompilationError) Error() string {
	msg := errors.Cause(e.cause).Error()
	if e.Lexeme != "" {
		return fmt.Sprintf("%s at line %d, column %d (near %q)", msg, e.Line, e.Col, e.Lexeme)
	}
	if e.Col > 0 {
		return fmt.Sprintf("%s at line %d, column %d", msg, e.Line, e.Col)
	}
	return fmt.Sprintf("%s at line %d", msg, e.Line)
}

// Unwrap exposes the annotated cause for errors.Is/errors.As.
func (e *CompilationError) Unwrap() error {
	return e.cause
}

// newError builds a CompilationError at a given line/column, annotating
// the formatted message onto an errors.New cause via juju/errors so the
// stack trace (errors.ErrorStack) captures where in this module the
// diagnostic originated.
func newError(kind ErrorKind, line, col int, lexeme string, format string, args ...any) *CompilationError {
	cause := errors.Annotatef(errors.New(fmt.Sprintf(format, args...)), "%s", kind)
	return &CompilationError{
		Kind:   kind,
		Line:   line,
		Col:    col,
		Lexeme: lexeme,
		cause:  errors.Trace(cause),
	}
}

// errAtToken builds a CompilationError positioned at tok (or at 0,0 if
// tok is nil, which only happens when the token stream is itself empty).
func errAtToken(kind ErrorKind, tok *Token, format string, args ...any) *CompilationError {
	if tok == nil {
		return newError(kind, 0, 0, "", format, args...)
	}
	return newError(kind, tok.Line, tok.Col, tok.Val, format, args...)
}
