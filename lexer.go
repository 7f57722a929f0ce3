package oink

import (
	"strings"
	"unicode/utf8"
)

const eof rune = -1

// lexerStateFn represents a state function in the lexer's state machine.
// Each state function processes input from the current position and
// returns the next state to enter, or nil to terminate lexing.
type lexerStateFn func(*lexer) lexerStateFn

// lexer walks the UTF-8 source one code point at a time through the
// INITIAL, IDENTIFIER, NUMBER, LINE_COMMENT and BLOCK_COMMENT states.
type lexer struct {
	input string

	// start is the byte offset where the current token begins; pos is
	// the current byte cursor.
	start, pos int

	// line/col track the position of the next rune to be consumed.
	// startLine/startCol snapshot that position when a token begins.
	line, col           int
	startLine, startCol int

	tokens []*Token
	err    *CompilationError
}

const (
	threeEye = "👀👀👀"
	oneEye   = "👀"
)

// emojiTokens maps fixed rune sequences to token kinds. Candidate lengths
// are counted in runes, not bytes, and tried longest-first: 3 runes for
// the block-border triple and the three-eye marker, 2 runes for the
// two-rune symbols (including the heart-plus-variation-selector sequence
// "❤️"), 1 rune otherwise.
var emojiTokens = map[string]TokenType{
	"🐖":   TokenVariableBorder,
	"🐽":   TokenI16Type,
	"🐷":   TokenI32Type,
	"🐗":   TokenI64Type,
	"😀":   TokenMut,
	"😭":   TokenConst,
	"❤️":  TokenPlus,
	"💔":   TokenMinus,
	"💞":   TokenMultiply,
	"💕":   TokenDivide,
	"💩":   TokenNot,
	"🌸🌸":  TokenEquals,
	"💩🌸":  TokenNotEquals,
	"🌸>":  TokenGreaterEqual,
	"🌸<":  TokenLessEqual,
	"🐖🐖🐖": TokenBlockBorder,
}

var emojiCandidateLengths = []int{3, 2, 1}

// lex tokenizes source and returns its token stream, or the first
// diagnostic encountered.
func lex(source string) ([]*Token, error) {
	l := &lexer{input: source, line: 1, col: 1, startLine: 1, startCol: 1}
	lexerLog.Tracef("lexing %d bytes", len(source))
	for state := lexInitial; state != nil; {
		state = state(l)
	}
	if l.err != nil {
		return nil, l.err
	}
	l.flushPending()
	l.tokens = append(l.tokens, &Token{Typ: TokenTheEnd, Line: l.line, Col: l.col})
	lexerLog.Tracef("produced %d tokens", len(l.tokens))
	return l.tokens, nil
}

// value returns the substring of input from start to the current
// position: the text of the token currently being built.
func (l *lexer) value() string {
	return l.input[l.start:l.pos]
}

// emit appends a token of the given type built from the current span and
// advances start to the current position.
func (l *lexer) emit(t TokenType) {
	tok := &Token{
		Typ:  t,
		Val:  l.value(),
		Line: l.startLine,
		Col:  l.startCol,
	}
	lexerLog.Tracef("emit %s", tok)
	l.tokens = append(l.tokens, tok)
	l.mark()
}

// emitWithValue appends a token whose literal value is supplied directly
// rather than taken from the current span (used for multi-rune emoji and
// punctuation matches, whose matched text isn't delimited by start/pos).
func (l *lexer) emitWithValue(t TokenType, val string) {
	tok := &Token{
		Typ:  t,
		Val:  val,
		Line: l.startLine,
		Col:  l.startCol,
	}
	lexerLog.Tracef("emit %s", tok)
	l.tokens = append(l.tokens, tok)
	l.mark()
}

// mark snapshots the current position as the start of the next token.
func (l *lexer) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

// flushPending is a no-op placeholder kept for symmetry with the mark of
// a token start: this lexer's IDENTIFIER/NUMBER states emit as soon as
// their terminating character is seen (including EOF), so there is never
// an unemitted partial token by the time lex() returns.
func (l *lexer) flushPending() {}

// peekByte returns the current byte without consuming it, or 0 at EOF.
func (l *lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// peekRune decodes the rune at the current position without consuming
// it, returning eof at end of input.
func (l *lexer) peekRune() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peekRunes decodes up to n runes starting at the current position
// without consuming them, returning whatever prefix is available (which
// may be shorter than n runes near EOF).
func (l *lexer) peekRunes(n int) string {
	pos := l.pos
	for i := 0; i < n && pos < len(l.input); i++ {
		_, w := utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	return l.input[l.pos:pos]
}

// advance consumes exactly the given string from the current position,
// updating line/col for every rune in it (a newline inside a multi-rune
// match is not expected in practice, but is handled correctly anyway).
func (l *lexer) advance(s string) {
	for _, r := range s {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += len(s)
}

// advanceRune consumes exactly one rune from the current position.
func (l *lexer) advanceRune() rune {
	r := l.peekRune()
	if r == eof {
		return eof
	}
	_, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.advance(l.input[l.pos : l.pos+w])
	return r
}

func (l *lexer) fail(kind ErrorKind, lexeme string, format string, args ...any) lexerStateFn {
	l.err = newError(kind, l.startLine, l.startCol, lexeme, format, args...)
	return nil
}

func isAsciiWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isAsciiLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAsciiDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// lexInitial implements the INITIAL state's resolution order: newline,
// whitespace, longest-first ASCII punctuation, emoji
// resolution, single-char ASCII punctuation, signed-number start,
// identifier start, number start, else UnexpectedCharacter.
func lexInitial(l *lexer) lexerStateFn {
	l.mark()

	if l.pos >= len(l.input) {
		return nil
	}

	b := l.peekByte()

	if b == '\n' {
		l.advanceRune()
		l.emit(TokenNewline)
		return lexInitial
	}

	if isAsciiWhitespace(b) {
		l.advanceRune()
		l.mark()
		return lexInitial
	}

	if strings.HasPrefix(l.input[l.pos:], "...") {
		l.advance("...")
		l.emit(TokenReturn)
		return lexInitial
	}
	if strings.HasPrefix(l.input[l.pos:], "#~") {
		l.advance("#~")
		l.emit(TokenMoodLineBorderStart)
		return lexInitial
	}
	if strings.HasPrefix(l.input[l.pos:], "~#") {
		l.advance("~#")
		l.emit(TokenMoodLineBorderEnd)
		return lexInitial
	}
	if strings.HasPrefix(l.input[l.pos:], "**") {
		l.advance("**")
		l.emit(TokenBracket)
		return lexInitial
	}
	if b == '#' {
		l.advanceRune()
		l.emit(TokenSimpleLineBorder)
		return lexInitial
	}

	if b >= 0x80 {
		return lexEmoji(l)
	}

	switch b {
	case '@':
		l.advanceRune()
		l.emit(TokenAssignment)
		return lexInitial
	case '>':
		l.advanceRune()
		l.emit(TokenGreater)
		return lexInitial
	case '<':
		l.advanceRune()
		l.emit(TokenLess)
		return lexInitial
	}

	if b == '-' && l.pos+1 < len(l.input) && isAsciiDigit(l.input[l.pos+1]) {
		l.advanceRune()
		return lexNumber
	}

	if isAsciiLetter(b) {
		l.advanceRune()
		return lexIdentifier
	}

	if isAsciiDigit(b) {
		l.advanceRune()
		return lexNumber
	}

	return l.fail(UnexpectedCharacter, string(rune(b)),
		"I did not expect character %q to be placed here", l.peekRune())
}

// lexEmoji handles the non-ASCII branch of INITIAL: block comments, line
// comments, and the fixed emoji token table.
func lexEmoji(l *lexer) lexerStateFn {
	if l.peekRunes(3) == threeEye {
		l.advance(threeEye)
		return lexBlockComment
	}
	if l.peekRunes(1) == oneEye {
		l.advance(oneEye)
		return lexLineComment
	}

	for _, n := range emojiCandidateLengths {
		candidate := l.peekRunes(n)
		if kind, ok := emojiTokens[candidate]; ok {
			l.advance(candidate)
			l.emitWithValue(kind, candidate)
			return lexInitial
		}
	}

	r := l.peekRune()
	return l.fail(UnexpectedCharacter, string(r),
		"I did not expect character %q to be placed here", r)
}

// lexIdentifier absorbs letters and the single permitted sigil '&',
// emitting a keyword token if the lexeme matches one, else VARIABLE.
func lexIdentifier(l *lexer) lexerStateFn {
	for {
		b := l.peekByte()
		if isAsciiLetter(b) || b == '&' {
			l.advanceRune()
			continue
		}
		break
	}
	val := l.value()
	if kind, ok := keywords[val]; ok {
		l.emit(kind)
	} else {
		l.emit(TokenVariable)
	}
	return lexInitial
}

// lexNumber absorbs digits (any leading '-' was already consumed by
// lexInitial) and validates the result is a non-empty digit run.
func lexNumber(l *lexer) lexerStateFn {
	for isAsciiDigit(l.peekByte()) {
		l.advanceRune()
	}
	val := l.value()
	digits := strings.TrimPrefix(val, "-")
	if digits == "" {
		return l.fail(MalformedNumber, val, "%q is not a correct number", val)
	}
	for i := 0; i < len(digits); i++ {
		if !isAsciiDigit(digits[i]) {
			return l.fail(MalformedNumber, val, "%q is not a correct number", val)
		}
	}
	l.emit(TokenNumber)
	return lexInitial
}

// lexLineComment discards everything up to (not including) the next
// newline, then returns to INITIAL.
func lexLineComment(l *lexer) lexerStateFn {
	for {
		r := l.peekRune()
		if r == eof || r == '\n' {
			break
		}
		l.advanceRune()
	}
	l.mark()
	return lexInitial
}

// lexBlockComment scans until the three-eye sequence reappears, consumes
// it, and returns to INITIAL. An unterminated block comment silently
// consumes the rest of the source; TestLexer_UnterminatedBlockComment
// pins that down.
func lexBlockComment(l *lexer) lexerStateFn {
	for {
		if l.peekRunes(3) == threeEye {
			l.advance(threeEye)
			l.mark()
			return lexInitial
		}
		if l.peekRune() == eof {
			l.mark()
			return nil
		}
		l.advanceRune()
	}
}
