package oink

// Parser is a hand-written recursive-descent parser over a token stream
// with a single token of lookahead (occasionally two, to disambiguate an
// elif/else line from a plain statement line across a line border). It
// carries one piece of contextual state beyond the cursor: whether the
// statement currently being parsed opened on a mood line.
type Parser struct {
	name   string
	tokens []*Token
	idx    int

	inMoodLine bool
	nextScope  int
}

// newParser builds a Parser over tokens. name identifies the source
// being parsed, for diagnostics.
func newParser(name string, tokens []*Token) *Parser {
	return &Parser{name: name, tokens: tokens, nextScope: 1}
}

// Current returns the token at the cursor, or nil past the end.
func (p *Parser) Current() *Token {
	return p.Get(p.idx)
}

// Get returns the token at absolute index i, or nil if out of range.
func (p *Parser) Get(i int) *Token {
	if i >= 0 && i < len(p.tokens) {
		return p.tokens[i]
	}
	return nil
}

// PeekN returns the token shift positions ahead of the cursor, or nil.
func (p *Parser) PeekN(shift int) *Token {
	return p.Get(p.idx + shift)
}

// At reports whether the current token has kind typ.
func (p *Parser) At(typ TokenType) bool {
	t := p.Current()
	return t != nil && t.Typ == typ
}

// AtN reports whether the token shift positions ahead has kind typ.
func (p *Parser) AtN(shift int, typ TokenType) bool {
	t := p.PeekN(shift)
	return t != nil && t.Typ == typ
}

// Consume advances the cursor by one token and returns the token it was
// standing on.
func (p *Parser) Consume() *Token {
	t := p.Current()
	p.idx++
	return t
}

// Match consumes and returns the current token if it has kind typ, else
// returns nil without advancing.
func (p *Parser) Match(typ TokenType) *Token {
	if p.At(typ) {
		return p.Consume()
	}
	return nil
}

// Expect consumes and returns the current token if it has kind typ, else
// fails with UnexpectedToken.
func (p *Parser) Expect(typ TokenType) (*Token, error) {
	if t := p.Match(typ); t != nil {
		return t, nil
	}
	return nil, p.errorf(UnexpectedToken, "I expected %s here", typ)
}

// newScopeID mints the next monotonically increasing CodeBlock scope id.
func (p *Parser) newScopeID() int {
	id := p.nextScope
	p.nextScope++
	return id
}

// errorf builds a CompilationError positioned at the current token (or at
// the last token if the stream is exhausted).
func (p *Parser) errorf(kind ErrorKind, format string, args ...any) error {
	tok := p.Current()
	if tok == nil && len(p.tokens) > 0 {
		tok = p.tokens[len(p.tokens)-1]
	}
	return errAtToken(kind, tok, format, args...)
}
