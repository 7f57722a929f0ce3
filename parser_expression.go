package oink

// Precedence-climbing expression grammar, weakest-binding first:
//
//	expr     := orExpr
//	orExpr   := andExpr (OR andExpr)*
//	andExpr  := cmpExpr (AND cmpExpr)*
//	cmpExpr  := addExpr (cmpOp addExpr)?      -- non-associative, at most one
//	addExpr  := mulExpr ((PLUS|MINUS) mulExpr)*
//	mulExpr  := unary ((MUL|DIV) unary)*
//	unary    := NOT unary | primary
//	primary  := NUMBER | BOOL_LIT | border VAR border | BRACKET expr BRACKET
//
// Every arithmetic and comparison operator consumed while the enclosing
// line is a mood line is replaced by its mood-inverse (operator.go's
// Invert); AND/OR have no inverse and pass through unchanged, since mood
// lines negate the whole condition via a wrapping UnaryOp instead (see
// parseIf/parseWhile in parser_statements.go). Boolean literals are
// swapped the same way, inline in parsePrimary.

var tokenToOperator = map[TokenType]Operator{
	TokenPlus:         OpPlus,
	TokenMinus:        OpMinus,
	TokenMultiply:     OpMultiply,
	TokenDivide:       OpDivide,
	TokenEquals:       OpEquals,
	TokenNotEquals:    OpNotEquals,
	TokenGreater:      OpGreater,
	TokenLess:         OpLess,
	TokenGreaterEqual: OpGreaterEqual,
	TokenLessEqual:    OpLessEqual,
	TokenAnd:          OpAnd,
	TokenOr:           OpOr,
}

var comparisonTokens = []TokenType{
	TokenEquals, TokenNotEquals, TokenGreater, TokenLess, TokenGreaterEqual, TokenLessEqual,
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.At(TokenOr) {
		tok := p.Consume()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Right: right, Op: OpOr, line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for p.At(TokenAnd) {
		tok := p.Consume()
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Right: right, Op: OpAnd, line: tok.Line}
	}
	return left, nil
}

// parseCmp allows at most one comparison per expression: the grammar is
// non-associative here, so "a > b > c" is a parse error rather than
// left-associating like the arithmetic tiers below it.
func (p *Parser) parseCmp() (Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	op, tok, ok := p.matchComparisonOp()
	if !ok {
		return left, nil
	}
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return &BinaryOp{Left: left, Right: right, Op: op, line: tok.Line}, nil
}

func (p *Parser) matchComparisonOp() (Operator, *Token, bool) {
	for _, typ := range comparisonTokens {
		if tok := p.Match(typ); tok != nil {
			op := tokenToOperator[typ]
			if p.inMoodLine {
				op = op.Invert()
			}
			return op, tok, true
		}
	}
	return 0, nil, false
}

func (p *Parser) parseAdd() (Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.At(TokenPlus) || p.At(TokenMinus) {
		tok := p.Consume()
		op := tokenToOperator[tok.Typ]
		if p.inMoodLine {
			op = op.Invert()
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Right: right, Op: op, line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseMul() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.At(TokenMultiply) || p.At(TokenDivide) {
		tok := p.Consume()
		op := tokenToOperator[tok.Typ]
		if p.inMoodLine {
			op = op.Invert()
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Right: right, Op: op, line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if tok := p.Match(TokenNot); tok != nil {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Operand: operand, line: tok.Line}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch {
	case p.At(TokenNumber):
		tok := p.Consume()
		return &NumberLiteral{Text: tok.Val, line: tok.Line}, nil

	case p.At(TokenTrue) || p.At(TokenFalse):
		tok := p.Consume()
		text := tok.Val
		if p.inMoodLine {
			if text == TrueLiteral {
				text = FalseLiteral
			} else {
				text = TrueLiteral
			}
		}
		return &BooleanLiteral{Text: text, line: tok.Line}, nil

	case p.At(TokenVariableBorder):
		tok := p.Current()
		name, err := p.parseBorderedVariable()
		if err != nil {
			return nil, err
		}
		return &Identifier{Name: name, line: tok.Line}, nil

	case p.At(TokenBracket):
		p.Consume()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.Match(TokenBracket) == nil {
			return nil, p.errorf(StructuralError, "this ** group is never closed")
		}
		return expr, nil
	}

	return nil, p.errorf(UnexpectedToken, "I expected an expression here")
}
