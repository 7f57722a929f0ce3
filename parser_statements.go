package oink

// Program-level and statement grammar:
//
//	program        := statement* returnLine THE_END
//	statementLine  := lineOpen statement lineClose NEWLINE?
//	lineOpen       := SIMPLE_LINE_BORDER | MOOD_LINE_BORDER_START
//	lineClose      := SIMPLE_LINE_BORDER | MOOD_LINE_BORDER_END
//	statement      := decl | assign | ifStmt | whileStmt
//	decl           := (MUT|CONST) type border VAR border (ASSIGN expr)?
//	assign         := border VAR border ASSIGN expr
//	ifStmt         := IF expr lineClose NL block
//	                  (lineOpen ELIF expr lineClose NL block)*
//	                  (lineOpen ELSE lineClose NL block)?
//	whileStmt      := WHILE expr lineClose NL block
//	block          := lineOpen BLOCK_BORDER lineClose NL statementLine*
//	                  returnLine? lineOpen BLOCK_BORDER lineClose NL
//	returnLine     := lineOpen RETURN expr RETURN lineClose NL?
//
// Two-token lookahead (peekLineContentType) decides whether an upcoming
// line is a plain statement, an elif/else continuation of an if already
// being parsed, a return line, or a block's closing border.

// Parse runs the full token stream through the grammar above and returns
// the root Program node.
func Parse(tokens []*Token) (*Program, error) {
	parserLog.Tracef("parsing %d tokens", len(tokens))
	prog, err := parseProgram(tokens)
	if err != nil {
		return nil, err
	}
	parserLog.Tracef("parsed program with %d top-level statements", len(prog.Statements))
	return prog, nil
}

func parseProgram(tokens []*Token) (*Program, error) {
	p := newParser("program", tokens)

	if p.At(TokenTheEnd) {
		return nil, p.errorf(StructuralError, "a program cannot be empty")
	}

	prog := &Program{}
	for {
		kind, ok := p.peekLineContentType()
		if ok && kind == TokenReturn {
			ret, err := p.parseReturnLine()
			if err != nil {
				return nil, err
			}
			prog.Return = ret
			break
		}
		if !ok {
			return nil, p.errorf(StructuralError, "a program must end with a return line")
		}
		stmt, err := p.parseStatementLine()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	if !p.At(TokenTheEnd) {
		return nil, p.errorf(StructuralError, "nothing may follow the return line")
	}
	p.Consume()
	return prog, nil
}

// peekLineContentType reports the token kind immediately following an
// upcoming line-open marker, without consuming anything. It returns false
// when the cursor isn't standing on a line-open token at all (e.g. at
// THE_END).
func (p *Parser) peekLineContentType() (TokenType, bool) {
	if !p.At(TokenSimpleLineBorder) && !p.At(TokenMoodLineBorderStart) {
		return 0, false
	}
	t := p.PeekN(1)
	if t == nil {
		return 0, false
	}
	return t.Typ, true
}

func (p *Parser) parseLineOpen() (*Token, error) {
	if t := p.Match(TokenSimpleLineBorder); t != nil {
		p.inMoodLine = false
		return t, nil
	}
	if t := p.Match(TokenMoodLineBorderStart); t != nil {
		p.inMoodLine = true
		return t, nil
	}
	return nil, p.errorf(UnexpectedToken, "I expected a line border here")
}

// parseLineClose consumes the border that ends the current line: ~# when
// the line opened as a mood line, # otherwise. Pairing a mood opener with
// a plain closer (or the reverse) is a structural defect of the line, not
// a mere wrong-token-kind.
func (p *Parser) parseLineClose() error {
	if p.inMoodLine {
		if p.At(TokenSimpleLineBorder) {
			return p.errorf(StructuralError, "a mood line must close with ~#")
		}
		if _, err := p.Expect(TokenMoodLineBorderEnd); err != nil {
			return err
		}
	} else {
		if p.At(TokenMoodLineBorderEnd) {
			return p.errorf(StructuralError, "~# cannot close a plain line")
		}
		if _, err := p.Expect(TokenSimpleLineBorder); err != nil {
			return err
		}
	}
	p.inMoodLine = false
	return nil
}

func (p *Parser) parseBlockBorderLine() error {
	if _, err := p.parseLineOpen(); err != nil {
		return err
	}
	if _, err := p.Expect(TokenBlockBorder); err != nil {
		return err
	}
	if err := p.parseLineClose(); err != nil {
		return err
	}
	p.Match(TokenNewline)
	return nil
}

func (p *Parser) parseBlock() (*CodeBlock, error) {
	if err := p.parseBlockBorderLine(); err != nil {
		return nil, err
	}
	blk := &CodeBlock{ScopeID: p.newScopeID()}
	for {
		kind, ok := p.peekLineContentType()
		if ok && kind == TokenBlockBorder {
			break
		}
		if ok && kind == TokenReturn {
			ret, err := p.parseReturnLine()
			if err != nil {
				return nil, err
			}
			blk.Return = ret
			break
		}
		if !ok {
			return nil, p.errorf(StructuralError, "this code block is never closed")
		}
		stmt, err := p.parseStatementLine()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, stmt)
	}
	if err := p.parseBlockBorderLine(); err != nil {
		return nil, err
	}
	return blk, nil
}

func (p *Parser) parseReturnLine() (*Return, error) {
	lineOpen, err := p.parseLineOpen()
	if err != nil {
		return nil, err
	}
	line := lineOpen.Line
	if _, err := p.Expect(TokenReturn); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(TokenReturn); err != nil {
		return nil, err
	}
	if err := p.parseLineClose(); err != nil {
		return nil, err
	}
	p.Match(TokenNewline)
	return &Return{Expr: expr, line: line}, nil
}

// parseStatementLine parses one SIMPLE or MOOD line whose content is a
// declaration, assignment, if, or while. If/while own their condition's
// line close directly (the grammar closes that line right after the
// condition, not after the whole statement), so only the decl/assign
// branches close the line here.
func (p *Parser) parseStatementLine() (Node, error) {
	lineOpen, err := p.parseLineOpen()
	if err != nil {
		return nil, err
	}
	line := lineOpen.Line

	switch {
	case p.At(TokenMut) || p.At(TokenConst):
		decl, err := p.parseDeclaration(line)
		if err != nil {
			return nil, err
		}
		if err := p.parseLineClose(); err != nil {
			return nil, err
		}
		p.Match(TokenNewline)
		return decl, nil

	case p.At(TokenVariableBorder):
		assign, err := p.parseAssignment(line)
		if err != nil {
			return nil, err
		}
		if err := p.parseLineClose(); err != nil {
			return nil, err
		}
		p.Match(TokenNewline)
		return assign, nil

	case p.At(TokenIf):
		return p.parseIf(line)

	case p.At(TokenWhile):
		return p.parseWhile(line)

	case p.At(TokenElif) || p.At(TokenElse):
		return nil, p.errorf(StructuralError, "%s has no preceding if", p.Current().Typ)

	default:
		return nil, p.errorf(UnexpectedToken, "I did not expect %s to start a statement", p.Current().Typ)
	}
}

func (p *Parser) parseDeclaration(line int) (*Declaration, error) {
	mutTok := p.Consume()
	mutable := mutTok.Typ == TokenMut

	dtype, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	name, err := p.parseBorderedVariable()
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.Match(TokenAssignment) != nil {
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	} else {
		init = defaultValueFor(dtype)
	}

	return &Declaration{Name: name, Init: init, Mutable: mutable, DeclaredType: dtype, line: line}, nil
}

func (p *Parser) parseAssignment(line int) (*Assignment, error) {
	name, err := p.parseBorderedVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(TokenAssignment); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: name, Expr: expr, line: line}, nil
}

func (p *Parser) parseIf(line int) (*If, error) {
	ifNode := &If{line: line}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	ifNode.Condition = cond

	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	ifNode.Then = thenBlock

	for {
		kind, ok := p.peekLineContentType()
		if !ok || kind != TokenElif {
			break
		}
		elifOpen, err := p.parseLineOpen()
		if err != nil {
			return nil, err
		}
		elifCond, err := p.parseConditionBody(TokenElif)
		if err != nil {
			return nil, err
		}
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifNode.Elifs = append(ifNode.Elifs, &Elif{Condition: elifCond, Block: blk, line: elifOpen.Line})
	}

	if kind, ok := p.peekLineContentType(); ok && kind == TokenElse {
		if _, err := p.parseLineOpen(); err != nil {
			return nil, err
		}
		if _, err := p.Expect(TokenElse); err != nil {
			return nil, err
		}
		if err := p.parseLineClose(); err != nil {
			return nil, err
		}
		p.Match(TokenNewline)
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifNode.Else = blk
	}

	return ifNode, nil
}

func (p *Parser) parseWhile(line int) (*While, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &While{Condition: cond, Body: body, line: line}, nil
}

// parseCondition parses the IF/WHILE keyword, its condition expression,
// and the line close that immediately follows it (the line-open for this
// line was already consumed by the caller).
func (p *Parser) parseCondition() (Expr, error) {
	var kw TokenType
	switch {
	case p.At(TokenIf):
		kw = TokenIf
	case p.At(TokenWhile):
		kw = TokenWhile
	default:
		return nil, p.errorf(UnexpectedToken, "I expected SAVE or OINK here")
	}
	return p.parseConditionBody(kw)
}

// parseConditionBody parses keyword kw, its condition expression and the
// line close after it, with the line-open already consumed. parseCondition
// uses it for IF/WHILE; parseIf calls it directly for the elif form.
func (p *Parser) parseConditionBody(kw TokenType) (Expr, error) {
	mood := p.inMoodLine
	if _, err := p.Expect(kw); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if mood {
		cond = &UnaryOp{Operand: cond, line: cond.Line()}
	}
	if err := p.parseLineClose(); err != nil {
		return nil, err
	}
	p.Match(TokenNewline)
	return cond, nil
}

func (p *Parser) parseTypeName() (DataType, error) {
	switch {
	case p.At(TokenI16Type):
		p.Consume()
		return I16, nil
	case p.At(TokenI32Type):
		p.Consume()
		return I32, nil
	case p.At(TokenI64Type):
		p.Consume()
		return I64, nil
	case p.At(TokenBoolType):
		p.Consume()
		return BOOL, nil
	}
	return 0, p.errorf(UnexpectedToken, "I expected a type here")
}

func (p *Parser) parseBorderedVariable() (string, error) {
	if _, err := p.Expect(TokenVariableBorder); err != nil {
		return "", err
	}
	nameTok, err := p.Expect(TokenVariable)
	if err != nil {
		return "", err
	}
	if _, err := p.Expect(TokenVariableBorder); err != nil {
		return "", err
	}
	return nameTok.Val, nil
}

// defaultValueFor synthesizes the initializer a declaration omits:
// NumberLiteral("0") for integer types, BooleanLiteral(FalseLiteral) for
// BOOL. It carries no source line since it corresponds to no token.
func defaultValueFor(dtype DataType) Expr {
	if dtype == BOOL {
		return &BooleanLiteral{Text: FalseLiteral}
	}
	return &NumberLiteral{Text: "0"}
}
