package oink

import "testing"

func TestLexer_Tokenizes(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   []TokenType
	}{
		{"assignment", "#😀🐷🐖x🐖@2#", []TokenType{
			TokenSimpleLineBorder, TokenMut, TokenI32Type, TokenVariableBorder,
			TokenVariable, TokenVariableBorder, TokenAssignment, TokenNumber,
			TokenSimpleLineBorder, TokenTheEnd,
		}},
		{"mood_border", "#~😀🐷🐖x🐖@10❤️5~#", []TokenType{
			TokenMoodLineBorderStart, TokenMut, TokenI32Type, TokenVariableBorder,
			TokenVariable, TokenVariableBorder, TokenAssignment, TokenNumber,
			TokenPlus, TokenNumber, TokenMoodLineBorderEnd, TokenTheEnd,
		}},
		{"return_line", "#...🐖x🐖...#", []TokenType{
			TokenSimpleLineBorder, TokenReturn, TokenVariableBorder, TokenVariable,
			TokenVariableBorder, TokenReturn, TokenSimpleLineBorder, TokenTheEnd,
		}},
		{"block_border", "#🐖🐖🐖#", []TokenType{
			TokenSimpleLineBorder, TokenBlockBorder, TokenSimpleLineBorder, TokenTheEnd,
		}},
		{"keywords", "SAVE HURT KILL OINK LOVE HATE wow hru bruh", []TokenType{
			TokenIf, TokenElif, TokenElse, TokenWhile, TokenTrue, TokenFalse,
			TokenBoolType, TokenAnd, TokenOr, TokenTheEnd,
		}},
		{"negative_number", "-42", []TokenType{TokenNumber, TokenTheEnd}},
		{"comparisons", "🌸🌸 💩🌸 🌸> 🌸< > <", []TokenType{
			TokenEquals, TokenNotEquals, TokenGreaterEqual, TokenLessEqual,
			TokenGreater, TokenLess, TokenTheEnd,
		}},
		{"bracket", "**5**", []TokenType{
			TokenBracket, TokenNumber, TokenBracket, TokenTheEnd,
		}},
		{"line_comment_discarded", "👀 this whole line is gone\n5", []TokenType{
			TokenNewline, TokenNumber, TokenTheEnd,
		}},
		{"block_comment_discarded", "👀👀👀 all gone 👀👀👀 5", []TokenType{
			TokenNumber, TokenTheEnd,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := lex(tc.input)
			if err != nil {
				t.Fatalf("lex(%q) returned error: %v", tc.input, err)
			}
			if len(tokens) != len(tc.want) {
				t.Fatalf("lex(%q) produced %d tokens, want %d: %v", tc.input, len(tokens), len(tc.want), tokens)
			}
			for i, typ := range tc.want {
				if tokens[i].Typ != typ {
					t.Errorf("token %d: got %s, want %s", i, tokens[i].Typ, typ)
				}
			}
		})
	}
}

func TestLexer_Deterministic(t *testing.T) {
	input := "#😀🐷🐖x🐖@2❤️3#\n# SAVE 🐖x🐖 > 5 #\n#...🐖x🐖...#"
	first, err := lex(input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := lex(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("re-lexing produced a different token count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Typ != second[i].Typ || first[i].Val != second[i].Val {
			t.Fatalf("token %d differs between lex runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	_, err := lex("# 😀 🐷 🐖x🐖 @ 10 $ #\n")
	if err == nil {
		t.Fatal("expected an error for the stray '$'")
	}
	cerr, ok := err.(*CompilationError)
	if !ok {
		t.Fatalf("expected *CompilationError, got %T", err)
	}
	if cerr.Kind != UnexpectedCharacter {
		t.Fatalf("got kind %s, want UnexpectedCharacter", cerr.Kind)
	}
	if cerr.Line != 1 {
		t.Fatalf("got line %d, want 1", cerr.Line)
	}
}

// TestLexer_MalformedNumber exercises lexNumber's digit-run validation
// directly. The INITIAL-state resolution order never actually hands
// lexNumber a span containing anything but clean digits (a leading '-'
// only ever gets consumed alongside a confirmed following digit, and the
// absorption loop only ever eats digit bytes). The guard stays anyway;
// this test drives it directly by forcing a span it wasn't built from.
func TestLexer_MalformedNumber(t *testing.T) {
	l := &lexer{input: "x5", line: 1, col: 1, startLine: 1, startCol: 1}
	l.pos = 2
	state := lexNumber(l)
	if state != nil {
		t.Fatal("lexNumber must terminate the state machine on failure")
	}
	if l.err == nil || l.err.Kind != MalformedNumber {
		t.Fatalf("got %v, want MalformedNumber", l.err)
	}
}

// TestLexer_UnterminatedBlockComment documents the deliberate choice to
// silently swallow the rest of the file rather than raise a diagnostic.
func TestLexer_UnterminatedBlockComment(t *testing.T) {
	tokens, err := lex("5 👀👀👀 never closed")
	if err != nil {
		t.Fatalf("unterminated block comment must not error, got: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Typ != TokenNumber || tokens[1].Typ != TokenTheEnd {
		t.Fatalf("unexpected token stream: %v", tokens)
	}
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	tokens, err := lex("5\n10")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Line != 1 {
		t.Fatalf("first number: got line %d, want 1", tokens[0].Line)
	}
	if tokens[2].Line != 2 {
		t.Fatalf("second number: got line %d, want 2", tokens[2].Line)
	}
}
