package parser

import "testing"

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"class Main {}", []TokenKind{TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenIntConst, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringConst, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"/** api doc */ class", []TokenKind{TokenClass, TokenEOF}},
		{"+ - * /", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF}},
		{"& | < > = ~", []TokenKind{TokenAmp, TokenPipe, TokenLT, TokenGT, TokenEQ, TokenTilde, TokenEOF}},
		{"( ) [ ] { }", []TokenKind{TokenLParen, TokenRParen, TokenLBracket, TokenRBracket, TokenLBrace, TokenRBrace, TokenEOF}},
		{". , ;", []TokenKind{TokenDot, TokenComma, TokenSemicolon, TokenEOF}},
		{"let x=5;", []TokenKind{TokenLet, TokenIdent, TokenEQ, TokenIntConst, TokenSemicolon, TokenEOF}},
		{"true false null this", []TokenKind{TokenTrue, TokenFalse, TokenNull, TokenThis, TokenEOF}},
		{"constructor function method", []TokenKind{TokenConstructor, TokenFunction, TokenMethod, TokenEOF}},
		{"classy", []TokenKind{TokenIdent, TokenEOF}},
		{"x_1", []TokenKind{TokenIdent, TokenEOF}},
		{"_private", []TokenKind{TokenIdent, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.jack")
			var got []TokenKind
			for {
				tok := lexer.NextToken()
				if tok.Kind != TokenWhitespace && tok.Kind != TokenComment && tok.Kind != TokenLineComment {
					got = append(got, tok.Kind)
				}
				if tok.Kind == TokenEOF {
					break
				}
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerStringConstant(t *testing.T) {
	lexer := NewLexer([]byte(`"how many numbers? "`), "test.jack")
	tok := lexer.NextToken()
	if tok.Kind != TokenStringConst {
		t.Fatalf("got %v, want StringConstant", tok.Kind)
	}
	if tok.Literal != "how many numbers? " {
		t.Errorf("got %q, want delimiters stripped", tok.Literal)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lexer := NewLexer([]byte("\"oops\nlet"), "test.jack")
	tok := lexer.NextToken()
	if tok.Kind != TokenError {
		t.Fatalf("got %v, want Error", tok.Kind)
	}
}

func TestLexerIntegerRange(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"0", TokenIntConst},
		{"32767", TokenIntConst},
		{"32768", TokenError},
		{"100000", TokenError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.jack")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("got %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("got literal %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("let\nx"), "Main.jack")

	tok := lexer.NextToken()
	if tok.Span.Start.Line != 1 || tok.Span.Start.Column != 1 {
		t.Errorf("let starts at %d:%d, want 1:1", tok.Span.Start.Line, tok.Span.Start.Column)
	}
	if tok.Span.Start.File != "Main.jack" {
		t.Errorf("got file %q, want Main.jack", tok.Span.Start.File)
	}

	lexer.NextToken() // whitespace
	tok = lexer.NextToken()
	if tok.Span.Start.Line != 2 || tok.Span.Start.Column != 1 {
		t.Errorf("x starts at %d:%d, want 2:1", tok.Span.Start.Line, tok.Span.Start.Column)
	}
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize([]byte("let x = 1; // set up"), "test.jack")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 5 {
		t.Fatalf("got %d tokens, want 5", len(tokens))
	}

	if _, err := Tokenize([]byte("let x = 99999;"), "test.jack"); err == nil {
		t.Error("expected error for out-of-range integer")
	}
}
