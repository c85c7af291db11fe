package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntConst
	TokenStringConst

	// Keywords
	TokenClass
	TokenConstructor
	TokenFunction
	TokenMethod
	TokenField
	TokenStatic
	TokenVar
	TokenInt
	TokenChar
	TokenBoolean
	TokenVoid
	TokenTrue
	TokenFalse
	TokenNull
	TokenThis
	TokenLet
	TokenDo
	TokenIf
	TokenElse
	TokenWhile
	TokenReturn

	// Symbols
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenDot
	TokenComma
	TokenSemicolon
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenAmp
	TokenPipe
	TokenLT
	TokenGT
	TokenEQ
	TokenTilde
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenError:       "Error",
	TokenWhitespace:  "Whitespace",
	TokenComment:     "Comment",
	TokenLineComment: "LineComment",
	TokenIdent:       "Identifier",
	TokenIntConst:    "IntegerConstant",
	TokenStringConst: "StringConstant",
	TokenClass:       "class",
	TokenConstructor: "constructor",
	TokenFunction:    "function",
	TokenMethod:      "method",
	TokenField:       "field",
	TokenStatic:      "static",
	TokenVar:         "var",
	TokenInt:         "int",
	TokenChar:        "char",
	TokenBoolean:     "boolean",
	TokenVoid:        "void",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenNull:        "null",
	TokenThis:        "this",
	TokenLet:         "let",
	TokenDo:          "do",
	TokenIf:          "if",
	TokenElse:        "else",
	TokenWhile:       "while",
	TokenReturn:      "return",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenDot:         ".",
	TokenComma:       ",",
	TokenSemicolon:   ";",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenAmp:         "&",
	TokenPipe:        "|",
	TokenLT:          "<",
	TokenGT:          ">",
	TokenEQ:          "=",
	TokenTilde:       "~",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is one of the 21 reserved words.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenClass && k <= TokenReturn
}

// IsSymbol reports whether k is one of the 19 punctuation symbols.
func (k TokenKind) IsSymbol() bool {
	return k >= TokenLBrace && k <= TokenTilde
}

// IsBinaryOp reports whether k may appear between two terms of an
// expression.
func (k TokenKind) IsBinaryOp() bool {
	switch k {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash,
		TokenAmp, TokenPipe, TokenLT, TokenGT, TokenEQ:
		return true
	}
	return false
}

// IsUnaryOp reports whether k may prefix a term.
func (k TokenKind) IsUnaryOp() bool {
	return k == TokenMinus || k == TokenTilde
}

// IsKeywordConst reports whether k is a keyword usable as a value.
func (k TokenKind) IsKeywordConst() bool {
	switch k {
	case TokenTrue, TokenFalse, TokenNull, TokenThis:
		return true
	}
	return false
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"class":       TokenClass,
	"constructor": TokenConstructor,
	"function":    TokenFunction,
	"method":      TokenMethod,
	"field":       TokenField,
	"static":      TokenStatic,
	"var":         TokenVar,
	"int":         TokenInt,
	"char":        TokenChar,
	"boolean":     TokenBoolean,
	"void":        TokenVoid,
	"true":        TokenTrue,
	"false":       TokenFalse,
	"null":        TokenNull,
	"this":        TokenThis,
	"let":         TokenLet,
	"do":          TokenDo,
	"if":          TokenIf,
	"else":        TokenElse,
	"while":       TokenWhile,
	"return":      TokenReturn,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
