package parser

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoMatch reports that a production's leading pattern is absent.
// It is always non-committing: the parser's cursor is exactly where it
// was before the attempt, so the caller may try another alternative or
// treat the failure as "zero occurrences" in a list.
var ErrNoMatch = errors.New("no match")

// ParseError reports malformed input after a production has committed,
// for example a missing closing parenthesis or semicolon. Unlike
// ErrNoMatch it is terminal: no caller has a meaningful alternative to
// retry at that point.
type ParseError struct {
	Pos      Position
	Message  string
	Expected []TokenKind
	Got      *Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

type parseFunc func(*Parser) (*Node, error)

// Parser runs one grammar production over a token sequence. Every
// production method reads a contiguous prefix of the remaining tokens
// and either returns a node, or returns ErrNoMatch with the cursor
// restored, or returns a *ParseError. A Parser is not safe for
// concurrent use; parse independent inputs with independent Parsers.
type Parser struct {
	file            string
	includeComments bool
	reader          io.Reader
	input           []byte
	tokens          []Token
	comments        []Token
	pos             int
	entry           parseFunc
}

// ParseClass parses a complete source file: a single class declaration.
func ParseClass(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseClass, opts)
}

// ParseExpression parses a standalone expression.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseExpression, opts)
}

// ParseTerm parses a single term.
func ParseTerm(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseTerm, opts)
}

// ParseExpressionList parses zero or more comma-separated expressions.
func ParseExpressionList(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseExpressionList, opts)
}

// ParseSubroutineCall parses an optionally qualified call.
func ParseSubroutineCall(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseSubroutineCall, opts)
}

// ParseStatement parses a single statement.
func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseStatement, opts)
}

// ParseStatements parses zero or more statements.
func ParseStatements(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseStatements, opts)
}

// ParseClassVarDec parses a static or field variable declaration.
func ParseClassVarDec(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseClassVarDec, opts)
}

// ParseVarDec parses a local variable declaration.
func ParseVarDec(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseVarDec, opts)
}

// ParseParameterList parses zero or more comma-separated parameters.
func ParseParameterList(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseParameterList, opts)
}

// ParseSubroutineBody parses a braced var-declaration and statement
// sequence.
func ParseSubroutineBody(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseSubroutineBody, opts)
}

// ParseSubroutineDec parses a constructor, function, or method
// declaration.
func ParseSubroutineDec(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseSubroutineDec, opts)
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish tokenizes the input and runs the entry production. The result
// covers a prefix of the input; callers that require a full parse must
// check that Rest returns no tokens.
func (p *Parser) Finish() (*Node, error) {
	if err := p.readAll(); err != nil {
		return nil, err
	}
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.tokenize()
	for _, tok := range p.tokens {
		if tok.Kind == TokenError {
			return nil, p.lexicalError(tok)
		}
	}
	return p.entry(p)
}

// Rest returns the tokens the entry production did not consume. An
// empty remainder means the whole input was parsed.
func (p *Parser) Rest() []Token {
	rest := p.tokens[p.pos:]
	if n := len(rest); n > 0 && rest[n-1].Kind == TokenEOF {
		rest = rest[:n-1]
	}
	return rest
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func (p *Parser) tokenize() {
	lexer := NewLexer(p.input, p.file)
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		if tok.Kind == TokenComment || tok.Kind == TokenLineComment {
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) lexicalError(tok Token) *ParseError {
	msg := fmt.Sprintf("unexpected character %q", tok.Literal)
	if off := tok.Span.Start.Offset; off < len(p.input) {
		switch ch := p.input[off]; {
		case isDigit(ch):
			msg = fmt.Sprintf("integer constant out of range: %s (max %d)", tok.Literal, MaxIntConst)
		case ch == '"':
			msg = "unterminated string constant"
		}
	}
	return &ParseError{Pos: tok.Span.Start, Message: msg, Got: &tok}
}

// Tokenize lexes input into its significant tokens, without the
// trailing EOF marker. Whitespace and comments are dropped.
func Tokenize(input []byte, file string) ([]Token, error) {
	lexer := NewLexer(input, file)
	var tokens []Token
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenEOF:
			return tokens, nil
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		case TokenError:
			p := &Parser{input: input}
			return nil, p.lexicalError(tok)
		default:
			tokens = append(tokens, tok)
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, &ParseError{
			Pos:      tok.Span.Start,
			Message:  fmt.Sprintf("expected %q, got %s", kind, describe(tok)),
			Expected: []TokenKind{kind},
			Got:      &tok,
		}
	}
	p.advance()
	return tok, nil
}

// committed converts ErrNoMatch into a hard error. Used after a
// production has consumed part of its pattern, where a missing
// continuation is malformed input rather than an alternative to retry.
func (p *Parser) committed(err error, what string) error {
	if errors.Is(err, ErrNoMatch) {
		tok := p.peek()
		return &ParseError{
			Pos:     tok.Span.Start,
			Message: fmt.Sprintf("expected %s, got %s", what, describe(tok)),
			Got:     &tok,
		}
	}
	return err
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	return n
}

func terminalKind(k TokenKind) NodeKind {
	switch {
	case k == TokenIdent:
		return KindIdentifier
	case k == TokenIntConst:
		return KindIntegerConstant
	case k == TokenStringConst:
		return KindStringConstant
	case k.IsKeyword():
		return KindKeyword
	default:
		return KindSymbol
	}
}

func terminalNode(tok Token) *Node {
	return &Node{Kind: terminalKind(tok.Kind), Span: tok.Span, Token: &tok}
}

// parseTerm tries the term alternatives in fixed priority order:
// integer constant, string constant, keyword constant, unary operator,
// parenthesized expression, subroutine call or array access, bare
// identifier.
func (p *Parser) parseTerm() (*Node, error) {
	node := p.startNode(KindTerm)
	tok := p.peek()

	switch {
	case tok.Kind == TokenIntConst, tok.Kind == TokenStringConst, tok.Kind.IsKeywordConst():
		p.advance()
		node.AddChild(terminalNode(tok))

	case tok.Kind.IsUnaryOp():
		save := p.pos
		p.advance()
		inner, err := p.parseTerm()
		if errors.Is(err, ErrNoMatch) {
			p.pos = save
			return nil, ErrNoMatch
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(terminalNode(tok))
		node.AddChild(inner)

	case tok.Kind == TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, p.committed(err, `expression after "("`)
		}
		node.AddChild(expr)
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}

	case tok.Kind == TokenIdent:
		// One token of lookahead disambiguates the three
		// identifier-led alternatives.
		switch p.peekN(1).Kind {
		case TokenLParen, TokenDot:
			call, err := p.parseSubroutineCall()
			if err != nil {
				return nil, err
			}
			node.AddChild(call)
		case TokenLBracket:
			p.advance()
			node.AddChild(terminalNode(tok))
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, p.committed(err, `expression after "["`)
			}
			node.AddChild(index)
			if _, err := p.expect(TokenRBracket); err != nil {
				return nil, err
			}
		default:
			p.advance()
			node.AddChild(terminalNode(tok))
		}

	default:
		return nil, ErrNoMatch
	}

	return p.finishNode(node), nil
}

// parseExpression parses a term followed by zero or more
// (operator, term) pairs. An operator with no following term is not
// part of the expression: the pair is attempted as a unit and the
// cursor restored when the term does not follow.
func (p *Parser) parseExpression() (*Node, error) {
	node := p.startNode(KindExpression)

	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	node.AddChild(term)

	for p.peek().Kind.IsBinaryOp() {
		save := p.pos
		op := p.advance()
		term, err := p.parseTerm()
		if errors.Is(err, ErrNoMatch) {
			p.pos = save
			break
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(terminalNode(op))
		node.AddChild(term)
	}

	return p.finishNode(node), nil
}

// parseExpressionList parses zero or more comma-separated expressions.
// The empty list is a successful parse. A comma not followed by an
// expression is malformed: trailing commas are not legal in any slot
// where a list appears.
func (p *Parser) parseExpressionList() (*Node, error) {
	node := p.startNode(KindExpressionList)

	expr, err := p.parseExpression()
	if errors.Is(err, ErrNoMatch) {
		return p.finishNode(node), nil
	}
	if err != nil {
		return nil, err
	}
	node.AddChild(expr)

	for p.check(TokenComma) {
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, p.committed(err, `expression after ","`)
		}
		node.AddChild(expr)
	}

	return p.finishNode(node), nil
}

// parseSubroutineCall parses [qualifier "."] name "(" expressions ")".
// The qualifier is an identifier or the keyword "this"; any other
// keyword before "." is a non-match so the caller can fall through to
// the bare term alternatives.
func (p *Parser) parseSubroutineCall() (*Node, error) {
	node := p.startNode(KindSubroutineCall)
	first := p.peek()

	switch {
	case (first.Kind == TokenIdent || first.Kind == TokenThis) && p.peekN(1).Kind == TokenDot:
		p.advance()
		p.advance()
		node.AddChild(terminalNode(first))
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		node.AddChild(terminalNode(name))
	case first.Kind == TokenIdent && p.peekN(1).Kind == TokenLParen:
		p.advance()
		node.AddChild(terminalNode(first))
	default:
		return nil, ErrNoMatch
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	node.AddChild(args)
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return p.finishNode(node), nil
}

// Qualifier returns the qualifier node of a subroutine call, or nil
// for an unqualified call.
func (n *Node) Qualifier() *Node {
	if n.Kind != KindSubroutineCall || len(n.Children) < 3 {
		return nil
	}
	return n.Children[0]
}

// SubroutineName returns the name node of a subroutine call.
func (n *Node) SubroutineName() *Node {
	if n.Kind != KindSubroutineCall {
		return nil
	}
	if len(n.Children) < 3 {
		return n.Children[0]
	}
	return n.Children[1]
}

func (p *Parser) parseStatement() (*Node, error) {
	switch p.peek().Kind {
	case TokenLet:
		return p.parseLetStatement()
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenDo:
		return p.parseDoStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	default:
		return nil, ErrNoMatch
	}
}

// parseStatements collects statements until the first non-match. Block
// bodies of arbitrary length are bounded this way; the surrounding
// braces are matched by the caller.
func (p *Parser) parseStatements() (*Node, error) {
	node := p.startNode(KindStatements)
	for {
		stmt, err := p.parseStatement()
		if errors.Is(err, ErrNoMatch) {
			break
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(stmt)
	}
	return p.finishNode(node), nil
}

func (p *Parser) parseLetStatement() (*Node, error) {
	node := p.startNode(KindLetStatement)
	p.advance()

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	node.AddChild(terminalNode(name))

	if p.check(TokenLBracket) {
		p.advance()
		index, err := p.parseExpression()
		if err != nil {
			return nil, p.committed(err, `expression after "["`)
		}
		node.AddChild(index)
		if _, err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenEQ); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, p.committed(err, `expression after "="`)
	}
	node.AddChild(value)
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return p.finishNode(node), nil
}

func (p *Parser) parseIfStatement() (*Node, error) {
	node := p.startNode(KindIfStatement)
	p.advance()

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, p.committed(err, `expression after "("`)
	}
	node.AddChild(cond)
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	then, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	node.AddChild(then)
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	if p.check(TokenElse) {
		p.advance()
		if _, err := p.expect(TokenLBrace); err != nil {
			return nil, err
		}
		alt, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		node.AddChild(alt)
		if _, err := p.expect(TokenRBrace); err != nil {
			return nil, err
		}
	}

	return p.finishNode(node), nil
}

func (p *Parser) parseWhileStatement() (*Node, error) {
	node := p.startNode(KindWhileStatement)
	p.advance()

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, p.committed(err, `expression after "("`)
	}
	node.AddChild(cond)
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	node.AddChild(body)
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	return p.finishNode(node), nil
}

func (p *Parser) parseDoStatement() (*Node, error) {
	node := p.startNode(KindDoStatement)
	p.advance()

	call, err := p.parseSubroutineCall()
	if err != nil {
		return nil, p.committed(err, `subroutine call after "do"`)
	}
	node.AddChild(call)
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return p.finishNode(node), nil
}

func (p *Parser) parseReturnStatement() (*Node, error) {
	node := p.startNode(KindReturnStatement)
	p.advance()

	value, err := p.parseExpression()
	if err == nil {
		node.AddChild(value)
	} else if !errors.Is(err, ErrNoMatch) {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return p.finishNode(node), nil
}

// parseType matches a builtin type keyword or a class name. Whether
// the class name denotes a real class is not a syntactic concern.
func (p *Parser) parseType() (*Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenInt, TokenChar, TokenBoolean, TokenIdent:
		p.advance()
		return terminalNode(tok), nil
	}
	return nil, ErrNoMatch
}

func (p *Parser) parseParameter() (*Node, error) {
	node := p.startNode(KindParameter)

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	node.AddChild(typ)

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	node.AddChild(terminalNode(name))

	return p.finishNode(node), nil
}

func (p *Parser) parseParameterList() (*Node, error) {
	node := p.startNode(KindParameterList)

	param, err := p.parseParameter()
	if errors.Is(err, ErrNoMatch) {
		return p.finishNode(node), nil
	}
	if err != nil {
		return nil, err
	}
	node.AddChild(param)

	for p.check(TokenComma) {
		p.advance()
		param, err := p.parseParameter()
		if err != nil {
			return nil, p.committed(err, `parameter after ","`)
		}
		node.AddChild(param)
	}

	return p.finishNode(node), nil
}

// parseClassVarDec parses "static" or "field", a type, and one or more
// variable names. The decorator keyword is kept as the first child.
func (p *Parser) parseClassVarDec() (*Node, error) {
	decorator := p.peek()
	if decorator.Kind != TokenStatic && decorator.Kind != TokenField {
		return nil, ErrNoMatch
	}

	node := p.startNode(KindClassVarDec)
	p.advance()
	node.AddChild(terminalNode(decorator))

	if err := p.parseVarNames(node); err != nil {
		return nil, err
	}
	return p.finishNode(node), nil
}

// parseVarDec parses "var", a type, and one or more variable names.
// The shape matches parseClassVarDec without the decorator.
func (p *Parser) parseVarDec() (*Node, error) {
	if !p.check(TokenVar) {
		return nil, ErrNoMatch
	}

	node := p.startNode(KindVarDec)
	p.advance()

	if err := p.parseVarNames(node); err != nil {
		return nil, err
	}
	return p.finishNode(node), nil
}

func (p *Parser) parseVarNames(node *Node) error {
	typ, err := p.parseType()
	if err != nil {
		return p.committed(err, "type")
	}
	node.AddChild(typ)

	name, err := p.expect(TokenIdent)
	if err != nil {
		return err
	}
	node.AddChild(terminalNode(name))

	for p.check(TokenComma) {
		p.advance()
		name, err := p.expect(TokenIdent)
		if err != nil {
			return err
		}
		node.AddChild(terminalNode(name))
	}

	_, err = p.expect(TokenSemicolon)
	return err
}

// parseSubroutineBody parses "{" varDec* statements "}". Declarations
// precede statements; the first token that does not open a varDec ends
// the declaration sequence.
func (p *Parser) parseSubroutineBody() (*Node, error) {
	if !p.check(TokenLBrace) {
		return nil, ErrNoMatch
	}

	node := p.startNode(KindSubroutineBody)
	p.advance()

	for {
		varDec, err := p.parseVarDec()
		if errors.Is(err, ErrNoMatch) {
			break
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(varDec)
	}

	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	node.AddChild(stmts)

	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return p.finishNode(node), nil
}

func (p *Parser) parseSubroutineDec() (*Node, error) {
	kind := p.peek()
	switch kind.Kind {
	case TokenConstructor, TokenFunction, TokenMethod:
	default:
		return nil, ErrNoMatch
	}

	node := p.startNode(KindSubroutineDec)
	p.advance()
	node.AddChild(terminalNode(kind))

	if p.check(TokenVoid) {
		tok := p.advance()
		node.AddChild(terminalNode(tok))
	} else {
		ret, err := p.parseType()
		if err != nil {
			return nil, p.committed(err, "return type")
		}
		node.AddChild(ret)
	}

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	node.AddChild(terminalNode(name))

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	node.AddChild(params)
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseSubroutineBody()
	if err != nil {
		return nil, p.committed(err, "subroutine body")
	}
	node.AddChild(body)

	return p.finishNode(node), nil
}

// parseClass parses the whole-file production: "class" name "{"
// classVarDec* subroutineDec* "}".
func (p *Parser) parseClass() (*Node, error) {
	if !p.check(TokenClass) {
		return nil, ErrNoMatch
	}

	node := p.startNode(KindClass)
	p.advance()

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	node.AddChild(terminalNode(name))

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	for {
		varDec, err := p.parseClassVarDec()
		if errors.Is(err, ErrNoMatch) {
			break
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(varDec)
	}

	for {
		sub, err := p.parseSubroutineDec()
		if errors.Is(err, ErrNoMatch) {
			break
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(sub)
	}

	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return p.finishNode(node), nil
}
