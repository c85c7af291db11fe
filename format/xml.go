package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jackal/jack/parser"
)

// XMLEncoder writes the analyzer's parse-tree markup: one element per
// grammar rule, one line per terminal. The tree keeps only the tokens
// that carry meaning, so the punctuation each rule fixes (braces,
// parentheses, commas, semicolons) is re-emitted here in place.
type XMLEncoder struct {
	w io.Writer
}

func NewXMLEncoder(w io.Writer) *XMLEncoder {
	return &XMLEncoder{w: w}
}

func (e *XMLEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *XMLEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	var buf bytes.Buffer
	writeNode(&buf, node, 0)
	return buf.Bytes(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func writeTerminal(buf *bytes.Buffer, indent int, tag, text string) {
	writeIndent(buf, indent)
	fmt.Fprintf(buf, "<%s> %s </%s>\n", tag, xmlEscaper.Replace(text), tag)
}

func writeKeyword(buf *bytes.Buffer, indent int, text string) {
	writeTerminal(buf, indent, "keyword", text)
}

func writeSymbol(buf *bytes.Buffer, indent int, text string) {
	writeTerminal(buf, indent, "symbol", text)
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteString("  ")
	}
}

func writeOpen(buf *bytes.Buffer, indent int, tag string) {
	writeIndent(buf, indent)
	fmt.Fprintf(buf, "<%s>\n", tag)
}

func writeClose(buf *bytes.Buffer, indent int, tag string) {
	writeIndent(buf, indent)
	fmt.Fprintf(buf, "</%s>\n", tag)
}

func writeNode(buf *bytes.Buffer, n *parser.Node, indent int) {
	if n.Kind.IsTerminal() {
		writeTerminal(buf, indent, n.Kind.String(), n.TokenLiteral())
		return
	}

	switch n.Kind {
	case parser.KindClass:
		writeOpen(buf, indent, "class")
		writeKeyword(buf, indent+1, "class")
		writeNode(buf, n.Children[0], indent+1)
		writeSymbol(buf, indent+1, "{")
		for _, child := range n.Children[1:] {
			writeNode(buf, child, indent+1)
		}
		writeSymbol(buf, indent+1, "}")
		writeClose(buf, indent, "class")

	case parser.KindClassVarDec:
		writeOpen(buf, indent, "classVarDec")
		writeNode(buf, n.Children[0], indent+1) // static or field
		writeNode(buf, n.Children[1], indent+1) // type
		writeNames(buf, n.Children[2:], indent+1)
		writeSymbol(buf, indent+1, ";")
		writeClose(buf, indent, "classVarDec")

	case parser.KindVarDec:
		writeOpen(buf, indent, "varDec")
		writeKeyword(buf, indent+1, "var")
		writeNode(buf, n.Children[0], indent+1) // type
		writeNames(buf, n.Children[1:], indent+1)
		writeSymbol(buf, indent+1, ";")
		writeClose(buf, indent, "varDec")

	case parser.KindSubroutineDec:
		writeOpen(buf, indent, "subroutineDec")
		writeNode(buf, n.Children[0], indent+1) // constructor, function, method
		writeNode(buf, n.Children[1], indent+1) // return type or void
		writeNode(buf, n.Children[2], indent+1) // name
		writeSymbol(buf, indent+1, "(")
		writeNode(buf, n.Children[3], indent+1) // parameterList
		writeSymbol(buf, indent+1, ")")
		writeNode(buf, n.Children[4], indent+1) // subroutineBody
		writeClose(buf, indent, "subroutineDec")

	case parser.KindParameterList:
		writeOpen(buf, indent, "parameterList")
		for i, param := range n.Children {
			if i > 0 {
				writeSymbol(buf, indent+1, ",")
			}
			// The markup flattens parameters into their type
			// and name terminals.
			for _, child := range param.Children {
				writeNode(buf, child, indent+1)
			}
		}
		writeClose(buf, indent, "parameterList")

	case parser.KindParameter:
		for _, child := range n.Children {
			writeNode(buf, child, indent)
		}

	case parser.KindSubroutineBody:
		writeOpen(buf, indent, "subroutineBody")
		writeSymbol(buf, indent+1, "{")
		for _, child := range n.Children {
			writeNode(buf, child, indent+1)
		}
		writeSymbol(buf, indent+1, "}")
		writeClose(buf, indent, "subroutineBody")

	case parser.KindStatements:
		writeOpen(buf, indent, "statements")
		for _, child := range n.Children {
			writeNode(buf, child, indent+1)
		}
		writeClose(buf, indent, "statements")

	case parser.KindLetStatement:
		writeOpen(buf, indent, "letStatement")
		writeKeyword(buf, indent+1, "let")
		writeNode(buf, n.Children[0], indent+1) // variable name
		if len(n.Children) == 3 {
			writeSymbol(buf, indent+1, "[")
			writeNode(buf, n.Children[1], indent+1)
			writeSymbol(buf, indent+1, "]")
		}
		writeSymbol(buf, indent+1, "=")
		writeNode(buf, n.Children[len(n.Children)-1], indent+1)
		writeSymbol(buf, indent+1, ";")
		writeClose(buf, indent, "letStatement")

	case parser.KindIfStatement:
		writeOpen(buf, indent, "ifStatement")
		writeKeyword(buf, indent+1, "if")
		writeSymbol(buf, indent+1, "(")
		writeNode(buf, n.Children[0], indent+1)
		writeSymbol(buf, indent+1, ")")
		writeSymbol(buf, indent+1, "{")
		writeNode(buf, n.Children[1], indent+1)
		writeSymbol(buf, indent+1, "}")
		if len(n.Children) == 3 {
			writeKeyword(buf, indent+1, "else")
			writeSymbol(buf, indent+1, "{")
			writeNode(buf, n.Children[2], indent+1)
			writeSymbol(buf, indent+1, "}")
		}
		writeClose(buf, indent, "ifStatement")

	case parser.KindWhileStatement:
		writeOpen(buf, indent, "whileStatement")
		writeKeyword(buf, indent+1, "while")
		writeSymbol(buf, indent+1, "(")
		writeNode(buf, n.Children[0], indent+1)
		writeSymbol(buf, indent+1, ")")
		writeSymbol(buf, indent+1, "{")
		writeNode(buf, n.Children[1], indent+1)
		writeSymbol(buf, indent+1, "}")
		writeClose(buf, indent, "whileStatement")

	case parser.KindDoStatement:
		writeOpen(buf, indent, "doStatement")
		writeKeyword(buf, indent+1, "do")
		writeNode(buf, n.Children[0], indent+1)
		writeSymbol(buf, indent+1, ";")
		writeClose(buf, indent, "doStatement")

	case parser.KindReturnStatement:
		writeOpen(buf, indent, "returnStatement")
		writeKeyword(buf, indent+1, "return")
		for _, child := range n.Children {
			writeNode(buf, child, indent+1)
		}
		writeSymbol(buf, indent+1, ";")
		writeClose(buf, indent, "returnStatement")

	case parser.KindExpression:
		writeOpen(buf, indent, "expression")
		for _, child := range n.Children {
			writeNode(buf, child, indent+1)
		}
		writeClose(buf, indent, "expression")

	case parser.KindExpressionList:
		writeOpen(buf, indent, "expressionList")
		for i, child := range n.Children {
			if i > 0 {
				writeSymbol(buf, indent+1, ",")
			}
			writeNode(buf, child, indent+1)
		}
		writeClose(buf, indent, "expressionList")

	case parser.KindTerm:
		writeOpen(buf, indent, "term")
		writeTermContent(buf, n, indent+1)
		writeClose(buf, indent, "term")

	case parser.KindSubroutineCall:
		// The markup has no subroutineCall element: the call's
		// parts appear directly inside the enclosing term or do
		// statement.
		writeCall(buf, n, indent)
	}
}

func writeNames(buf *bytes.Buffer, names []*parser.Node, indent int) {
	for i, name := range names {
		if i > 0 {
			writeSymbol(buf, indent, ",")
		}
		writeNode(buf, name, indent)
	}
}

func writeTermContent(buf *bytes.Buffer, n *parser.Node, indent int) {
	first := n.Children[0]

	switch {
	case len(n.Children) == 1 && first.Kind == parser.KindExpression:
		writeSymbol(buf, indent, "(")
		writeNode(buf, first, indent)
		writeSymbol(buf, indent, ")")

	case len(n.Children) == 2 && first.Kind == parser.KindIdentifier:
		// Array access: name followed by an index expression.
		writeNode(buf, first, indent)
		writeSymbol(buf, indent, "[")
		writeNode(buf, n.Children[1], indent)
		writeSymbol(buf, indent, "]")

	default:
		// Constants, identifiers, calls, and unary-prefixed
		// terms need no synthesized punctuation of their own.
		for _, child := range n.Children {
			writeNode(buf, child, indent)
		}
	}
}

func writeCall(buf *bytes.Buffer, n *parser.Node, indent int) {
	if qualifier := n.Qualifier(); qualifier != nil {
		writeNode(buf, qualifier, indent)
		writeSymbol(buf, indent, ".")
	}
	writeNode(buf, n.SubroutineName(), indent)
	writeSymbol(buf, indent, "(")
	writeNode(buf, n.FirstChildOfKind(parser.KindExpressionList), indent)
	writeSymbol(buf, indent, ")")
}

// TokensXMLEncoder writes a flat token stream as markup, one terminal
// per line inside a tokens element.
type TokensXMLEncoder struct {
	w io.Writer
}

func NewTokensXMLEncoder(w io.Writer) *TokensXMLEncoder {
	return &TokensXMLEncoder{w: w}
}

func (e *TokensXMLEncoder) Encode(tokens []parser.Token) error {
	var buf bytes.Buffer
	buf.WriteString("<tokens>\n")
	for _, tok := range tokens {
		tag := tokenTag(tok.Kind)
		fmt.Fprintf(&buf, "<%s> %s </%s>\n", tag, xmlEscaper.Replace(tok.Literal), tag)
	}
	buf.WriteString("</tokens>\n")
	_, err := e.w.Write(buf.Bytes())
	return err
}

func tokenTag(kind parser.TokenKind) string {
	switch {
	case kind == parser.TokenIdent:
		return "identifier"
	case kind == parser.TokenIntConst:
		return "integerConstant"
	case kind == parser.TokenStringConst:
		return "stringConstant"
	case kind.IsKeyword():
		return "keyword"
	default:
		return "symbol"
	}
}
