package parser

type NodeKind int

const (
	// Non-terminals
	KindClass NodeKind = iota
	KindClassVarDec
	KindSubroutineDec
	KindParameterList
	KindParameter
	KindSubroutineBody
	KindVarDec
	KindStatements
	KindLetStatement
	KindIfStatement
	KindWhileStatement
	KindDoStatement
	KindReturnStatement
	KindExpression
	KindTerm
	KindExpressionList
	KindSubroutineCall

	// Terminals
	KindKeyword
	KindSymbol
	KindIdentifier
	KindIntegerConstant
	KindStringConstant
)

var nodeKindNames = map[NodeKind]string{
	KindClass:           "class",
	KindClassVarDec:     "classVarDec",
	KindSubroutineDec:   "subroutineDec",
	KindParameterList:   "parameterList",
	KindParameter:       "parameter",
	KindSubroutineBody:  "subroutineBody",
	KindVarDec:          "varDec",
	KindStatements:      "statements",
	KindLetStatement:    "letStatement",
	KindIfStatement:     "ifStatement",
	KindWhileStatement:  "whileStatement",
	KindDoStatement:     "doStatement",
	KindReturnStatement: "returnStatement",
	KindExpression:      "expression",
	KindTerm:            "term",
	KindExpressionList:  "expressionList",
	KindSubroutineCall:  "subroutineCall",
	KindKeyword:         "keyword",
	KindSymbol:          "symbol",
	KindIdentifier:      "identifier",
	KindIntegerConstant: "integerConstant",
	KindStringConstant:  "stringConstant",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether nodes of this kind carry a token and no
// children.
func (k NodeKind) IsTerminal() bool {
	switch k {
	case KindKeyword, KindSymbol, KindIdentifier, KindIntegerConstant, KindStringConstant:
		return true
	}
	return false
}

// Node is one vertex of the parse tree. Terminal nodes carry the
// lexical token they were built from; non-terminals carry children.
// Nodes are never mutated once their production has returned.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if showPositions {
		result += " [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]"
	}
	if n.Token != nil {
		result += " " + n.Token.Literal
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
