package parser

import (
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindClass, "class"},
		{KindClassVarDec, "classVarDec"},
		{KindSubroutineDec, "subroutineDec"},
		{KindParameterList, "parameterList"},
		{KindSubroutineBody, "subroutineBody"},
		{KindVarDec, "varDec"},
		{KindStatements, "statements"},
		{KindLetStatement, "letStatement"},
		{KindIfStatement, "ifStatement"},
		{KindWhileStatement, "whileStatement"},
		{KindDoStatement, "doStatement"},
		{KindReturnStatement, "returnStatement"},
		{KindExpression, "expression"},
		{KindTerm, "term"},
		{KindExpressionList, "expressionList"},
		{KindSubroutineCall, "subroutineCall"},
		{KindKeyword, "keyword"},
		{KindSymbol, "symbol"},
		{KindIdentifier, "identifier"},
		{KindIntegerConstant, "integerConstant"},
		{KindStringConstant, "stringConstant"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNodeAddChild(t *testing.T) {
	parent := &Node{Kind: KindClass}
	child1 := &Node{Kind: KindClassVarDec}
	child2 := &Node{Kind: KindSubroutineDec}

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.AddChild(nil)

	if len(parent.Children) != 2 {
		t.Errorf("Expected 2 children, got %d", len(parent.Children))
	}
	if parent.Children[0] != child1 {
		t.Error("First child mismatch")
	}
	if parent.Children[1] != child2 {
		t.Error("Second child mismatch")
	}
}

func TestNodeFirstChildOfKind(t *testing.T) {
	sub1 := &Node{Kind: KindSubroutineDec, Token: &Token{Literal: "draw"}}
	sub2 := &Node{Kind: KindSubroutineDec, Token: &Token{Literal: "erase"}}
	varDec := &Node{Kind: KindClassVarDec}

	parent := &Node{
		Kind:     KindClass,
		Children: []*Node{varDec, sub1, sub2},
	}

	t.Run("finds first match", func(t *testing.T) {
		got := parent.FirstChildOfKind(KindSubroutineDec)
		if got != sub1 {
			t.Error("Expected to find first subroutine")
		}
	})

	t.Run("returns nil when not found", func(t *testing.T) {
		got := parent.FirstChildOfKind(KindIfStatement)
		if got != nil {
			t.Error("Expected nil for non-existent kind")
		}
	})
}

func TestNodeChildrenOfKind(t *testing.T) {
	sub1 := &Node{Kind: KindSubroutineDec}
	sub2 := &Node{Kind: KindSubroutineDec}
	varDec := &Node{Kind: KindClassVarDec}

	parent := &Node{
		Kind:     KindClass,
		Children: []*Node{varDec, sub1, sub2},
	}

	t.Run("finds all matches", func(t *testing.T) {
		subs := parent.ChildrenOfKind(KindSubroutineDec)
		if len(subs) != 2 {
			t.Errorf("Expected 2 subroutines, got %d", len(subs))
		}
	})

	t.Run("returns empty slice when not found", func(t *testing.T) {
		got := parent.ChildrenOfKind(KindIfStatement)
		if len(got) != 0 {
			t.Errorf("Expected empty slice, got %d elements", len(got))
		}
	})
}

func TestNodeTokenLiteral(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		node := &Node{
			Kind:  KindIdentifier,
			Token: &Token{Literal: "square"},
		}
		if got := node.TokenLiteral(); got != "square" {
			t.Errorf("TokenLiteral() = %q, want %q", got, "square")
		}
	})

	t.Run("without token", func(t *testing.T) {
		node := &Node{Kind: KindStatements}
		if got := node.TokenLiteral(); got != "" {
			t.Errorf("TokenLiteral() = %q, want empty string", got)
		}
	})
}

func TestNodeString(t *testing.T) {
	name := &Node{Kind: KindIdentifier, Token: &Token{Literal: "Main"}}
	class := &Node{Kind: KindClass, Children: []*Node{name}}

	got := class.String()
	want := "class\n  identifier Main\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
