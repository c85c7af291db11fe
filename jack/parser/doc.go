// Package parser provides a lexer and recursive-descent parser for the
// Jack programming language, producing a concrete syntax tree tagged
// with grammar-rule kinds.
//
// # Overview
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (CST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// Each grammar production reads a contiguous prefix of the remaining
// token sequence. A production either succeeds and returns its node,
// or fails without consuming anything (ErrNoMatch), or reports
// malformed input after part of its pattern already matched
// (*ParseError). Because a non-match never consumes tokens, callers
// can try grammar alternatives in priority order and list productions
// can stop cleanly at the first element that does not parse.
//
// # Entry Points
//
// Every production of interest has a constructor in the style of
// ParseClass and ParseExpression:
//
//	p := parser.ParseClass(file, parser.WithFile("Main.jack"))
//	tree, err := p.Finish()
//
// Finish parses a prefix of the input; Rest returns the unconsumed
// tokens, which a caller requiring a full parse checks is empty.
//
// # Node Types
//
// The CST uses a uniform node structure:
//
//	type Node struct {
//	    Kind     NodeKind   // e.g. KindClass, KindLetStatement, KindTerm
//	    Span     Span       // source location
//	    Children []*Node    // child nodes (for non-terminals)
//	    Token    *Token     // lexical token (for terminals)
//	}
//
// Expression nodes alternate term and operator children and always
// hold an odd number of them: a trailing operator with no following
// term is left unconsumed rather than committed.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Create separate
// instances for concurrent parsing of different files; parsers share
// no state.
package parser
