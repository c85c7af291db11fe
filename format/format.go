// Package format renders parse trees produced by jack/parser in the
// output formats the toolchain supports: the analyzer's XML markup,
// JSON, and an indented tree dump.
package format

import (
	"github.com/dhamidi/jackal/jack/parser"
)

type Encoder interface {
	Encode(node *parser.Node) error
}
