package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/jackal/jack/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	p := parser.ParseExpression(strings.NewReader("1 + 2"), parser.WithFile("test.jack"))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(node); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
		} `json:"children"`
		Span *struct {
			Start struct {
				Line int `json:"line"`
			} `json:"start"`
		} `json:"span"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.Kind != "expression" {
		t.Errorf("got kind %q, want expression", decoded.Kind)
	}
	if len(decoded.Children) != 3 {
		t.Errorf("got %d children, want 3", len(decoded.Children))
	}
	if decoded.Span == nil || decoded.Span.Start.Line != 1 {
		t.Error("missing span information")
	}
}
