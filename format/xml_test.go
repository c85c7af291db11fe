package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/jackal/jack/parser"
)

func parseClass(t *testing.T, source string) *parser.Node {
	t.Helper()
	p := parser.ParseClass(strings.NewReader(source))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestXMLEncoderClass(t *testing.T) {
	source := `class Main {
   function void main() {
      var int x;
      let x = 1 + 2;
      return;
   }
}`
	want := `<class>
  <keyword> class </keyword>
  <identifier> Main </identifier>
  <symbol> { </symbol>
  <subroutineDec>
    <keyword> function </keyword>
    <keyword> void </keyword>
    <identifier> main </identifier>
    <symbol> ( </symbol>
    <parameterList>
    </parameterList>
    <symbol> ) </symbol>
    <subroutineBody>
      <symbol> { </symbol>
      <varDec>
        <keyword> var </keyword>
        <keyword> int </keyword>
        <identifier> x </identifier>
        <symbol> ; </symbol>
      </varDec>
      <statements>
        <letStatement>
          <keyword> let </keyword>
          <identifier> x </identifier>
          <symbol> = </symbol>
          <expression>
            <term>
              <integerConstant> 1 </integerConstant>
            </term>
            <symbol> + </symbol>
            <term>
              <integerConstant> 2 </integerConstant>
            </term>
          </expression>
          <symbol> ; </symbol>
        </letStatement>
        <returnStatement>
          <keyword> return </keyword>
          <symbol> ; </symbol>
        </returnStatement>
      </statements>
      <symbol> } </symbol>
    </subroutineBody>
  </subroutineDec>
  <symbol> } </symbol>
</class>
`

	var buf bytes.Buffer
	if err := NewXMLEncoder(&buf).Encode(parseClass(t, source)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != want {
		t.Errorf("markup mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestXMLEncoderStatement(t *testing.T) {
	p := parser.ParseStatement(strings.NewReader("do Screen.drawRectangle(x, y);"))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewXMLEncoder(&buf).Encode(node); err != nil {
		t.Fatal(err)
	}
	got := buf.String()

	// The call is inlined: no subroutineCall element appears.
	if strings.Contains(got, "subroutineCall") {
		t.Error("markup contains a subroutineCall element")
	}
	for _, want := range []string{
		"<doStatement>",
		"<identifier> Screen </identifier>",
		"<symbol> . </symbol>",
		"<identifier> drawRectangle </identifier>",
		"<expressionList>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markup missing %q:\n%s", want, got)
		}
	}
}

func TestXMLEncoderEscaping(t *testing.T) {
	p := parser.ParseExpression(strings.NewReader(`x < y & "a"`))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewXMLEncoder(&buf).Encode(node); err != nil {
		t.Fatal(err)
	}
	got := buf.String()

	if !strings.Contains(got, "<symbol> &lt; </symbol>") {
		t.Errorf("missing escaped <:\n%s", got)
	}
	if !strings.Contains(got, "<symbol> &amp; </symbol>") {
		t.Errorf("missing escaped &:\n%s", got)
	}
}

func TestXMLEncoderArrayAndParen(t *testing.T) {
	p := parser.ParseStatement(strings.NewReader("let a[i] = (b + c);"))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewXMLEncoder(&buf).Encode(node); err != nil {
		t.Fatal(err)
	}
	got := buf.String()

	for _, want := range []string{
		"<symbol> [ </symbol>",
		"<symbol> ] </symbol>",
		"<symbol> ( </symbol>",
		"<symbol> ) </symbol>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markup missing %q:\n%s", want, got)
		}
	}
}

func TestTokensXMLEncoder(t *testing.T) {
	tokens, err := parser.Tokenize([]byte(`let s = "hi";`), "test.jack")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewTokensXMLEncoder(&buf).Encode(tokens); err != nil {
		t.Fatal(err)
	}

	want := `<tokens>
<keyword> let </keyword>
<identifier> s </identifier>
<symbol> = </symbol>
<stringConstant> hi </stringConstant>
<symbol> ; </symbol>
</tokens>
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
