// Package verify checks that rewriting a markdown document kept its block
// structure, by parsing both versions with goldmark and comparing outlines.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrStructureChanged indicates the rewritten document parses to a different
// block structure than the original.
var ErrStructureChanged = errors.New("verify: markdown structure changed")

// Node is one block-level node of a document outline.
type Node struct {
	Kind string
	Text string
}

func (n Node) String() string {
	const limit = 40
	t := n.Text
	if len(t) > limit {
		t = t[:limit] + "..."
	}
	if t == "" {
		return n.Kind
	}
	return fmt.Sprintf("%s %q", n.Kind, t)
}

var parser = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
).Parser()

// Outline parses src and returns its block nodes in document order. Code and
// HTML blocks keep their exact text; other text is compared with whitespace
// collapsed, because a soft line break and a space render the same.
func Outline(src []byte) []Node {
	doc := parser.Parse(text.NewReader(src))

	var nodes []Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock || n.Kind() == ast.KindDocument {
			return ast.WalkContinue, nil
		}
		nodes = append(nodes, outlineNode(n, src))
		return ast.WalkContinue, nil
	})
	return nodes
}

func outlineNode(n ast.Node, src []byte) Node {
	kind := n.Kind().String()
	if h, ok := n.(*ast.Heading); ok {
		kind = fmt.Sprintf("%s%d", kind, h.Level)
	}

	var raw strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		raw.Write(seg.Value(src))
	}

	switch n.Kind() {
	case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
		return Node{Kind: kind, Text: raw.String()}
	}
	return Node{Kind: kind, Text: strings.Join(strings.Fields(raw.String()), " ")}
}

// Compare returns an error wrapping ErrStructureChanged when after does not
// have the same outline as before.
func Compare(before, after []byte) error {
	a, b := Outline(before), Outline(after)
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return fmt.Errorf("%w: node %d: %s became %s", ErrStructureChanged, i, a[i], b[i])
		}
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d block nodes became %d", ErrStructureChanged, len(a), len(b))
	}
	return nil
}
