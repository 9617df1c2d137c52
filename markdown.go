package cmusearch

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownStripper renders a Markdown field value down to its plain-text
// content, the way the teacher package's MarkdownFieldParser renders
// Markdown to per-field text (parser.go's extractTextFromChildren /
// extractTextRecursive walk). Unlike the teacher, cmusearch fields are
// already the bucketing boundary -- a course catalog's "description" field
// is one field, not five -- so this flattens every node kind into a single
// text stream instead of sorting headings/bold/code into separate buckets.
//
// Only fields a caller has opted into via WithMarkdownFields are passed
// through this; by default field values are tokenized as-is.
type markdownStripper struct {
	parser goldmark.Markdown
}

func newMarkdownStripper() *markdownStripper {
	return &markdownStripper{parser: goldmark.New()}
}

// strip renders content's plain text, separating block-level elements
// (headings, paragraphs, code blocks) with a space. If ast.Walk returns an
// error it falls back to the original content, matching the teacher's own
// fallback in parser.go's ParseDocument; the callback below never returns
// one.
func (m *markdownStripper) strip(content string) string {
	source := []byte(content)
	reader := text.NewReader(source)
	doc := m.parser.Parser().Parse(reader)

	var buf bytes.Buffer
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if node.Type() == ast.TypeBlock && buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != ' ' {
				buf.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(n.Value)
		case *ast.CodeSpan, *ast.FencedCodeBlock, *ast.CodeBlock:
			// code content is still indexable text, just without the
			// surrounding fence/backtick syntax; let child Text nodes and
			// Lines (for code blocks) carry the content.
			if lines, ok := codeBlockLines(n); ok {
				for i := 0; i < lines.Len(); i++ {
					line := lines.At(i)
					buf.Write(line.Value(source))
				}
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return content
	}

	return strings.TrimSpace(buf.String())
}

// codeBlockLines extracts the Lines() segment list shared by fenced and
// indented code blocks, so strip can read their raw text. These blocks
// have no child *ast.Text nodes: their content lives only in Lines(), which
// excludes the ``` fence markers and the info string.
func codeBlockLines(n ast.Node) (*text.Segments, bool) {
	switch b := n.(type) {
	case *ast.FencedCodeBlock:
		lines := b.Lines()
		return lines, true
	case *ast.CodeBlock:
		lines := b.Lines()
		return lines, true
	}
	return nil, false
}
