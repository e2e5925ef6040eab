package feedback

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind classifies a Block
type Kind string

const (
	KindHeading   Kind = "heading"
	KindListItem  Kind = "list_item"
	KindParagraph Kind = "paragraph"
	KindCode      Kind = "code"
)

// Block is one structural element of the feedback
type Block struct {
	Kind     Kind   `json:"kind"`
	Level    int    `json:"level,omitempty"`    // headings only
	Language string `json:"language,omitempty"` // fenced code only
	Text     string `json:"text"`
	ID       string `json:"id,omitempty"` // heading anchor, matches HTML output
}

// Blocks returns the outline of the feedback. Lines inside fenced code are
// never mistaken for headings or list items.
func Blocks(src string) []Block {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			b := Block{Kind: KindHeading, Level: node.Level, Text: inlineText(node, source)}
			if id, ok := node.AttributeString("id"); ok {
				if s, ok := id.([]byte); ok {
					b.ID = string(s)
				}
			}
			blocks = append(blocks, b)
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if first := node.FirstChild(); first != nil {
				blocks = append(blocks, Block{Kind: KindListItem, Text: inlineText(first, source)})
			}

		case *ast.Paragraph:
			if node.Parent() != nil && node.Parent().Kind() == ast.KindDocument {
				blocks = append(blocks, Block{Kind: KindParagraph, Text: inlineText(node, source)})
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			blocks = append(blocks, Block{Kind: KindCode, Language: string(node.Language(source)), Text: codeText(node, source)})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			blocks = append(blocks, Block{Kind: KindCode, Text: codeText(node, source)})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return blocks
}

// Headings is the table of contents of the feedback
func Headings(src string) []Block {
	var out []Block
	for _, b := range Blocks(src) {
		if b.Kind == KindHeading {
			out = append(out, b)
		}
	}
	return out
}

func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.CodeSpan:
			for child := t.FirstChild(); child != nil; child = child.NextSibling() {
				if txt, ok := child.(*ast.Text); ok {
					sb.Write(txt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func codeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
