package services

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ExcerptLength is the number of runes kept when an excerpt is derived from content.
const ExcerptLength = 200

var markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// PlainText strips Markdown syntax and returns the readable text of a document,
// with all whitespace collapsed to single spaces. Raw HTML is dropped.
func PlainText(markdown string) string {
	source := []byte(markdown)
	doc := markdownEngine.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(source))
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				b.Write(segment.Value(source))
				b.WriteByte(' ')
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt derives a short summary from Markdown content.
//
// The content is reduced to plain text and cut to ExcerptLength runes; "..." is
// appended when anything was cut. An empty string is returned for content with no text.
func Excerpt(markdown string) string {
	plain := PlainText(markdown)
	if utf8.RuneCountInString(plain) <= ExcerptLength {
		return plain
	}

	runes := []rune(plain)
	return strings.TrimRight(string(runes[:ExcerptLength]), " ") + "..."
}
