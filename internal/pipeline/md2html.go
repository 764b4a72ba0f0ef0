package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// HeadingExtractor returns the headings of a document with the anchor IDs
// the converter emits for them.
type HeadingExtractor interface {
	Headings(content string) []Heading
}

// BuiltinConverter adapts Renderer to HTMLConverter.
type BuiltinConverter struct {
	renderer *Renderer
}

// NewBuiltinConverter creates a BuiltinConverter with the given options.
func NewBuiltinConverter(opts RenderOptions) *BuiltinConverter {
	return &BuiltinConverter{renderer: NewRenderer(opts)}
}

// ToHTML renders content with the preview dialect. Rendering is
// synchronous and total, so only a context already done is reported.
func (c *BuiltinConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.renderer.Render(content), nil
}

// Headings collects headings with the renderer's slug settings.
func (c *BuiltinConverter) Headings(content string) []Heading {
	return DocumentHeadings(content, c.renderer.opts.UniqueSlugs)
}

// GoldmarkConverter converts Markdown to HTML using goldmark, for output
// that should follow CommonMark and GFM rather than the preview dialect.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// GoldmarkOptions configures NewGoldmarkConverter.
type GoldmarkOptions struct {
	Highlight      bool
	HighlightStyle string
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes,
// emoji shortcodes and, optionally, class-based syntax highlighting.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
		emoji.Emoji,        // :smile: shortcodes
	}
	if opts.Highlight {
		style := opts.HighlightStyle
		if style == "" {
			style = DefaultHighlightStyle
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (required for TOC links)
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Note: WithUnsafe() intentionally NOT used; raw HTML is dropped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Headings parses content and returns its ATX and setext headings with the
// IDs goldmark assigns. Repeated IDs carry goldmark's "-1", "-2" suffixes.
// Text is the plain heading text with inline markup removed.
func (c *GoldmarkConverter) Headings(content string) []Heading {
	src := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var slug string
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				slug = string(b)
			}
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Slug:  slug,
			Text:  plainText(h, src),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// plainText concatenates the text segments below n.
func plainText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(plainText(child, src))
		}
	}
	return buf.String()
}
