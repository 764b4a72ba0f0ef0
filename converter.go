package mdpreview

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.BuiltinConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.Highlighter          = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.HeadingExtractor     = (*pipeline.BuiltinConverter)(nil)
	_ pipeline.HeadingExtractor     = (*pipeline.GoldmarkConverter)(nil)
)

// Converter orchestrates the Markdown-to-HTML pipeline.
// A Converter holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	theme         Theme
	engine        Engine
	highlighter   *pipeline.ChromaHighlighter
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
}

// NewConverter creates a Converter. Options are validated here, so a
// Converter that was created successfully never fails on configuration.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.theme, err = ParseTheme(c.cfg.theme); err != nil {
		return nil, err
	}
	if c.engine, err = ParseEngine(c.cfg.engine); err != nil {
		return nil, err
	}
	if len(c.cfg.tocTitle) > MaxTOCTitleLength {
		return nil, fmt.Errorf("%w: %d characters (max %d)", ErrInvalidTOCTitle, len(c.cfg.tocTitle), MaxTOCTitleLength)
	}

	if c.cfg.highlight {
		c.highlighter, err = pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHighlightStyle, err)
		}
	}

	// Tests may inject a converter
	if c.htmlConverter == nil {
		c.htmlConverter = c.newHTMLConverter()
	}

	return c, nil
}

// newHTMLConverter builds the converter for the selected engine.
func (c *Converter) newHTMLConverter() pipeline.HTMLConverter {
	if c.engine == EngineCommonMark {
		return pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			Highlight:      c.highlighter != nil,
			HighlightStyle: c.cfg.highlightStyle,
		})
	}

	opts := pipeline.RenderOptions{
		TOCTitle:    c.cfg.tocTitle,
		DisableTOC:  c.cfg.disableTOC,
		UniqueSlugs: c.cfg.uniqueSlugs,
	}
	if c.highlighter != nil {
		opts.Highlighter = c.highlighter
	}
	return pipeline.NewBuiltinConverter(opts)
}

// Theme returns the configured stylesheet theme.
func (c *Converter) Theme() Theme {
	return c.theme
}

// Engine returns the configured rendering engine.
func (c *Converter) Engine() Engine {
	return c.engine
}

// CSS returns the stylesheet embedded in standalone documents: the theme
// rules followed by syntax highlighting rules when highlighting is enabled.
func (c *Converter) CSS() string {
	var sb strings.Builder
	sb.WriteString(pipeline.Stylesheet(c.theme))
	if c.highlighter != nil {
		// strings.Builder never returns a write error
		_ = c.highlighter.WriteCSS(&sb)
	}
	return sb.String()
}

// Headings returns the headings of markdown with the anchor IDs the
// configured engine emits. The commonmark engine includes setext headings
// and suffixes repeated IDs the way goldmark does.
func (c *Converter) Headings(markdown string) []Heading {
	return c.headings(c.preprocessor.PreprocessMarkdown(context.Background(), markdown))
}

func (c *Converter) headings(content string) []Heading {
	if hx, ok := c.htmlConverter.(pipeline.HeadingExtractor); ok {
		return hx.Headings(content)
	}
	return pipeline.DocumentHeadings(content, c.cfg.uniqueSlugs)
}

// Convert runs the pipeline and returns the rendered HTML along with the
// document headings and statistics.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Sanitize the fragment only: a full document would lose its head.
	if c.cfg.sanitize {
		htmlContent = pipeline.Sanitize(htmlContent)
	}

	if input.Standalone {
		htmlContent = pipeline.WrapDocument(input.Title, htmlContent)

		cssContent := c.CSS()
		if input.CSS != "" {
			cssContent += "\n" + input.CSS
		}
		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &Result{
		HTML:     []byte(htmlContent),
		Headings: c.headings(mdContent),
		Stats:    pipeline.ComputeStats(input.Markdown),
	}, nil
}
