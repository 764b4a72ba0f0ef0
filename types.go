package mdpreview

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Theme selects the palette of the preview stylesheet.
type Theme = pipeline.Theme

// Theme constants.
const (
	ThemeDark  = pipeline.ThemeDark
	ThemeLight = pipeline.ThemeLight
)

// ParseTheme resolves a theme name case-insensitively. Empty selects dark.
func ParseTheme(name string) (Theme, error) {
	return pipeline.ParseTheme(name)
}

// Engine selects the Markdown-to-HTML implementation.
type Engine string

// Engine constants.
const (
	// EngineBuiltin is the preview dialect renderer: fast, total, and
	// styled with the md-* classes.
	EngineBuiltin Engine = "builtin"

	// EngineCommonMark renders CommonMark with GFM extensions via goldmark.
	EngineCommonMark Engine = "commonmark"
)

// ParseEngine resolves an engine name case-insensitively. Empty selects builtin.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineBuiltin:
		return EngineBuiltin, nil
	case EngineCommonMark:
		return EngineCommonMark, nil
	}
	return "", fmt.Errorf("%w: %q (must be builtin or commonmark)", ErrInvalidEngine, name)
}

// Heading is a heading found in the source document.
type Heading = pipeline.Heading

// Stats summarizes the size of the source document.
type Stats = pipeline.Stats

// Length limits.
const (
	MaxTitleLength    = 200
	MaxTOCTitleLength = 100
)

// Input contains conversion parameters.
type Input struct {
	Markdown   string // Markdown content; empty renders to empty HTML
	Standalone bool   // wrap in a complete HTML document with the theme stylesheet
	Title      string // <title> of a standalone document (optional)
	CSS        string // extra CSS appended after the theme (standalone only)
}

// Validate checks the input fields that have limits.
func (in Input) Validate() error {
	if len(in.Title) > MaxTitleLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrInvalidTitle, len(in.Title), MaxTitleLength)
	}
	return nil
}

// Result contains the output of a conversion.
type Result struct {
	HTML     []byte    // fragment, or a full document when Input.Standalone is set
	Headings []Heading // headings in document order
	Stats    Stats     // statistics of Input.Markdown
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds options before they are validated by NewConverter.
type converterConfig struct {
	theme          string
	engine         string
	highlight      bool
	highlightStyle string
	tocTitle       string
	disableTOC     bool
	uniqueSlugs    bool
	sanitize       bool
}

// WithTheme sets the stylesheet theme ("dark" or "light").
func WithTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.theme = name
	}
}

// WithEngine sets the rendering engine ("builtin" or "commonmark").
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithHighlighting enables syntax highlighting of fenced code with the
// named chroma style. An empty style selects monokai.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithTOCTitle sets the summary text of the table of contents.
func WithTOCTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.tocTitle = title
	}
}

// WithoutTOC disables the table of contents.
func WithoutTOC() Option {
	return func(c *Converter) {
		c.cfg.disableTOC = true
	}
}

// WithUniqueSlugs suffixes repeated heading slugs with -2, -3, ...
func WithUniqueSlugs() Option {
	return func(c *Converter) {
		c.cfg.uniqueSlugs = true
	}
}

// WithSanitize filters the rendered fragment through an HTML allow-list.
func WithSanitize() Option {
	return func(c *Converter) {
		c.cfg.sanitize = true
	}
}
