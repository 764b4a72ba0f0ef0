package mdpreview

import "github.com/alnah/go-mdpreview/internal/pipeline"

// Render converts Markdown to an HTML fragment with the builtin engine and
// default options. It never fails: malformed constructs degrade to text.
//
// Use NewConverter for themes, highlighting, standalone documents or the
// CommonMark engine.
func Render(markdown string) string {
	return pipeline.Render(markdown)
}

// FormatInline applies inline formatting to a single line of text.
// The result is always escaped HTML.
func FormatInline(text string) string {
	return pipeline.FormatInline(text)
}

// Stylesheet returns the CSS for the preview classes in the given theme.
// Unknown themes fall back to dark.
func Stylesheet(theme Theme) string {
	return pipeline.Stylesheet(theme)
}

// ComputeStats counts lines, words, bytes and characters of markdown.
func ComputeStats(markdown string) Stats {
	return pipeline.ComputeStats(markdown)
}

// HighlightStyles lists the names accepted by WithHighlighting.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// Headings returns the headings of markdown in document order, with the
// anchor IDs Render assigns. Headings inside fenced code are skipped.
// Converter.Headings follows the converter's engine instead.
func Headings(markdown string) []Heading {
	return pipeline.DocumentHeadings(markdown, false)
}
