package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Theme selects the color palette of the preview stylesheet.
type Theme string

// Supported themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ErrInvalidTheme indicates an unsupported theme name.
var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme resolves a theme name case-insensitively. Empty selects dark.
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case "", ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("%w: %q (must be dark or light)", ErrInvalidTheme, name)
}

// palette holds the colors substituted into the stylesheet.
type palette struct {
	Background     string
	Text           string
	TextSecondary  string
	Border         string
	CodeBackground string
	Link           string
	BlockquoteEdge string
	TableStripe    string
}

var palettes = map[Theme]palette{
	ThemeDark: {
		Background:     "#1a1a2e",
		Text:           "#e0e0e0",
		TextSecondary:  "#a0a0a0",
		Border:         "#333355",
		CodeBackground: "#16213e",
		Link:           "#00d4ff",
		BlockquoteEdge: "#00d4ff",
		TableStripe:    "rgba(255,255,255,0.03)",
	},
	ThemeLight: {
		Background:     "#ffffff",
		Text:           "#1a1a2e",
		TextSecondary:  "#555555",
		Border:         "#e0e0e0",
		CodeBackground: "#f5f5f5",
		Link:           "#0066cc",
		BlockquoteEdge: "#0066cc",
		TableStripe:    "rgba(0,0,0,0.03)",
	},
}

var stylesheetTemplate = template.Must(template.New("stylesheet").Parse(`.md-preview-content {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
  font-size: 15px;
  line-height: 1.8;
  color: {{.Text}};
  background: {{.Background}};
  padding: 24px;
  overflow-wrap: break-word;
}
.md-preview-content h1 { font-size: 2em; font-weight: 700; margin: 1.2em 0 0.6em; padding-bottom: 0.3em; border-bottom: 2px solid {{.Border}}; }
.md-preview-content h2 { font-size: 1.5em; font-weight: 700; margin: 1em 0 0.5em; padding-bottom: 0.2em; border-bottom: 1px solid {{.Border}}; }
.md-preview-content h3 { font-size: 1.25em; font-weight: 600; margin: 0.8em 0 0.4em; }
.md-preview-content h4 { font-size: 1.1em; font-weight: 600; margin: 0.6em 0 0.3em; }
.md-preview-content h5, .md-preview-content h6 { font-size: 1em; font-weight: 600; margin: 0.5em 0 0.3em; color: {{.TextSecondary}}; }
.md-preview-content p { margin: 0 0 1em; }
.md-preview-content a { color: {{.Link}}; text-decoration: none; }
.md-preview-content a:hover { text-decoration: underline; }
.md-preview-content del { text-decoration: line-through; opacity: 0.7; }
.md-preview-content .md-inline-code {
  font-family: "JetBrains Mono", "SF Mono", monospace;
  background: {{.CodeBackground}};
  padding: 2px 6px;
  border-radius: 4px;
  font-size: 0.9em;
  border: 1px solid {{.Border}};
}
.md-preview-content .md-code-block {
  font-family: "JetBrains Mono", "SF Mono", monospace;
  background: {{.CodeBackground}};
  padding: 16px;
  border-radius: 8px;
  font-size: 0.9em;
  overflow-x: auto;
  margin: 1em 0;
  border: 1px solid {{.Border}};
  line-height: 1.6;
}
.md-preview-content .md-code-block code { background: none; padding: 0; border: none; }
.md-preview-content .md-blockquote {
  border-left: 4px solid {{.BlockquoteEdge}};
  padding: 0.5em 1em;
  margin: 1em 0;
  color: {{.TextSecondary}};
  background: {{.CodeBackground}};
  border-radius: 0 8px 8px 0;
}
.md-preview-content .md-blockquote p { margin: 0.3em 0; }
.md-preview-content .md-list { padding-left: 2em; margin: 0.5em 0 1em; }
.md-preview-content .md-list li { margin: 0.3em 0; }
.md-preview-content .md-task-list { list-style: none; padding-left: 0.5em; }
.md-preview-content .md-task-item { display: flex; align-items: center; gap: 8px; margin: 0.3em 0; }
.md-preview-content .md-task-item input[type="checkbox"] { width: 16px; height: 16px; accent-color: {{.Link}}; }
.md-preview-content .md-table { width: 100%; border-collapse: collapse; margin: 1em 0; font-size: 0.95em; }
.md-preview-content .md-table th,
.md-preview-content .md-table td { border: 1px solid {{.Border}}; padding: 8px 12px; text-align: left; }
.md-preview-content .md-table th { font-weight: 600; background: {{.CodeBackground}}; }
.md-preview-content .md-table tr:nth-child(even) { background: {{.TableStripe}}; }
.md-preview-content .md-hr { border: none; border-top: 2px solid {{.Border}}; margin: 2em 0; }
.md-preview-content .md-image { max-width: 100%; border-radius: 8px; margin: 1em 0; }
.md-preview-content .md-toc {
  background: {{.CodeBackground}};
  border: 1px solid {{.Border}};
  border-radius: 8px;
  padding: 16px;
  margin-bottom: 2em;
}
.md-preview-content .md-toc-title { font-weight: 600; cursor: pointer; margin-bottom: 8px; }
.md-preview-content .md-toc ul { list-style: none; padding-left: 0; margin: 0; }
.md-preview-content .md-toc li { margin: 4px 0; }
.md-preview-content .md-toc a { color: {{.Link}}; font-size: 0.9em; }
`))

// Stylesheet returns the CSS for the documented md-* classes in the
// given theme. Unknown themes fall back to dark.
func Stylesheet(theme Theme) string {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeDark]
	}

	var buf strings.Builder
	// Execute only fails on writer errors, which strings.Builder never returns.
	_ = stylesheetTemplate.Execute(&buf, p)
	return buf.String()
}
