// Package mdpreview renders Markdown to HTML for live previews.
//
// # Quick Start
//
// For a fragment with default options, call Render:
//
//	html := mdpreview.Render("# Hello\n\nWorld")
//
// Render never fails. Unterminated code fences, lists and tables are
// closed at the end of the input and unmatched emphasis stays literal.
//
// # Converter
//
// Use a Converter to choose a theme, enable syntax highlighting or export
// a standalone document:
//
//	conv, err := mdpreview.NewConverter(
//	    mdpreview.WithTheme("light"),
//	    mdpreview.WithHighlighting("github"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdpreview.Input{
//	    Markdown:   content,
//	    Standalone: true,
//	    Title:      "Notes",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.html", result.HTML, 0o644)
//
// The result also carries the document headings (result.Headings) and
// size statistics (result.Stats).
//
// # Engines
//
// The builtin engine renders a GFM-like dialect line by line: ATX headings
// with anchor IDs, a collapsible table of contents when the document has
// two or more headings, fenced code, pipe tables, bullet, ordered and task
// lists, blockquotes, rules, emphasis, strikethrough, inline code, links,
// images and a small set of emoji shortcodes. Output is styled with md-*
// classes; Stylesheet returns matching CSS.
//
// The commonmark engine (WithEngine("commonmark")) uses goldmark with GFM,
// footnotes and emoji for documents that need standard semantics. It does
// not emit a table of contents.
//
// # Safety
//
// All source text is HTML-escaped, so raw HTML in the input is displayed,
// not interpreted. URLs in links and images are not filtered; enable
// WithSanitize when the output is served to other users.
package mdpreview
