// Package pipeline implements the Markdown-to-HTML preview pipeline.
//
// The builtin engine is a single-pass line renderer for a GFM-like dialect:
//   - Heading collection and table of contents generation (headings.go)
//   - Block context tracking: code fences, tables, lists, blockquotes (blocks.go)
//   - Inline formatting: emphasis, strikethrough, code, links, images, emoji (inline.go)
//
// The remaining stages are shared by both engines: the goldmark-based
// CommonMark converter, chroma syntax highlighting, theme stylesheets,
// standalone document wrapping, and an optional bluemonday allow-list pass
// for output that crosses a trust boundary.
package pipeline
