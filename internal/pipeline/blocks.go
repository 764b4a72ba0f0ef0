package pipeline

import (
	"strconv"
	"strings"
)

// Highlighter renders the body of a fenced code block as HTML.
// It returns false when the language is unknown, in which case the block
// is emitted as escaped text.
type Highlighter interface {
	Highlight(lang, code string) (string, bool)
}

// RenderOptions configures a Renderer. The zero value renders with the
// default TOC title, non-unique slugs and no highlighting.
type RenderOptions struct {
	TOCTitle    string
	DisableTOC  bool
	UniqueSlugs bool
	Highlighter Highlighter
}

// Renderer converts the preview Markdown dialect to an HTML fragment.
// A Renderer holds no per-document state and is safe for concurrent use.
type Renderer struct {
	opts RenderOptions
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts RenderOptions) *Renderer {
	return &Renderer{opts: opts}
}

// Render converts input using default options.
func Render(input string) string {
	return NewRenderer(RenderOptions{}).Render(input)
}

// blockKind identifies the block context currently open.
type blockKind int

const (
	blockNone blockKind = iota
	blockCode
	blockTable
	blockList
	blockQuote
)

// openBlock is the single open block context. Only the fields relevant
// to kind are meaningful.
type openBlock struct {
	kind    blockKind
	lang    string // code: fence info string
	columns int    // table: header cell count
	ordered bool   // list: <ol> rather than <ul>
	task    bool   // list: opened by a task item
}

// renderState is the per-call state of one Render invocation.
type renderState struct {
	out   strings.Builder
	block openBlock
	code  []string // buffered code lines when highlighting
	slugs *slugger
	hl    Highlighter
}

// Render converts input to HTML. It never fails: malformed or
// unterminated constructs degrade to literal text or are closed at the
// end of the document.
func (r *Renderer) Render(input string) string {
	lines := splitLines(input)

	st := &renderState{
		slugs: newSlugger(r.opts.UniqueSlugs),
		hl:    r.opts.Highlighter,
	}

	if !r.opts.DisableTOC {
		headings := collectHeadings(lines, newSlugger(r.opts.UniqueSlugs))
		st.out.WriteString(RenderTOC(headings, r.opts.TOCTitle))
	}

	for _, line := range lines {
		st.line(line)
	}
	st.close()
	return st.out.String()
}

// splitLines normalizes line endings and splits input into lines.
// A trailing newline does not produce an extra empty line.
func splitLines(input string) []string {
	if input == "" {
		return nil
	}
	input = normalizeLineEndings(input)
	input = strings.TrimSuffix(input, "\n")
	return strings.Split(input, "\n")
}

// line dispatches a single line. Branches are tried in priority order
// and the first match handles the line.
func (st *renderState) line(line string) {
	if lang, ok := parseFence(line); ok {
		if st.block.kind == blockCode {
			st.close()
		} else {
			st.open(openBlock{kind: blockCode, lang: lang})
		}
		return
	}

	if st.block.kind == blockCode {
		st.codeLine(line)
		return
	}

	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "|") {
		st.tableRow(trimmed)
		return
	}
	if st.block.kind == blockTable {
		st.close()
	}

	if trimmed == "" {
		st.close()
		return
	}

	if level, text, ok := parseHeading(line); ok {
		st.close()
		n := strconv.Itoa(level)
		st.out.WriteString("<h" + n + ` id="` + escapeHTML(st.slugs.next(text)) + `">`)
		st.out.WriteString(FormatInline(text))
		st.out.WriteString("</h" + n + ">")
		return
	}

	if trimmed == "---" || trimmed == "***" || trimmed == "___" {
		st.close()
		st.out.WriteString(`<hr class="md-hr">`)
		return
	}

	if strings.HasPrefix(trimmed, "> ") || trimmed == ">" {
		if st.block.kind != blockQuote {
			st.open(openBlock{kind: blockQuote})
		}
		content := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
		st.out.WriteString("<p>" + FormatInline(content) + "</p>")
		return
	}

	if checked, text, ok := parseTaskItem(trimmed); ok {
		if !st.inList(false) {
			st.open(openBlock{kind: blockList, task: true})
		}
		checkbox := `<input type="checkbox" disabled>`
		if checked {
			checkbox = `<input type="checkbox" checked disabled>`
		}
		st.out.WriteString(`<li class="md-task-item">` + checkbox + " " + FormatInline(text) + "</li>")
		return
	}

	if text, ok := parseBulletItem(trimmed); ok {
		if !st.inList(false) {
			st.open(openBlock{kind: blockList})
		}
		st.out.WriteString("<li>" + FormatInline(text) + "</li>")
		return
	}

	if text, ok := parseOrderedItem(trimmed); ok {
		if !st.inList(true) {
			st.open(openBlock{kind: blockList, ordered: true})
		}
		st.out.WriteString("<li>" + FormatInline(text) + "</li>")
		return
	}

	st.close()
	st.out.WriteString("<p>" + FormatInline(trimmed) + "</p>")
}

// inList reports whether a list of the given kind is open. Task items
// and plain bullets share an unordered list.
func (st *renderState) inList(ordered bool) bool {
	return st.block.kind == blockList && st.block.ordered == ordered
}

// open closes the current block and opens b.
func (st *renderState) open(b openBlock) {
	st.close()
	st.block = b

	switch b.kind {
	case blockCode:
		if b.lang == "" {
			st.out.WriteString(`<pre class="md-code-block"><code>`)
		} else {
			st.out.WriteString(`<pre class="md-code-block"><code class="language-` + escapeHTML(b.lang) + `">`)
		}
	case blockTable:
		st.out.WriteString(`<table class="md-table"><thead><tr>`)
	case blockList:
		switch {
		case b.ordered:
			st.out.WriteString(`<ol class="md-list">`)
		case b.task:
			st.out.WriteString(`<ul class="md-task-list">`)
		default:
			st.out.WriteString(`<ul class="md-list">`)
		}
	case blockQuote:
		st.out.WriteString(`<blockquote class="md-blockquote">`)
	}
}

// close emits the closing markup for the open block, if any.
func (st *renderState) close() {
	switch st.block.kind {
	case blockCode:
		st.flushCode()
		st.out.WriteString("</code></pre>")
	case blockTable:
		st.out.WriteString("</tbody></table>")
	case blockList:
		if st.block.ordered {
			st.out.WriteString("</ol>")
		} else {
			st.out.WriteString("</ul>")
		}
	case blockQuote:
		st.out.WriteString("</blockquote>")
	}
	st.block = openBlock{}
}

// codeLine emits a line inside a fenced block verbatim (escaped). When a
// highlighter is configured the lines are buffered until the fence closes.
func (st *renderState) codeLine(line string) {
	if st.hl != nil {
		st.code = append(st.code, line)
		return
	}
	st.out.WriteString(escapeHTML(line))
	st.out.WriteByte('\n')
}

// flushCode writes buffered code lines, highlighted when possible.
func (st *renderState) flushCode() {
	if len(st.code) == 0 {
		return
	}
	code := strings.Join(st.code, "\n") + "\n"
	st.code = st.code[:0]

	if st.block.lang != "" {
		if html, ok := st.hl.Highlight(st.block.lang, code); ok {
			st.out.WriteString(html)
			return
		}
	}
	st.out.WriteString(escapeHTML(code))
}

// tableRow handles a line starting with '|'. Separator rows are dropped;
// the first row of a table becomes its header.
func (st *renderState) tableRow(trimmed string) {
	if isTableSeparator(trimmed) {
		if st.block.kind != blockTable {
			st.close()
		}
		return
	}

	cells := splitCells(trimmed)
	if st.block.kind != blockTable {
		st.open(openBlock{kind: blockTable, columns: len(cells)})
		for _, cell := range cells {
			st.out.WriteString("<th>" + FormatInline(cell) + "</th>")
		}
		st.out.WriteString("</tr></thead><tbody>")
		return
	}

	st.out.WriteString("<tr>")
	for _, cell := range cells {
		st.out.WriteString("<td>" + FormatInline(cell) + "</td>")
	}
	st.out.WriteString("</tr>")
}

// isTableSeparator reports whether a row only holds '|', '-', ':' and
// spaces and contains at least one '-'.
func isTableSeparator(trimmed string) bool {
	if !strings.Contains(trimmed, "-") {
		return false
	}
	for _, c := range trimmed {
		switch c {
		case '|', '-', ':', ' ':
		default:
			return false
		}
	}
	return true
}

// splitCells strips the outer pipes and returns the trimmed cells.
func splitCells(trimmed string) []string {
	parts := strings.Split(strings.Trim(trimmed, "|"), "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseFence reports whether line is a code fence and returns its
// language tag.
func parseFence(line string) (lang string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(trimmed, "`")), true
}

// parseTaskItem matches "- [x] text" and "- [ ] text".
func parseTaskItem(trimmed string) (checked bool, text string, ok bool) {
	switch {
	case strings.HasPrefix(trimmed, "- [x] "):
		return true, strings.TrimSpace(trimmed[len("- [x] "):]), true
	case strings.HasPrefix(trimmed, "- [ ] "):
		return false, strings.TrimSpace(trimmed[len("- [ ] "):]), true
	}
	return false, "", false
}

// parseBulletItem matches "- ", "* " and "+ " list markers.
func parseBulletItem(trimmed string) (text string, ok bool) {
	if len(trimmed) < 2 || trimmed[1] != ' ' {
		return "", false
	}
	switch trimmed[0] {
	case '-', '*', '+':
		return trimmed[2:], true
	}
	return "", false
}

// parseOrderedItem matches one or more digits followed by ". ".
func parseOrderedItem(trimmed string) (text string, ok bool) {
	n := 0
	for n < len(trimmed) && trimmed[n] >= '0' && trimmed[n] <= '9' {
		n++
	}
	if n == 0 || !strings.HasPrefix(trimmed[n:], ". ") {
		return "", false
	}
	return trimmed[n+2:], true
}
