package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const tocAB = `<nav class="md-toc"><details open><summary class="md-toc-title">Table of Contents</summary><ul>` +
	`<li><a href="#a">A</a></li><li style="margin-left: 1em"><a href="#b">B</a></li></ul></details></nav>`

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t\n",
			expected: "",
		},
		{
			name:     "single heading has no toc",
			input:    "# Title",
			expected: `<h1 id="title">Title</h1>`,
		},
		{
			name:     "two headings get a toc",
			input:    "# A\n## B",
			expected: tocAB + `<h1 id="a">A</h1><h2 id="b">B</h2>`,
		},
		{
			name:     "heading with inline markup",
			input:    "# Hello **World**",
			expected: `<h1 id="hello-world">Hello <strong>World</strong></h1>`,
		},
		{
			name:     "seven hashes collapse to h6",
			input:    "####### deep",
			expected: `<h6 id="deep">deep</h6>`,
		},
		{
			name:     "hash without space is a paragraph",
			input:    "#hashtag",
			expected: `<p>#hashtag</p>`,
		},
		{
			name:     "duplicate headings share a slug",
			input:    "# Intro\n# Intro",
			expected: `<nav class="md-toc"><details open><summary class="md-toc-title">Table of Contents</summary><ul>` +
				`<li><a href="#intro">Intro</a></li><li><a href="#intro">Intro</a></li></ul></details></nav>` +
				`<h1 id="intro">Intro</h1><h1 id="intro">Intro</h1>`,
		},
		{
			name:     "bold paragraph",
			input:    "**bold**",
			expected: `<p><strong>bold</strong></p>`,
		},
		{
			name:     "unterminated italic stays literal",
			input:    "*lonely",
			expected: `<p>*lonely</p>`,
		},
		{
			name:     "paragraph is trimmed",
			input:    "  hello  ",
			expected: `<p>hello</p>`,
		},
		{
			name:     "emoji paragraph",
			input:    ":smile:",
			expected: "<p>\U0001F604</p>",
		},
		{
			name:     "code block escapes content",
			input:    "```\n<tag>\n```",
			expected: "<pre class=\"md-code-block\"><code>&lt;tag&gt;\n</code></pre>",
		},
		{
			name:     "code block with language",
			input:    "```go\nx := *p\n```",
			expected: "<pre class=\"md-code-block\"><code class=\"language-go\">x := *p\n</code></pre>",
		},
		{
			name:     "code block keeps indentation",
			input:    "```\n    indented  \n```",
			expected: "<pre class=\"md-code-block\"><code>    indented  \n</code></pre>",
		},
		{
			name:     "unterminated code block is closed",
			input:    "```\ncode",
			expected: "<pre class=\"md-code-block\"><code>code\n</code></pre>",
		},
		{
			name:  "table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			expected: `<table class="md-table"><thead><tr><th>a</th><th>b</th></tr></thead>` +
				`<tbody><tr><td>1</td><td>2</td></tr></tbody></table>`,
		},
		{
			name:  "table closed by paragraph",
			input: "| a |\n|---|\n| 1 |\ntext",
			expected: `<table class="md-table"><thead><tr><th>a</th></tr></thead>` +
				`<tbody><tr><td>1</td></tr></tbody></table><p>text</p>`,
		},
		{
			name:  "short table row keeps its own cells",
			input: "| a | b |\n| 1 |",
			expected: `<table class="md-table"><thead><tr><th>a</th><th>b</th></tr></thead>` +
				`<tbody><tr><td>1</td></tr></tbody></table>`,
		},
		{
			name:  "table cells are formatted",
			input: "| **h** |\n| `c` |",
			expected: `<table class="md-table"><thead><tr><th><strong>h</strong></th></tr></thead>` +
				`<tbody><tr><td><code class="md-inline-code">c</code></td></tr></tbody></table>`,
		},
		{
			name:     "lone separator row emits nothing",
			input:    "|---|",
			expected: "",
		},
		{
			name:  "code fence closes table",
			input: "| a |\n```\nx\n```",
			expected: `<table class="md-table"><thead><tr><th>a</th></tr></thead><tbody></tbody></table>` +
				"<pre class=\"md-code-block\"><code>x\n</code></pre>",
		},
		{
			name:     "unordered list",
			input:    "- a\n* b\n+ c",
			expected: `<ul class="md-list"><li>a</li><li>b</li><li>c</li></ul>`,
		},
		{
			name:     "ordered list",
			input:    "1. a\n10. b",
			expected: `<ol class="md-list"><li>a</li><li>b</li></ol>`,
		},
		{
			name:     "unordered then ordered",
			input:    "- a\n1. b",
			expected: `<ul class="md-list"><li>a</li></ul><ol class="md-list"><li>b</li></ol>`,
		},
		{
			name:     "ordered then unordered",
			input:    "1. a\n- b",
			expected: `<ol class="md-list"><li>a</li></ol><ul class="md-list"><li>b</li></ul>`,
		},
		{
			name:     "blank line closes list",
			input:    "- a\n\n- b",
			expected: `<ul class="md-list"><li>a</li></ul><ul class="md-list"><li>b</li></ul>`,
		},
		{
			name:     "number without dot space is a paragraph",
			input:    "2024.10 release",
			expected: `<p>2024.10 release</p>`,
		},
		{
			name:  "task list",
			input: "- [x] done\n- [ ] todo",
			expected: `<ul class="md-task-list">` +
				`<li class="md-task-item"><input type="checkbox" checked disabled> done</li>` +
				`<li class="md-task-item"><input type="checkbox" disabled> todo</li></ul>`,
		},
		{
			name:     "task item continues bullet list",
			input:    "- a\n- [ ] b",
			expected: `<ul class="md-list"><li>a</li><li class="md-task-item"><input type="checkbox" disabled> b</li></ul>`,
		},
		{
			name:     "blockquote lines are paragraphs",
			input:    "> one\n> two",
			expected: `<blockquote class="md-blockquote"><p>one</p><p>two</p></blockquote>`,
		},
		{
			name:     "empty blockquote line",
			input:    ">",
			expected: `<blockquote class="md-blockquote"><p></p></blockquote>`,
		},
		{
			name:     "list item closes blockquote",
			input:    "> q\n- item",
			expected: `<blockquote class="md-blockquote"><p>q</p></blockquote><ul class="md-list"><li>item</li></ul>`,
		},
		{
			name:     "blockquote closes list",
			input:    "- item\n> q",
			expected: `<ul class="md-list"><li>item</li></ul><blockquote class="md-blockquote"><p>q</p></blockquote>`,
		},
		{
			name:     "horizontal rules",
			input:    "a\n---\nb\n***\n___",
			expected: `<p>a</p><hr class="md-hr"><p>b</p><hr class="md-hr"><hr class="md-hr">`,
		},
		{
			name:     "code fence closes list",
			input:    "- a\n```\nx\n```",
			expected: "<ul class=\"md-list\"><li>a</li></ul><pre class=\"md-code-block\"><code>x\n</code></pre>",
		},
		{
			name:  "headings inside code are not collected",
			input: "# A\n```\n# not\n```\n## B",
			expected: tocAB + `<h1 id="a">A</h1>` +
				"<pre class=\"md-code-block\"><code># not\n</code></pre>" + `<h2 id="b">B</h2>`,
		},
		{
			name:     "crlf line endings",
			input:    "# T\r\nbody\r\n",
			expected: `<h1 id="t">T</h1><p>body</p>`,
		},
		{
			name:     "unterminated list and blockquote are closed",
			input:    "> q",
			expected: `<blockquote class="md-blockquote"><p>q</p></blockquote>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Render(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRenderer_Options(t *testing.T) {
	t.Parallel()

	t.Run("unique slugs agree between toc and headings", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(RenderOptions{UniqueSlugs: true})
		got := r.Render("# Intro\n## Intro\n# Intro")

		for _, want := range []string{
			`<a href="#intro">`, `<a href="#intro-2">`, `<a href="#intro-3">`,
			`<h1 id="intro">`, `<h2 id="intro-2">`, `<h1 id="intro-3">`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Render() missing %q in %q", want, got)
			}
		}
	})

	t.Run("custom toc title is escaped", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(RenderOptions{TOCTitle: "Index & More"})
		got := r.Render("# A\n## B")
		if !strings.Contains(got, `<summary class="md-toc-title">Index &amp; More</summary>`) {
			t.Errorf("Render() = %q, missing custom TOC title", got)
		}
	})

	t.Run("toc can be disabled", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(RenderOptions{DisableTOC: true})
		got := r.Render("# A\n## B")
		want := `<h1 id="a">A</h1><h2 id="b">B</h2>`
		if got != want {
			t.Errorf("Render() = %q, want %q", got, want)
		}
	})
}

// stubHighlighter wraps known languages in a span.
type stubHighlighter struct{}

func (stubHighlighter) Highlight(lang, code string) (string, bool) {
	if lang != "go" {
		return "", false
	}
	return "<span>" + code + "</span>", true
}

func TestRenderer_Highlighter(t *testing.T) {
	t.Parallel()

	r := NewRenderer(RenderOptions{Highlighter: stubHighlighter{}})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "known language is highlighted",
			input:    "```go\na\nb\n```",
			expected: "<pre class=\"md-code-block\"><code class=\"language-go\"><span>a\nb\n</span></code></pre>",
		},
		{
			name:     "unknown language falls back to escaped text",
			input:    "```txt\n<a>\n```",
			expected: "<pre class=\"md-code-block\"><code class=\"language-txt\">&lt;a&gt;\n</code></pre>",
		},
		{
			name:     "no language is escaped text",
			input:    "```\n<a>\n```",
			expected: "<pre class=\"md-code-block\"><code>&lt;a&gt;\n</code></pre>",
		},
		{
			name:     "unterminated block is flushed",
			input:    "```go\na",
			expected: "<pre class=\"md-code-block\"><code class=\"language-go\"><span>a\n</span></code></pre>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Render(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRender_OutputAsInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# A\n## B\n| a | b |\n|---|---|\n| 1 | 2 |\n- [x] t\n> q\n```go\nx\n```",
		"**bold** *it* ~~del~~ `code` [l](u) ![i](s) :tada:",
	}

	for _, input := range inputs {
		once := Render(input)
		twice := Render(once)
		if strings.Contains(twice, "<p><") {
			t.Errorf("Render(Render(%q)) reinterpreted generated tags: %q", input, twice)
		}
	}
}

func FuzzRender(f *testing.F) {
	seeds := []string{
		"",
		"# Title",
		"```\n<tag>\n```",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"***x** *y ~~z `w [a](b ![c](d :smile:",
		"- [x] a\n1. b\n> c\n---",
		"|",
		"[",
		"![",
		"######",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := Render(input)
		_ = Render(out)
	})
}
