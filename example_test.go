package mdpreview_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview"
)

// Example demonstrates rendering a fragment with default options.
func Example() {
	fmt.Println(mdpreview.Render("# Title"))
	// Output: <h1 id="title">Title</h1>
}

// ExampleRender_table shows pipe table output.
func ExampleRender_table() {
	fmt.Println(mdpreview.Render("| a | b |\n|---|---|\n| 1 | 2 |"))
	// Output: <table class="md-table"><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>
}

// ExampleRender_codeBlock shows that code content is escaped, not interpreted.
func ExampleRender_codeBlock() {
	fmt.Printf("%q\n", mdpreview.Render("```\n<tag>\n```"))
	// Output: "<pre class=\"md-code-block\"><code>&lt;tag&gt;\n</code></pre>"
}

// ExampleFormatInline shows inline formatting on a single line.
func ExampleFormatInline() {
	fmt.Println(mdpreview.FormatInline("**bold** and `code`"))
	// Output: <strong>bold</strong> and <code class="md-inline-code">code</code>
}

// ExampleConverter_Convert demonstrates a standalone export with headings.
func ExampleConverter_Convert() {
	conv, err := mdpreview.NewConverter(mdpreview.WithTheme("light"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdpreview.Input{
		Markdown:   "# Guide\n\n## Install\n\n## Usage",
		Standalone: true,
		Title:      "Guide",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.HasPrefix(string(result.HTML), "<!DOCTYPE html>") {
		fmt.Println("standalone document")
	}
	for _, h := range result.Headings {
		fmt.Printf("%d %s\n", h.Level, h.Slug)
	}
	// Output:
	// standalone document
	// 1 guide
	// 2 install
	// 2 usage
}

// ExampleComputeStats shows document statistics.
func ExampleComputeStats() {
	s := mdpreview.ComputeStats("# Hi\nhello world\n")
	fmt.Println(s.Lines, s.Words, s.Bytes)
	// Output: 2 4 17
}

// ExampleHeadings lists the headings a TOC would link to.
func ExampleHeadings() {
	for _, h := range mdpreview.Headings("# Guide\n```\n# not a heading\n```\n## Install Now") {
		fmt.Println(h.Level, h.Slug, h.Text)
	}
	// Output:
	// 1 guide Guide
	// 2 install-now Install Now
}
