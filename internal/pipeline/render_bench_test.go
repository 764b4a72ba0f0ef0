//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkRender benchmarks the builtin block renderer.
func BenchmarkRender(b *testing.B) {
	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"paragraph", strings.Repeat("This is a **paragraph** with *some* text.\n\n", 10)},
		{"mixed_small", generateMixedMarkdown(10)},
		{"mixed_large", generateMixedMarkdown(200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = Render(input.content)
			}
		})
	}
}

// BenchmarkRenderHighlighted measures the cost of chroma highlighting.
func BenchmarkRenderHighlighted(b *testing.B) {
	h, err := NewChromaHighlighter("")
	if err != nil {
		b.Fatal(err)
	}
	r := NewRenderer(RenderOptions{Highlighter: h})
	content := generateMixedMarkdown(50)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = r.Render(content)
	}
}

// BenchmarkEngines compares the builtin and goldmark engines on the same input.
func BenchmarkEngines(b *testing.B) {
	ctx := context.Background()
	engines := map[string]HTMLConverter{
		"builtin":  NewBuiltinConverter(RenderOptions{}),
		"goldmark": NewGoldmarkConverter(GoldmarkOptions{}),
	}

	for _, size := range []int{10, 100} {
		content := generateMixedMarkdown(size)
		for name, conv := range engines {
			b.Run(fmt.Sprintf("%s/sections_%d", name, size), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := conv.ToHTML(ctx, content); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\n", i)
		sb.WriteString("Some **bold** and *italic* text with a [link](https://example.com) :rocket:\n\n")
		sb.WriteString("- item one\n- [x] done\n1. first\n\n")
		sb.WriteString("> quoted\n\n")
		sb.WriteString("| a | b |\n|---|---|\n| 1 | 2 |\n\n")
		sb.WriteString("```go\nfunc main() {\n\tprintln(\"hi\")\n}\n```\n\n")
	}
	return sb.String()
}
