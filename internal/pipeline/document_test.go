package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no escape needed",
			input:    "body { color: red; }",
			expected: "body { color: red; }",
		},
		{
			name:     "escapes style close",
			input:    "</style>",
			expected: `<\/style>`,
		},
		{
			name:     "multiple occurrences",
			input:    "</a></b>",
			expected: `<\/a><\/b>`,
		},
		{
			name:     "case variation STYLE",
			input:    "</STYLE>",
			expected: `<\/STYLE>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "",
			expected: "<html><head></head><body>Hello</body></html>",
		},
		{
			name:     "injects before </head>",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "body { color: red; }",
			expected: "<html><head><style>body { color: red; }</style></head><body>Hello</body></html>",
		},
		{
			name:     "finds </HEAD> case-insensitively",
			html:     "<HTML><HEAD></HEAD><BODY>Hello</BODY></HTML>",
			css:      "body { color: red; }",
			expected: "<HTML><HEAD><style>body { color: red; }</style></HEAD><BODY>Hello</BODY></HTML>",
		},
		{
			name:     "prepends to bare fragment",
			html:     "<p>Hello</p>",
			css:      "p { color: blue; }",
			expected: "<style>p { color: blue; }</style><p>Hello</p>",
		},
		{
			name:     "sanitizes CSS with closing tags",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "</style><script>alert('xss')</script>",
			expected: `<html><head><style><\/style><script>alert('xss')<\/script></style></head><body>Hello</body></html>`,
		},
	}

	injector := &CSSInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<html><head></head><body>Hello</body></html>"
	got := injector.InjectCSS(ctx, html, "body { color: red; }")
	if got != html {
		t.Errorf("InjectCSS() with cancelled context should return HTML unchanged, got %q", got)
	}
}

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	t.Run("default title", func(t *testing.T) {
		t.Parallel()

		got := WrapDocument("", "<p>x</p>")
		if !strings.HasPrefix(got, "<!DOCTYPE html>") {
			t.Errorf("missing doctype: %q", got)
		}
		if !strings.Contains(got, "<title>Markdown Export</title>") {
			t.Errorf("missing default title: %q", got)
		}
		if !strings.Contains(got, `<div class="md-preview-content"><p>x</p></div>`) {
			t.Errorf("fragment not wrapped in content div: %q", got)
		}
	})

	t.Run("title is escaped", func(t *testing.T) {
		t.Parallel()

		got := WrapDocument("<Notes & Todo>", "")
		if !strings.Contains(got, "<title>&lt;Notes &amp; Todo&gt;</title>") {
			t.Errorf("title not escaped: %q", got)
		}
	})

	t.Run("css lands in head", func(t *testing.T) {
		t.Parallel()

		doc := WrapDocument("t", "<p>x</p>")
		got := (&CSSInjection{}).InjectCSS(context.Background(), doc, "p{}")
		head, _, _ := strings.Cut(got, "</head>")
		if !strings.Contains(head, "<style>p{}</style>") {
			t.Errorf("style block not in head: %q", got)
		}
	})
}
