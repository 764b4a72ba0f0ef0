package main

// Notes:
// - parse*Flags: we test defaults, short forms, repeatable --exclude and
//   interspersed positional args. pflag itself is not re-tested.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"
)

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseRenderFlags(nil, io.Discard)
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}
		if diff := cmp.Diff(renderFlags{}, *f, cmp.AllowUnexported(renderFlags{}, commonFlags{}, styleFlags{}, documentFlags{})); diff != "" {
			t.Errorf("defaults mismatch (-want +got):\n%s", diff)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseRenderFlags([]string{
			"docs", "-c", "work", "-q", "-v", "-o", "site", "-w", "4",
			"--theme", "light", "--engine", "commonmark", "--highlight",
			"--highlight-style", "dracula", "--toc-title", "Contents", "--no-toc",
			"--unique-slugs", "--sanitize", "--fragment", "--title", "Guide",
			"--css", "extra.css", "--exclude", "a/**", "--exclude", "b/**",
		}, io.Discard)
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}

		want := renderFlags{
			common: commonFlags{config: "work", quiet: true, verbose: true},
			style: styleFlags{
				theme: "light", engine: "commonmark", highlight: true,
				highlightStyle: "dracula", tocTitle: "Contents", noTOC: true,
				uniqueSlugs: true, sanitize: true,
			},
			document: documentFlags{output: "site", fragment: true, title: "Guide", css: "extra.css"},
			workers:  4,
			exclude:  []string{"a/**", "b/**"},
		}
		if diff := cmp.Diff(want, *f, cmp.AllowUnexported(renderFlags{}, commonFlags{}, styleFlags{}, documentFlags{})); diff != "" {
			t.Errorf("flags mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"docs"}, args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("exclude keeps commas", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseRenderFlags([]string{"--exclude", "{a,b}/**"}, io.Discard)
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}
		if diff := cmp.Diff([]string{"{a,b}/**"}, f.exclude); diff != "" {
			t.Errorf("exclude mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseRenderFlags([]string{"--help"}, io.Discard)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("parseRenderFlags(--help) error = %v, want flag.ErrHelp", err)
		}
	})
}

func TestParseWatchFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseWatchFlags([]string{"notes.md", "--debounce", "1s", "--theme", "light"}, io.Discard)
	if err != nil {
		t.Fatalf("parseWatchFlags() error = %v", err)
	}
	if f.debounce != "1s" || f.style.theme != "light" {
		t.Errorf("parseWatchFlags() = debounce %q theme %q, want 1s light", f.debounce, f.style.theme)
	}
	if diff := cmp.Diff([]string{"notes.md"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSSFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parseCSSFlags([]string{"--theme", "light", "--highlight-style", "monokai", "-c", "x"}, io.Discard)
	if err != nil {
		t.Fatalf("parseCSSFlags() error = %v", err)
	}
	if f.theme != "light" || f.highlightStyle != "monokai" || f.common.config != "x" {
		t.Errorf("parseCSSFlags() = %+v", *f)
	}
}

func TestUsageError(t *testing.T) {
	t.Parallel()

	if err := usageError(flag.ErrHelp); !errors.Is(err, flag.ErrHelp) || errors.Is(err, ErrUsage) {
		t.Errorf("usageError(ErrHelp) = %v, want ErrHelp passthrough", err)
	}
	if err := usageError(errors.New("unknown flag: --x")); !errors.Is(err, ErrUsage) {
		t.Errorf("usageError() = %v, want ErrUsage", err)
	}
}
