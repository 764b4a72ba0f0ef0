package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds the flags that configure the converter.
type styleFlags struct {
	theme          string
	engine         string
	highlight      bool
	highlightStyle string
	tocTitle       string
	noTOC          bool
	uniqueSlugs    bool
	sanitize       bool
}

// documentFlags holds flags that shape each output document.
type documentFlags struct {
	output   string
	fragment bool
	title    string
	css      string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	style    styleFlags
	document documentFlags
	workers  int
	exclude  []string
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common   commonFlags
	style    styleFlags
	document documentFlags
	debounce string
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	common         commonFlags
	theme          string
	highlightStyle string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds converter flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.theme, "theme", "", "stylesheet theme: dark, light")
	fs.StringVar(&f.engine, "engine", "", "rendering engine: builtin, commonmark")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code blocks")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style (implies --highlight)")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable table of contents")
	fs.BoolVar(&f.uniqueSlugs, "unique-slugs", false, "suffix repeated heading IDs with -2, -3, ...")
	fs.BoolVar(&f.sanitize, "sanitize", false, "filter output through an HTML allow-list")
}

// addDocumentFlags adds output document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.fragment, "fragment", false, "write the HTML fragment only, no document wrapper")
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended to the theme")
}

// newRenderFlagSet registers render flags into f.
// Also used by completion, so flag definitions live in one place.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "glob of files to skip in directories (repeatable)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	return fs
}

// newWatchFlagSet registers watch flags into f.
func newWatchFlagSet(f *watchFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before re-rendering (e.g. 300ms)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	return fs
}

// newCSSFlagSet registers css flags into f.
func newCSSFlagSet(f *cssFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)
	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.theme, "theme", "", "stylesheet theme: dark, light")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "append rules for a chroma style")
	return fs
}

// newConfigFlagSet registers config command flags into f.
func newConfigFlagSet(f *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	return fs
}

// parseWith parses args with fs, sending usage and parse errors to w.
func parseWith(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	rest, err := parseWith(newRenderFlagSet(f), args, w, printRenderUsage)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, w io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	rest, err := parseWith(newWatchFlagSet(f), args, w, printWatchUsage)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseCSSFlags parses css command flags.
func parseCSSFlags(args []string, w io.Writer) (*cssFlags, []string, error) {
	f := &cssFlags{}
	rest, err := parseWith(newCSSFlagSet(f), args, w, printCSSUsage)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	rest, err := parseWith(newConfigFlagSet(f), args, w, printConfigUsage)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}
