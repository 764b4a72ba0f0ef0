package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/hints"
	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// runCSS prints the stylesheet of standalone documents, so it can be
// linked from fragments rendered with --fragment.
func runCSS(args []string, env *Environment) error {
	flags, positional, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: css takes no arguments", ErrUsage)
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeStyleFlags(&styleFlags{theme: flags.theme, highlightStyle: flags.highlightStyle}, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := mdpreview.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return withStyleHint(err)
	}

	_, err = io.WriteString(env.Stdout, conv.CSS())
	return err
}

// withStyleHint appends the available chroma styles to style errors.
func withStyleHint(err error) error {
	if !errors.Is(err, mdpreview.ErrInvalidHighlightStyle) {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForHighlightStyle(mdpreview.HighlightStyles()))
}

// runStats prints line, word, byte and character counts of a file or stdin.
func runStats(args []string, env *Environment) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	positional, err := parseWith(fs, args, env.Stderr, printStatsUsage)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	var content []byte
	if len(positional) == 0 || positional[0] == stdinArg {
		content, err = io.ReadAll(env.Stdin)
	} else {
		content, err = os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	printStats(env.Stdout, mdpreview.ComputeStats(string(content)))
	return nil
}

// printStats writes stats as aligned "name: value" lines.
func printStats(w io.Writer, s mdpreview.Stats) {
	fmt.Fprintf(w, "lines:      %d\n", s.Lines)
	fmt.Fprintf(w, "words:      %d\n", s.Words)
	fmt.Fprintf(w, "bytes:      %d\n", s.Bytes)
	fmt.Fprintf(w, "characters: %d\n", s.Characters)
}

// runConfig prints the effective configuration as YAML: defaults, then
// the config file, then environment overrides.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yamlutil.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
