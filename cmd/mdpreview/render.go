package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
	ErrUsage        = errors.New("invalid usage")
)

// stdinArg names standard input as the render source.
const stdinArg = "-"

// renderParams groups parameters shared by every document of a run.
type renderParams struct {
	standalone bool
	title      string // explicit title; empty derives one per document
	css        string

	// headings lists a document's headings for title derivation; nil
	// falls back to the builtin collector.
	headings func(markdown string) []mdpreview.Heading
}

// usageError marks flag parsing failures as usage errors. Help requests
// pass through so the caller can exit successfully.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	env.withVerbosity(flags.common.verbose)

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeStyleFlags(&flags.style, cfg)
	mergeDocumentFlags(&flags.document, cfg)
	cfg.Discovery.Exclude = append(cfg.Discovery.Exclude, flags.exclude...)
	if err := cfg.Validate(); err != nil {
		return err
	}
	warnIgnoredOptions(cfg, env.Logger)

	conv, err := mdpreview.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return withStyleHint(err)
	}

	params, err := buildRenderParams(&flags.document, cfg)
	if err != nil {
		return err
	}
	params.headings = conv.Headings

	if len(positional) == 0 || positional[0] == stdinArg {
		return renderStdin(ctx, conv, flags.document.output, params, env)
	}

	outputDir := resolveOutputDir(flags.document.output, cfg)

	files, err := discoverFiles(positional[0], outputDir, cfg.Discovery.Exclude)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, positional[0])
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = mdpreview.ResolveWorkers(workers)

	env.Logger.Debug("render settings",
		"engine", conv.Engine(),
		"theme", conv.Theme(),
		"standalone", params.standalone,
		"files", len(files),
		"workers", workers,
	)

	results := renderBatch(ctx, conv, files, workers, params)

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return newBatchError(results)
	}
	return nil
}

// renderStdin renders standard input to stdout, or to outputPath when set.
// The configured default output directory does not apply.
func renderStdin(ctx context.Context, conv Renderer, outputPath string, params *renderParams, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	result, err := conv.Convert(ctx, params.input(string(content)))
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err := env.Stdout.Write(result.HTML)
		return err
	}
	if err := fileutil.WriteFileAtomic(outputPath, result.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	return nil
}

// mergeStyleFlags merges converter flags into config. CLI values override config values.
func mergeStyleFlags(flags *styleFlags, cfg *config.Config) {
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.highlight {
		cfg.Highlight.Enabled = true
	}
	if flags.highlightStyle != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = flags.highlightStyle
	}
	if flags.tocTitle != "" {
		cfg.TOC.Title = flags.tocTitle
	}
	if flags.noTOC {
		cfg.TOC.Enabled = false
	}
	if flags.uniqueSlugs {
		cfg.Slugs.Unique = true
	}
	if flags.sanitize {
		cfg.Sanitize = true
	}
}

// mergeDocumentFlags merges output flags into config.
func mergeDocumentFlags(flags *documentFlags, cfg *config.Config) {
	if flags.fragment {
		cfg.Output.Standalone = false
	}
}

// converterOptions translates config into converter options.
func converterOptions(cfg *config.Config) []mdpreview.Option {
	opts := []mdpreview.Option{
		mdpreview.WithTheme(cfg.Theme),
		mdpreview.WithEngine(cfg.Engine),
		mdpreview.WithTOCTitle(cfg.TOC.Title),
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, mdpreview.WithHighlighting(cfg.Highlight.Style))
	}
	if !cfg.TOC.Enabled {
		opts = append(opts, mdpreview.WithoutTOC())
	}
	if cfg.Slugs.Unique {
		opts = append(opts, mdpreview.WithUniqueSlugs())
	}
	if cfg.Sanitize {
		opts = append(opts, mdpreview.WithSanitize())
	}
	return opts
}

// warnIgnoredOptions logs the builtin-only options set alongside the
// commonmark engine, which emits no TOC and always suffixes repeated IDs.
func warnIgnoredOptions(cfg *config.Config, logger *slog.Logger) {
	if engine, err := mdpreview.ParseEngine(cfg.Engine); err != nil || engine != mdpreview.EngineCommonMark {
		return
	}

	var ignored []string
	if !cfg.TOC.Enabled {
		ignored = append(ignored, "toc.enabled")
	}
	if cfg.TOC.Title != "" {
		ignored = append(ignored, "toc.title")
	}
	if cfg.Slugs.Unique {
		ignored = append(ignored, "slugs.unique")
	}
	if len(ignored) > 0 {
		logger.Warn("options have no effect with the commonmark engine",
			"engine", mdpreview.EngineCommonMark,
			"ignored", strings.Join(ignored, ", "),
		)
	}
}

// buildRenderParams reads the extra CSS file and validates the title.
func buildRenderParams(flags *documentFlags, cfg *config.Config) (*renderParams, error) {
	params := &renderParams{
		standalone: cfg.Output.Standalone,
		title:      flags.title,
	}

	if len(params.title) > mdpreview.MaxTitleLength {
		return nil, fmt.Errorf("%w: %d characters (max %d)", mdpreview.ErrInvalidTitle, len(params.title), mdpreview.MaxTitleLength)
	}

	if flags.css != "" {
		css, err := os.ReadFile(flags.css) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		params.css = string(css)
	}

	return params, nil
}

// input builds the converter input for one document. Without an explicit
// title, a standalone document is titled after its first heading.
func (p *renderParams) input(markdown string) mdpreview.Input {
	title := p.title
	if title == "" && p.standalone {
		headings := mdpreview.Headings
		if p.headings != nil {
			headings = p.headings
		}
		title = firstHeadingTitle(headings(markdown))
	}
	return mdpreview.Input{
		Markdown:   markdown,
		Standalone: p.standalone,
		Title:      title,
		CSS:        p.css,
	}
}

// firstHeadingTitle returns the text of the first heading, cut to the
// maximum title length. Empty when there is no heading.
func firstHeadingTitle(headings []mdpreview.Heading) string {
	if len(headings) == 0 {
		return ""
	}
	title := headings[0].Text
	if len(title) > mdpreview.MaxTitleLength {
		title = strings.ToValidUTF8(title[:mdpreview.MaxTitleLength], "")
	}
	return title
}

// resolveOutputDir picks the output location: flag, then config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
