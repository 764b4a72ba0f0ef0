package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// ErrWatch indicates the file watcher could not be set up.
var ErrWatch = errors.New("failed to watch file")

// watcher re-renders one file when it changes on disk.
type watcher struct {
	conv     Renderer
	file     FileToRender
	params   *renderParams
	debounce time.Duration
	logger   *slog.Logger
	env      *Environment
	quiet    bool

	digest   uint64
	rendered bool
}

// runWatch orchestrates the watch command.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	env.withVerbosity(flags.common.verbose)

	if len(positional) != 1 {
		return fmt.Errorf("%w: watch expects exactly one file", ErrUsage)
	}
	inputPath := positional[0]
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeStyleFlags(&flags.style, cfg)
	mergeDocumentFlags(&flags.document, cfg)
	if flags.debounce != "" {
		cfg.Watch.Debounce = flags.debounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	debounce, err := cfg.DebounceDuration()
	if err != nil {
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
	outPath, err := resolveOutputPath(inputPath, resolveOutputDir(flags.document.output, cfg), "")
	if err != nil {
		return err
	}

	w := &watcher{
		conv:     conv,
		file:     FileToRender{InputPath: inputPath, OutputPath: outPath},
		params:   params,
		debounce: debounce,
		logger:   env.Logger,
		env:      env,
		quiet:    flags.common.quiet,
	}

	// The first render fails fast.
	if _, err := w.renderIfChanged(ctx); err != nil {
		return err
	}
	w.report()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrWatch, err, hints.ForWatch())
	}
	defer func() { _ = fsw.Close() }()

	// Watch the directory: saving by rename drops a watch on the file itself.
	if err := fsw.Add(filepath.Dir(inputPath)); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWatch, err, hints.ForWatch())
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl-C to stop)\n", inputPath)
	}
	return w.run(ctx, fsw.Events, fsw.Errors)
}

// run consumes file events until ctx is done. Bursts of events on the
// watched file collapse into one render after the debounce period.
// Render failures are reported and watching continues.
func (w *watcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	target := filepath.Clean(w.file.InputPath)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			w.logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed, err := w.renderIfChanged(ctx)
			if err != nil {
				fmt.Fprintf(w.env.Stderr, "FAILED %s: %v\n", w.file.InputPath, err)
				continue
			}
			if changed {
				w.report()
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// renderIfChanged renders the file unless its content digest matches the
// last successful render.
func (w *watcher) renderIfChanged(ctx context.Context) (bool, error) {
	content, err := os.ReadFile(w.file.InputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	digest := xxhash.Sum64(content)
	if w.rendered && digest == w.digest {
		w.logger.Debug("content unchanged, skipping render", "path", w.file.InputPath)
		return false, nil
	}

	start := time.Now()
	if err := writeRendered(ctx, w.conv, content, w.file.OutputPath, w.params); err != nil {
		return false, err
	}
	w.logger.Debug("rendered", "path", w.file.OutputPath, "duration", time.Since(start).Round(time.Millisecond))

	w.digest = digest
	w.rendered = true
	return true, nil
}

// report prints the render notice unless quiet.
func (w *watcher) report() {
	if w.quiet {
		return
	}
	fmt.Fprintf(w.env.Stdout, "[%s] Updated %s\n", w.env.Now().Format(time.TimeOnly), w.file.OutputPath)
}
