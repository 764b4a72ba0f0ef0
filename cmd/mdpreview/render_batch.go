package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// filePermissions is rw-r--r--: HTML output is meant to be readable.
const filePermissions = 0o644

// Renderer is the interface for the conversion service.
type Renderer interface {
	Convert(ctx context.Context, input mdpreview.Input) (*mdpreview.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*mdpreview.Converter)(nil)

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderBatch processes files concurrently. The converter is shared: it
// holds no per-document state.
func renderBatch(ctx context.Context, conv Renderer, files []FileToRender, workers int, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile reads, converts and writes a single file.
func renderFile(ctx context.Context, conv Renderer, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Err = writeRendered(ctx, conv, content, f.OutputPath, params)
	result.Duration = time.Since(start)
	return result
}

// writeRendered converts content and atomically replaces outputPath.
func writeRendered(ctx context.Context, conv Renderer, content []byte, outputPath string, params *renderParams) error {
	rendered, err := conv.Convert(ctx, params.input(string(content)))
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(outputPath, rendered.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// batchError reports failed renders and unwraps to the first failure, so
// the exit code follows its cause.
type batchError struct {
	failed int
	first  error
}

func newBatchError(results []RenderResult) error {
	be := &batchError{}
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if be.first == nil {
			be.first = r.Err
		}
		be.failed++
	}
	if be.failed == 0 {
		return nil
	}
	return be
}

func (e *batchError) Error() string {
	return strconv.Itoa(e.failed) + " render(s) failed"
}

func (e *batchError) Unwrap() error {
	return e.first
}

// printResultsWithWriter outputs render results and returns the failure count.
func printResultsWithWriter(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
