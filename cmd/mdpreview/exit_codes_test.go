package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and CLI
//   packages, plus wrapped errors to verify the errors.Is() chain.
// - batchError: exit codes follow the first failure through Unwrap.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"write html", ErrWriteHTML, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"watch", ErrWatch, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"invalid theme", mdpreview.ErrInvalidTheme, ExitUsage},
		{"invalid engine", mdpreview.ErrInvalidEngine, ExitUsage},
		{"invalid highlight style", mdpreview.ErrInvalidHighlightStyle, ExitUsage},
		{"invalid toc title", mdpreview.ErrInvalidTOCTitle, ExitUsage},
		{"invalid title", mdpreview.ErrInvalidTitle, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"context canceled", context.Canceled, ExitGeneral},
		{"html conversion", mdpreview.ErrHTMLConversion, ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_BatchError(t *testing.T) {
	t.Parallel()

	results := []RenderResult{
		{InputPath: "a.md"},
		{InputPath: "b.md", Err: fmt.Errorf("%w: boom", ErrReadMarkdown)},
		{InputPath: "c.md", Err: errors.New("other")},
	}

	err := newBatchError(results)
	if err == nil {
		t.Fatal("newBatchError() = nil, want error")
	}
	if got := err.Error(); got != "2 render(s) failed" {
		t.Errorf("Error() = %q, want %q", got, "2 render(s) failed")
	}
	if got := exitCodeFor(err); got != ExitIO {
		t.Errorf("exitCodeFor(batch) = %d, want %d", got, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
