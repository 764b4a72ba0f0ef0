package mdpreview

import (
	"errors"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Option validation errors.
	ErrInvalidTheme          = pipeline.ErrInvalidTheme
	ErrInvalidEngine         = errors.New("invalid engine")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")
	ErrInvalidTOCTitle       = errors.New("invalid TOC title")

	// Input validation errors.
	ErrInvalidTitle = errors.New("invalid document title")
)
