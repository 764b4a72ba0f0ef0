package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizePolicy allows the markup the renderers emit and nothing else.
var sanitizePolicy = newSanitizePolicy()

func newSanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	// Table of contents
	p.AllowElements("nav", "details", "summary")
	p.AllowAttrs("open").OnElements("details")
	p.AllowStyles("margin-left").Matching(regexp.MustCompile(`^\d+em$`)).OnElements("li")

	// Task list checkboxes
	p.AllowElements("input")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	// Links open in a new tab
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^noopener$`)).OnElements("a")

	return p
}

// Sanitize filters rendered HTML through an allow-list matching the
// preview markup. Disallowed URL schemes (javascript: and friends) are
// removed from links and images.
func Sanitize(htmlContent string) string {
	return sanitizePolicy.Sanitize(htmlContent)
}
