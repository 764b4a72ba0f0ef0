package pipeline

import "strings"

// escapeHTML escapes the four characters that can break out of text or a
// double-quoted attribute. Ampersand must be replaced first.
var escapeHTML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
).Replace

// EscapeHTML escapes text for use as HTML content or attribute value.
func EscapeHTML(text string) string {
	return escapeHTML(text)
}

// pairRule describes a delimiter pair and the tags that replace it.
type pairRule struct {
	delim string
	open  string
	close string
}

// Pair rules, applied in order. Longer delimiters run first so that
// "***" is never read as "**" followed by "*".
var (
	strongEmRules = []pairRule{
		{"***", "<strong><em>", "</em></strong>"},
		{"___", "<strong><em>", "</em></strong>"},
	}
	strongRules = []pairRule{
		{"**", "<strong>", "</strong>"},
		{"__", "<strong>", "</strong>"},
	}
	emRules = []pairRule{
		{"*", "<em>", "</em>"},
		{"_", "<em>", "</em>"},
	}
	strikeRule     = pairRule{"~~", "<del>", "</del>"}
	inlineCodeRule = pairRule{"`", `<code class="md-inline-code">`, "</code>"}
)

// FormatInline converts one line of inline markup to an HTML fragment.
// The text is escaped before any tag is introduced, so only the markup
// inserted here is interpreted by the browser. Unterminated delimiters and
// malformed links are emitted literally.
func FormatInline(text string) string {
	s := escapeHTML(text)

	for _, r := range strongEmRules {
		s = replacePairs(s, r)
	}
	for _, r := range strongRules {
		s = replacePairs(s, r)
	}
	for _, r := range emRules {
		s = replaceSingles(s, r)
	}
	s = replacePairs(s, strikeRule)
	s = replaceSingles(s, inlineCodeRule)
	s = replaceLinks(s)
	s = replaceImages(s)
	return replaceEmoji(s)
}

// replacePairs pairs each opening delimiter with the next occurrence of
// the same delimiter. An opener without a closer is kept literally and
// scanning resumes right after it.
func replacePairs(s string, r pairRule) string {
	if !strings.Contains(s, r.delim) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	rest := s
	for {
		start := strings.Index(rest, r.delim)
		if start < 0 {
			break
		}
		buf.WriteString(rest[:start])
		after := rest[start+len(r.delim):]

		end := strings.Index(after, r.delim)
		if end < 0 {
			buf.WriteString(r.delim)
			rest = after
			continue
		}
		buf.WriteString(r.open)
		buf.WriteString(after[:end])
		buf.WriteString(r.close)
		rest = after[end+len(r.delim):]
	}
	buf.WriteString(rest)
	return buf.String()
}

// replaceSingles toggles between opening and closing tags for a single
// delimiter. An opener is only emitted when the delimiter appears again
// later in the text, so a stray marker stays literal.
func replaceSingles(s string, r pairRule) string {
	if !strings.Contains(s, r.delim) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	rest := s
	open := false
	for {
		pos := strings.Index(rest, r.delim)
		if pos < 0 {
			break
		}
		buf.WriteString(rest[:pos])
		after := rest[pos+len(r.delim):]

		switch {
		case open:
			buf.WriteString(r.close)
			open = false
		case strings.Contains(after, r.delim):
			buf.WriteString(r.open)
			open = true
		default:
			buf.WriteString(r.delim)
		}
		rest = after
	}
	buf.WriteString(rest)
	return buf.String()
}

// splitTarget parses "label](target)" at the start of s. It returns the
// label, the target and the unconsumed remainder.
func splitTarget(s string) (label, target, rest string, ok bool) {
	closeBracket := strings.IndexByte(s, ']')
	if closeBracket < 0 {
		return "", "", "", false
	}
	after := s[closeBracket+1:]
	if !strings.HasPrefix(after, "(") {
		return "", "", "", false
	}
	closeParen := strings.IndexByte(after, ')')
	if closeParen < 0 {
		return "", "", "", false
	}
	return s[:closeBracket], after[1:closeParen], after[closeParen+1:], true
}

// replaceLinks converts [text](url) into anchors. A bracket preceded by
// '!' belongs to an image and is left for replaceImages.
func replaceLinks(s string) string {
	if !strings.Contains(s, "[") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	i := 0
	for i < len(s) {
		rel := strings.IndexByte(s[i:], '[')
		if rel < 0 {
			break
		}
		pos := i + rel
		buf.WriteString(s[i:pos])

		if pos > 0 && s[pos-1] == '!' {
			buf.WriteByte('[')
			i = pos + 1
			continue
		}

		label, url, rest, ok := splitTarget(s[pos+1:])
		if !ok {
			buf.WriteByte('[')
			i = pos + 1
			continue
		}
		buf.WriteString(`<a href="`)
		buf.WriteString(url)
		buf.WriteString(`" target="_blank" rel="noopener">`)
		buf.WriteString(label)
		buf.WriteString(`</a>`)
		i = len(s) - len(rest)
	}
	buf.WriteString(s[i:])
	return buf.String()
}

// replaceImages converts ![alt](url) into img tags.
func replaceImages(s string) string {
	if !strings.Contains(s, "![") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	rest := s
	for {
		pos := strings.Index(rest, "![")
		if pos < 0 {
			break
		}
		buf.WriteString(rest[:pos])
		after := rest[pos+2:]

		alt, url, remainder, ok := splitTarget(after)
		if !ok {
			buf.WriteString("![")
			rest = after
			continue
		}
		buf.WriteString(`<img src="`)
		buf.WriteString(url)
		buf.WriteString(`" alt="`)
		buf.WriteString(alt)
		buf.WriteString(`" class="md-image">`)
		rest = remainder
	}
	buf.WriteString(rest)
	return buf.String()
}
