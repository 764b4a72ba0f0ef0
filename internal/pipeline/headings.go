package pipeline

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultTOCTitle is the summary text of the generated table of contents.
const DefaultTOCTitle = "Table of Contents"

// minTOCHeadings is the number of headings required before a TOC is emitted.
const minTOCHeadings = 2

// maxHeadingLevel caps heading runs: "####### x" is an h6.
const maxHeadingLevel = 6

// Heading represents a heading found in the source document.
type Heading struct {
	Level int    // 1-6
	Slug  string // anchor ID
	Text  string // heading text, not escaped; plain text under goldmark
}

// parseHeading reports whether line is an ATX heading and returns its
// level and trimmed text. The run of '#' must be followed by a space.
func parseHeading(line string) (level int, text string, ok bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n >= len(trimmed) || trimmed[n] != ' ' {
		return 0, "", false
	}

	level = min(n, maxHeadingLevel)
	return level, strings.TrimSpace(trimmed[n:]), true
}

// Slugify derives an anchor ID from heading text: lowercase, spaces become
// hyphens, and anything other than alphanumerics and hyphens is dropped.
// Combining vowel signs count as alphabetic, so "हिंदी" keeps its marks.
// The result may be empty.
func Slugify(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ' || r == '-':
			buf.WriteByte('-')
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r):
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// slugger hands out heading IDs. With unique set, repeated slugs get a
// numeric suffix ("intro", "intro-2", ...). Both passes over a document
// use a fresh slugger so that TOC links and heading IDs agree.
type slugger struct {
	unique bool
	seen   map[string]int
}

func newSlugger(unique bool) *slugger {
	return &slugger{unique: unique, seen: make(map[string]int)}
}

func (s *slugger) next(text string) string {
	slug := Slugify(text)
	if !s.unique {
		return slug
	}

	s.seen[slug]++
	count := s.seen[slug]
	if count == 1 {
		return slug
	}
	for {
		candidate := slug + "-" + strconv.Itoa(count)
		if s.seen[candidate] == 0 {
			s.seen[candidate] = 1
			return candidate
		}
		count++
	}
}

// CollectHeadings returns the headings of a document in order.
// Slugs are not deduplicated.
func CollectHeadings(lines []string) []Heading {
	return collectHeadings(lines, newSlugger(false))
}

// DocumentHeadings splits content into lines and collects its headings
// with the same slugs Render assigns for the given uniqueness setting.
func DocumentHeadings(content string, unique bool) []Heading {
	return collectHeadings(splitLines(content), newSlugger(unique))
}

// collectHeadings walks the lines the same way the block renderer does,
// so headings inside fenced code blocks are ignored.
func collectHeadings(lines []string, slugs *slugger) []Heading {
	var headings []Heading
	inCode := false
	for _, line := range lines {
		if _, ok := parseFence(line); ok {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		level, text, ok := parseHeading(line)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			Level: level,
			Slug:  slugs.next(text),
			Text:  text,
		})
	}
	return headings
}

// RenderTOC builds the collapsible table of contents. It returns an empty
// string unless at least two headings are given.
func RenderTOC(headings []Heading, title string) string {
	if len(headings) < minTOCHeadings {
		return ""
	}
	if title == "" {
		title = DefaultTOCTitle
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="md-toc"><details open><summary class="md-toc-title">`)
	buf.WriteString(escapeHTML(title))
	buf.WriteString(`</summary><ul>`)

	for _, h := range headings {
		if indent := h.Level - 1; indent > 0 {
			buf.WriteString(`<li style="margin-left: `)
			buf.WriteString(strconv.Itoa(indent))
			buf.WriteString(`em">`)
		} else {
			buf.WriteString(`<li>`)
		}
		buf.WriteString(`<a href="#`)
		buf.WriteString(escapeHTML(h.Slug))
		buf.WriteString(`">`)
		buf.WriteString(escapeHTML(h.Text))
		buf.WriteString(`</a></li>`)
	}

	buf.WriteString(`</ul></details></nav>`)
	return buf.String()
}
