package pipeline

import "strings"

// emojiShortcodes maps the supported :shortcode: names to their glyphs.
// The list is fixed; unknown shortcodes are left untouched.
var emojiShortcodes = []string{
	":smile:", "\U0001F604",
	":laughing:", "\U0001F606",
	":thumbsup:", "\U0001F44D",
	":thumbsdown:", "\U0001F44E",
	":heart:", "❤️",
	":star:", "⭐",
	":fire:", "\U0001F525",
	":rocket:", "\U0001F680",
	":warning:", "⚠️",
	":check:", "✅",
	":x:", "❌",
	":info:", "ℹ️",
	":bulb:", "\U0001F4A1",
	":memo:", "\U0001F4DD",
	":tada:", "\U0001F389",
	":eyes:", "\U0001F440",
	":thinking:", "\U0001F914",
	":wave:", "\U0001F44B",
	":clap:", "\U0001F44F",
	":100:", "\U0001F4AF",
}

// replaceEmoji substitutes known shortcodes with their Unicode glyphs, one
// table entry at a time in table order. Overlapping codes resolve by table
// position: ":x:smile:" becomes ":x" followed by the smile glyph.
func replaceEmoji(s string) string {
	for i := 0; i < len(emojiShortcodes) && strings.Contains(s, ":"); i += 2 {
		s = strings.ReplaceAll(s, emojiShortcodes[i], emojiShortcodes[i+1])
	}
	return s
}

// EmojiShortcodes returns the supported shortcodes in table order.
func EmojiShortcodes() []string {
	codes := make([]string, 0, len(emojiShortcodes)/2)
	for i := 0; i < len(emojiShortcodes); i += 2 {
		codes = append(codes, emojiShortcodes[i])
	}
	return codes
}
