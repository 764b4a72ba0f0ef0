package pipeline

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Stats summarizes the size of a source document.
type Stats struct {
	Lines      int // 0 for empty input
	Words      int // whitespace-separated
	Bytes      int
	Characters int // user-perceived characters (grapheme clusters)
}

// ComputeStats counts lines, words, bytes and characters of content.
func ComputeStats(content string) Stats {
	return Stats{
		Lines:      len(splitLines(content)),
		Words:      len(strings.Fields(content)),
		Bytes:      len(content),
		Characters: uniseg.GraphemeClusterCount(content),
	}
}
