package entry

import (
	"fmt"
	"strings"
)

// ExportLine renders one entry in the clipboard/export text shape:
//
//	[16:29:40.318][ DEBUG]: Vulkan loader version: 1.4.304 | Vulkan.cpp:92
//
// The level is right-aligned in a six-character column.
func ExportLine(e Entry) string {
	return fmt.Sprintf("[%s][%6s]: %s | %s", e.Timestamp, e.Tag, e.Message, e.SourceRef())
}

// ExportLines renders the entries at the given positions, one line each,
// joined with newlines. Positions outside the slice are ignored. The caller
// owns any clipboard or file I/O; this is only the text shape.
func ExportLines(entries []Entry, positions []int) string {
	var b strings.Builder
	written := 0
	for _, pos := range positions {
		if pos < 0 || pos >= len(entries) {
			continue
		}
		if written > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ExportLine(entries[pos]))
		written++
	}
	return b.String()
}
