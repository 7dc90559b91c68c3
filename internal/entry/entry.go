// Package entry defines the structured log record produced by the parser and
// consumed by the store, filter engine, and presentation layer.
package entry

import "fmt"

// FieldSeparator is the single-character delimiter between fields in a source
// line (ASCII unit separator, 0x1F).
const FieldSeparator = "\x1f"

// SentinelLine marks a source line number that could not be parsed.
const SentinelLine = 0

// Schema selects the expected field layout of a source line.
type Schema int

const (
	// SchemaExtended is the six-field layout:
	// timestamp<FS>LEVEL<FS>message<FS>file<FS>function<FS>line
	SchemaExtended Schema = iota
	// SchemaLegacy is the four-field layout with a combined source
	// descriptor: timestamp<FS>LEVEL<FS>message<FS>file -> function(): line
	SchemaLegacy
)

// FieldCount returns the exact number of delimiter-separated fields the
// schema expects per line.
func (s Schema) FieldCount() int {
	if s == SchemaLegacy {
		return 4
	}
	return 6
}

func (s Schema) String() string {
	if s == SchemaLegacy {
		return "legacy"
	}
	return "extended"
}

// Entry is one parsed log record. Entries are immutable once constructed and
// owned by the store for the lifetime of a parse run.
type Entry struct {
	// Ordinal is the 1-based position of the source line among all lines of
	// the source, including skipped ones. It is stable under filtering and
	// never renumbered.
	Ordinal int

	Timestamp string
	Tag       string // level token, e.g. "ERROR"; resolved via the tag registry
	Message   string

	SourceFile     string
	SourceFunction string
	// SourceLine is the line number inside SourceFile, or SentinelLine when
	// the field was missing or non-numeric.
	SourceLine int
}

// SourceRef formats the short source reference, e.g. "Vulkan.cpp:92".
func (e Entry) SourceRef() string {
	return fmt.Sprintf("%s:%d", e.SourceFile, e.SourceLine)
}

// FullSourceRef formats the complete source descriptor in the legacy layout,
// e.g. "Vulkan.cpp -> initVulkan(): 92".
func (e Entry) FullSourceRef() string {
	return fmt.Sprintf("%s -> %s(): %d", e.SourceFile, e.SourceFunction, e.SourceLine)
}
