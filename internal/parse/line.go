package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/tags"
)

// legacySourcePattern decomposes the combined source descriptor of the
// four-field schema: "file -> function(): line".
var legacySourcePattern = regexp.MustCompile(`^(.*?)\s*->\s*(.*)\(\):\s*(\d+)\s*$`)

type lineStatus int

const (
	lineOK lineStatus = iota
	lineBadNumber // entry retained, source line number is the sentinel
	lineSkipped   // wrong field count (or blank); no entry produced
)

// parseLine converts one raw source line into an entry. The ordinal is the
// line's 1-based position in the source. A field-count mismatch skips the
// line; a bad numeric field keeps the entry with the sentinel line number.
func parseLine(line string, ordinal int, schema entry.Schema, reg *tags.Registry) (entry.Entry, lineStatus) {
	if strings.TrimSpace(line) == "" {
		return entry.Entry{}, lineSkipped
	}

	fields := strings.Split(line, entry.FieldSeparator)
	if len(fields) != schema.FieldCount() {
		return entry.Entry{}, lineSkipped
	}

	tag := reg.GetOrCreate(fields[1])
	e := entry.Entry{
		Ordinal:   ordinal,
		Timestamp: fields[0],
		Tag:       tag.Name,
		Message:   fields[2],
	}

	status := lineOK
	if schema == entry.SchemaLegacy {
		status = decomposeSource(fields[3], &e)
	} else {
		e.SourceFile = strings.TrimSpace(fields[3])
		e.SourceFunction = strings.TrimSpace(fields[4])
		n, err := strconv.Atoi(strings.TrimSpace(fields[5]))
		if err != nil || n < 0 {
			e.SourceLine = entry.SentinelLine
			status = lineBadNumber
		} else {
			e.SourceLine = n
		}
	}
	return e, status
}

// decomposeSource splits a legacy combined descriptor into file, function and
// line. When the descriptor does not match the expected pattern the entry
// keeps the whole descriptor as its file name and the sentinel line number;
// the entry is never dropped.
func decomposeSource(descriptor string, e *entry.Entry) lineStatus {
	m := legacySourcePattern.FindStringSubmatch(descriptor)
	if m == nil {
		e.SourceFile = strings.TrimSpace(descriptor)
		e.SourceLine = entry.SentinelLine
		return lineBadNumber
	}
	e.SourceFile = strings.TrimSpace(m[1])
	e.SourceFunction = strings.TrimSpace(m[2])
	n, err := strconv.Atoi(m[3])
	if err != nil {
		e.SourceLine = entry.SentinelLine
		return lineBadNumber
	}
	e.SourceLine = n
	return lineOK
}
