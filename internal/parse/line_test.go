package parse

import (
	"strings"
	"testing"

	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/tags"
)

func newTestRegistry() *tags.Registry {
	r := tags.NewRegistry()
	r.Seed(tags.Defaults())
	return r
}

func fsJoin(fields ...string) string {
	return strings.Join(fields, entry.FieldSeparator)
}

func TestParseLine_Extended(t *testing.T) {
	reg := newTestRegistry()

	tests := []struct {
		name       string
		line       string
		wantStatus lineStatus
		want       entry.Entry
	}{
		{
			name:       "well formed",
			line:       fsJoin("10:00:00.000", "ERROR", "boom", "a.cpp", "f", "5"),
			wantStatus: lineOK,
			want: entry.Entry{
				Ordinal: 7, Timestamp: "10:00:00.000", Tag: "ERROR",
				Message: "boom", SourceFile: "a.cpp", SourceFunction: "f", SourceLine: 5,
			},
		},
		{
			name:       "non-numeric line number keeps entry with sentinel",
			line:       fsJoin("10:00:00.000", "INFO", "ok", "a.cpp", "g", "oops"),
			wantStatus: lineBadNumber,
			want: entry.Entry{
				Ordinal: 7, Timestamp: "10:00:00.000", Tag: "INFO",
				Message: "ok", SourceFile: "a.cpp", SourceFunction: "g", SourceLine: entry.SentinelLine,
			},
		},
		{
			name:       "missing line number keeps entry with sentinel",
			line:       fsJoin("10:00:00.000", "INFO", "ok", "a.cpp", "g", ""),
			wantStatus: lineBadNumber,
			want: entry.Entry{
				Ordinal: 7, Timestamp: "10:00:00.000", Tag: "INFO",
				Message: "ok", SourceFile: "a.cpp", SourceFunction: "g", SourceLine: entry.SentinelLine,
			},
		},
		{
			name:       "too few fields skipped",
			line:       fsJoin("10:00:00.000", "INFO", "ok"),
			wantStatus: lineSkipped,
		},
		{
			name:       "too many fields skipped",
			line:       fsJoin("a", "b", "c", "d", "e", "f", "g"),
			wantStatus: lineSkipped,
		},
		{
			name:       "blank line skipped",
			line:       "   ",
			wantStatus: lineSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status := parseLine(tt.line, 7, entry.SchemaExtended, reg)
			if status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", status, tt.wantStatus)
			}
			if status != lineSkipped && got != tt.want {
				t.Fatalf("entry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLine_Legacy(t *testing.T) {
	reg := newTestRegistry()

	tests := []struct {
		name       string
		descriptor string
		wantStatus lineStatus
		wantFile   string
		wantFunc   string
		wantLine   int
	}{
		{
			name:       "well formed descriptor",
			descriptor: "Vulkan.cpp -> initVulkan(): 92",
			wantStatus: lineOK,
			wantFile:   "Vulkan.cpp",
			wantFunc:   "initVulkan",
			wantLine:   92,
		},
		{
			name:       "descriptor without pattern kept best effort",
			descriptor: "somewhere unknown",
			wantStatus: lineBadNumber,
			wantFile:   "somewhere unknown",
			wantFunc:   "",
			wantLine:   entry.SentinelLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := fsJoin("10:00:00.000", "WARN", "msg", tt.descriptor)
			got, status := parseLine(line, 1, entry.SchemaLegacy, reg)
			if status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", status, tt.wantStatus)
			}
			if got.SourceFile != tt.wantFile || got.SourceFunction != tt.wantFunc || got.SourceLine != tt.wantLine {
				t.Fatalf("source = (%q, %q, %d), want (%q, %q, %d)",
					got.SourceFile, got.SourceFunction, got.SourceLine,
					tt.wantFile, tt.wantFunc, tt.wantLine)
			}
		})
	}
}

func TestParseLine_UnknownLevelAutoCreatesTag(t *testing.T) {
	reg := newTestRegistry()

	line := fsJoin("10:00:00.000", "trace", "msg", "a.cpp", "f", "1")
	got, status := parseLine(line, 1, entry.SchemaExtended, reg)
	if status != lineOK {
		t.Fatalf("status = %v, want lineOK", status)
	}
	if got.Tag != "TRACE" {
		t.Fatalf("Tag = %q, want TRACE", got.Tag)
	}
	tag, ok := reg.Get("TRACE")
	if !ok {
		t.Fatal("registry did not auto-create TRACE")
	}
	if tag.Color != tags.DefaultColor {
		t.Fatalf("auto-created color = %q, want %q", tag.Color, tags.DefaultColor)
	}
}
