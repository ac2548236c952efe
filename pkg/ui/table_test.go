package ui

import (
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10 * 1024 * 1024, "10.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "FILE"},
		{Header: "SIZE", Align: "right"},
	})
	table.AddRow([]string{"site.css", "1.0 KiB"})
	table.AddRow([]string{"a.js"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "FILE") || !strings.Contains(lines[0], "SIZE") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], "site.css") || !strings.Contains(lines[2], "1.0 KiB") {
		t.Errorf("unexpected row: %q", lines[2])
	}
	if !strings.Contains(lines[3], "a.js") {
		t.Errorf("missing cells should render empty: %q", lines[3])
	}
}

func TestTableRender_NoColumns(t *testing.T) {
	if out := NewTable(nil).Render(); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
