package mimetype

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestByExt(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
	}{
		{"css", "text/css"},
		{".css", "text/css"},
		{".JS", "application/javascript"},
		{"jpeg", "image/jpeg"},
		{"woff2", "font/woff2"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ByExt(tt.ext); got != tt.expected {
			t.Errorf("ByExt(%q) = %q, want %q", tt.ext, got, tt.expected)
		}
	}
}

func TestTypesByExt(t *testing.T) {
	got := TypesByExt("png")
	if !reflect.DeepEqual(got, []string{"image/png", "image/x-png"}) {
		t.Errorf("TypesByExt(png) = %v", got)
	}

	// Returned slice is a copy
	got[0] = "changed"
	if ByExt("png") != "image/png" {
		t.Error("TypesByExt exposed the internal table")
	}
}

func TestExtsByMIME(t *testing.T) {
	tests := []struct {
		mime     string
		expected []string
	}{
		{"image/jpeg", []string{"jpeg", "jpg"}},
		{"text/html; charset=utf-8", []string{"htm", "html"}},
		{"text/javascript", []string{"js", "mjs"}},
		{"application/x-nothing", nil},
	}

	for _, tt := range tests {
		got := ExtsByMIME(tt.mime)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ExtsByMIME(%q) = %v, want %v", tt.mime, got, tt.expected)
		}
	}
}

func TestExtByMIME(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"text/css", "css"},
		{"text/javascript", "mjs"}, // primary type of .mjs, alias of .js
		{"application/javascript", "js"},
		{"application/x-nothing", ""},
	}

	for _, tt := range tests {
		if got := ExtByMIME(tt.mime); got != tt.expected {
			t.Errorf("ExtByMIME(%q) = %q, want %q", tt.mime, got, tt.expected)
		}
	}
}

func TestForFile(t *testing.T) {
	dir := t.TempDir()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

	tests := []struct {
		name     string
		filename string
		content  []byte
		expected string
	}{
		{"png content wins over extension", "image.txt", png, "image/png"},
		{"plain text falls back to extension", "site.css", []byte(".a{color:red}"), "text/css"},
		{"unknown extension keeps sniffed type", "notes.unknownext", []byte("hello world"), "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			if err := os.WriteFile(path, tt.content, 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			got, err := ForFile(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ForFile(%s) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestForFile_Missing(t *testing.T) {
	if _, err := ForFile("/non/existent/file.css"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/media/css/auto/abc.css", "text/css; charset=utf-8"},
		{"app.js", "application/javascript; charset=utf-8"},
		{"logo.png", "image/png"},
		{"blob", Default},
	}

	for _, tt := range tests {
		if got := ContentType(tt.path); got != tt.expected {
			t.Errorf("ContentType(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}
