package mimetype

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Default is returned when nothing better is known
const Default = "application/octet-stream"

// extensions maps a lowercase extension (no dot) to its MIME types, most
// specific first
var extensions = map[string][]string{
	// Text formats
	"html": {"text/html"},
	"htm":  {"text/html"},
	"css":  {"text/css"},
	"js":   {"application/javascript", "text/javascript", "application/x-javascript"},
	"mjs":  {"text/javascript"},
	"json": {"application/json"},
	"txt":  {"text/plain"},
	"xml":  {"application/xml", "text/xml"},
	"csv":  {"text/csv", "text/x-comma-separated-values"},
	"md":   {"text/markdown"},

	// Images
	"jpg":  {"image/jpeg", "image/pjpeg"},
	"jpeg": {"image/jpeg", "image/pjpeg"},
	"png":  {"image/png", "image/x-png"},
	"gif":  {"image/gif"},
	"svg":  {"image/svg+xml"},
	"webp": {"image/webp"},
	"ico":  {"image/x-icon", "image/vnd.microsoft.icon"},
	"bmp":  {"image/bmp"},
	"avif": {"image/avif"},

	// Video
	"mp4":  {"video/mp4"},
	"webm": {"video/webm"},
	"avi":  {"video/x-msvideo"},
	"mov":  {"video/quicktime"},
	"wmv":  {"video/x-ms-wmv"},

	// Audio
	"mp3":  {"audio/mpeg", "audio/mpg", "audio/mpeg3"},
	"wav":  {"audio/wav", "audio/x-wav"},
	"ogg":  {"audio/ogg"},
	"m4a":  {"audio/mp4"},
	"flac": {"audio/flac"},

	// Fonts
	"woff":  {"font/woff"},
	"woff2": {"font/woff2"},
	"ttf":   {"font/ttf"},
	"otf":   {"font/otf"},
	"eot":   {"application/vnd.ms-fontobject"},

	// Documents
	"pdf":  {"application/pdf", "application/x-download"},
	"doc":  {"application/msword"},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"xls":  {"application/vnd.ms-excel", "application/excel"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},

	// Archives
	"zip": {"application/zip", "application/x-zip-compressed"},
	"tar": {"application/x-tar"},
	"gz":  {"application/gzip", "application/x-gzip"},
	"rar": {"application/vnd.rar", "application/x-rar-compressed"},
	"7z":  {"application/x-7z-compressed"},
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ByExt returns the primary MIME type for an extension ("css", ".CSS"),
// or "" when unknown
func ByExt(ext string) string {
	if types := extensions[normalizeExt(ext)]; len(types) > 0 {
		return types[0]
	}
	return ""
}

// TypesByExt returns every MIME type registered for an extension
func TypesByExt(ext string) []string {
	types := extensions[normalizeExt(ext)]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// ExtsByMIME returns the sorted extensions that map to mimeType
func ExtsByMIME(mimeType string) []string {
	mimeType = baseType(mimeType)

	var exts []string
	for ext, types := range extensions {
		for _, t := range types {
			if t == mimeType {
				exts = append(exts, ext)
				break
			}
		}
	}
	sort.Strings(exts)
	return exts
}

// ExtByMIME returns one extension for mimeType, or "" when unknown.
// Extensions whose primary type is mimeType win over aliases.
func ExtByMIME(mimeType string) string {
	exts := ExtsByMIME(mimeType)
	for _, ext := range exts {
		if extensions[ext][0] == baseType(mimeType) {
			return ext
		}
	}
	if len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// ForFile detects the MIME type of a file from its content, falling back to
// the extension table when the content only says "some text" or "some
// bytes". Parameters such as charset are dropped.
func ForFile(path string) (string, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect mime type: %w", err)
	}

	sniffed := baseType(detected.String())
	if !isGeneric(sniffed) {
		return sniffed, nil
	}

	if byExt := ByExt(filepath.Ext(path)); byExt != "" {
		return byExt, nil
	}
	return sniffed, nil
}

// ContentType returns a Content-Type header value from the extension alone
func ContentType(path string) string {
	ct := ByExt(filepath.Ext(path))
	if ct == "" {
		return Default
	}
	if strings.HasPrefix(ct, "text/") || ct == "application/javascript" || ct == "application/json" {
		ct += "; charset=utf-8"
	}
	return ct
}

func isGeneric(mimeType string) bool {
	return mimeType == Default || mimeType == "text/plain"
}

func baseType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
