package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"html"
	"io"
	"strconv"
	"strings"
	"time"
)

// GzipPrefix is prepended to bundle filenames written through gzip
const GzipPrefix = "gz_"

// BundleKey is the fingerprint of a bundle's inputs (md5 hex)
type BundleKey string

// Fingerprint accumulates reference+mtime pairs in the order they are added.
// Reordering the inputs changes the key.
type Fingerprint struct {
	h     hash.Hash
	count int
}

func NewFingerprint() *Fingerprint {
	return &Fingerprint{h: md5.New()}
}

// Add feeds one local asset into the fingerprint.
// The mtime is taken at second resolution.
func (f *Fingerprint) Add(ref string, modTime time.Time) {
	io.WriteString(f.h, ref)
	io.WriteString(f.h, strconv.FormatInt(modTime.Unix(), 10))
	f.count++
}

// Len returns how many assets were added
func (f *Fingerprint) Len() int {
	return f.count
}

// Key returns the current fingerprint
func (f *Fingerprint) Key() BundleKey {
	return BundleKey(hex.EncodeToString(f.h.Sum(nil)))
}

// BundleFilename builds "[gz_]<key>.<ext>"
func BundleFilename(key BundleKey, kind Kind, compressed bool) string {
	name := string(key) + kind.Ext()
	if compressed {
		name = GzipPrefix + name
	}
	return name
}

// IsCompressedBundle reports whether a bundle filename was written through gzip
func IsCompressedBundle(filename string) bool {
	return strings.HasPrefix(filename, GzipPrefix)
}

// RenderTags turns a bundler result into HTML tags for a template
func RenderTags(kind Kind, entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		switch kind {
		case KindCSS:
			if e.Value != "" {
				fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\" media=\"%s\">\n",
					html.EscapeString(e.Ref), html.EscapeString(e.Value))
			} else {
				fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\">\n", html.EscapeString(e.Ref))
			}
		case KindJS:
			fmt.Fprintf(&b, "<script src=\"%s\"></script>\n", html.EscapeString(e.Ref))
		}
	}
	return b.String()
}
