package domain

import (
	"fmt"
	"strings"
)

// Kind identifies the asset language being bundled
type Kind string

const (
	KindCSS Kind = "css"
	KindJS  Kind = "js"
)

// ParseKind converts "css" / "js" (any case) into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCSS:
		return KindCSS, nil
	case KindJS:
		return KindJS, nil
	}
	return "", fmt.Errorf("unknown asset kind: %q", s)
}

// Ext returns the bundle file extension including the dot
func (k Kind) Ext() string {
	return "." + string(k)
}

// Class is the result of classifying an asset reference
type Class int

const (
	// ClassLocal is a file under the document root that gets bundled
	ClassLocal Class = iota
	// ClassExternal is hosted elsewhere (http..., //...) and passes through
	ClassExternal
	// ClassMinified is a JS file that already ships minified (*.min.js)
	ClassMinified
)

func (c Class) String() string {
	switch c {
	case ClassExternal:
		return "external"
	case ClassMinified:
		return "minified"
	default:
		return "local"
	}
}

// MinifiedSuffix marks JS files that skip the packer
const MinifiedSuffix = ".min.js"

// Entry is one asset reference and its associated value.
// For CSS the value is the media attribute ("screen", "print"); JS ignores it.
type Entry struct {
	Ref   string `yaml:"ref"`
	Value string `yaml:"value"`
}

// Classify decides how the bundler treats ref.
// "http://cdn/x.css" -> external, "//cdn/x.js" -> external,
// "/media/js/lib.min.js" -> minified (JS only), anything else -> local.
func Classify(ref string, kind Kind) Class {
	if IsExternal(ref) {
		return ClassExternal
	}
	if kind == KindJS && strings.HasSuffix(ref, MinifiedSuffix) {
		return ClassMinified
	}
	return ClassLocal
}

// IsExternal reports whether ref points outside the document root
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "//")
}

// UniqueEntries collapses repeated references the way an ordered map does:
// a reference keeps the position of its first occurrence and the value of
// its last one.
func UniqueEntries(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Ref]; ok {
			out[i].Value = e.Value
			continue
		}
		index[e.Ref] = len(out)
		out = append(out, e)
	}
	return out
}
