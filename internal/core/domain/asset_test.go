package domain

import (
	"strings"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ref      string
		kind     Kind
		expected Class
	}{
		{"/media/css/site.css", KindCSS, ClassLocal},
		{"http://cdn.example.com/a.css", KindCSS, ClassExternal},
		{"https://cdn.example.com/a.js", KindJS, ClassExternal},
		{"//cdn.example.com/a.js", KindJS, ClassExternal},
		{"/media/js/jquery.min.js", KindJS, ClassMinified},
		{"/media/css/reset.min.js", KindCSS, ClassLocal}, // suffix only matters for JS
		{"/media/js/app.js", KindJS, ClassLocal},
		{"httpdocs/app.js", KindJS, ClassExternal}, // plain prefix test, not URL parsing
	}

	for _, tt := range tests {
		got := Classify(tt.ref, tt.kind)
		if got != tt.expected {
			t.Errorf("Classify(%q, %s) = %s, want %s", tt.ref, tt.kind, got, tt.expected)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" CSS "); err != nil || k != KindCSS {
		t.Errorf("ParseKind(CSS) = %q, %v", k, err)
	}
	if k, err := ParseKind("js"); err != nil || k != KindJS {
		t.Errorf("ParseKind(js) = %q, %v", k, err)
	}
	if _, err := ParseKind("less"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	mtime := time.Unix(1700000000, 0)

	a := NewFingerprint()
	a.Add("/a.css", mtime)
	a.Add("/b.css", mtime)

	b := NewFingerprint()
	b.Add("/b.css", mtime)
	b.Add("/a.css", mtime)

	if a.Key() == b.Key() {
		t.Error("expected different keys for different input order")
	}

	again := NewFingerprint()
	again.Add("/a.css", mtime)
	again.Add("/b.css", mtime)
	if again.Key() != a.Key() {
		t.Error("expected identical keys for identical inputs")
	}

	if a.Len() != 2 {
		t.Errorf("expected Len() = 2, got %d", a.Len())
	}
}

func TestFingerprint_MtimeChangesKey(t *testing.T) {
	a := NewFingerprint()
	a.Add("/a.css", time.Unix(1700000000, 0))

	b := NewFingerprint()
	b.Add("/a.css", time.Unix(1700000001, 0))

	if a.Key() == b.Key() {
		t.Error("expected mtime change to change the key")
	}

	// Sub-second changes are invisible
	c := NewFingerprint()
	c.Add("/a.css", time.Unix(1700000000, 500))
	if a.Key() != c.Key() {
		t.Error("expected sub-second mtime change to keep the key")
	}
}

func TestBundleFilename(t *testing.T) {
	key := BundleKey("abc123")

	if got := BundleFilename(key, KindCSS, false); got != "abc123.css" {
		t.Errorf("got %q", got)
	}
	if got := BundleFilename(key, KindJS, true); got != "gz_abc123.js" {
		t.Errorf("got %q", got)
	}
	if !IsCompressedBundle("gz_abc123.js") || IsCompressedBundle("abc123.js") {
		t.Error("IsCompressedBundle mismatch")
	}
}

func TestRenderTags(t *testing.T) {
	css := RenderTags(KindCSS, []Entry{
		{Ref: "//fonts.example.com/a.css?family=A&b=1", Value: "screen"},
		{Ref: "/media/css/auto/abc.css"},
	})

	if !strings.Contains(css, `href="//fonts.example.com/a.css?family=A&amp;b=1" media="screen"`) {
		t.Errorf("unexpected css tags: %s", css)
	}
	if !strings.Contains(css, `<link rel="stylesheet" href="/media/css/auto/abc.css">`) {
		t.Errorf("unexpected css tags: %s", css)
	}

	js := RenderTags(KindJS, []Entry{{Ref: "/media/js/auto/abc.js", Value: "ignored"}})
	if js != "<script src=\"/media/js/auto/abc.js\"></script>\n" {
		t.Errorf("unexpected js tags: %q", js)
	}
}

func TestUniqueEntries(t *testing.T) {
	tests := []struct {
		name     string
		input    []Entry
		expected []Entry
	}{
		{"empty", nil, []Entry{}},
		{
			"no repeats",
			[]Entry{{Ref: "/a.css", Value: "screen"}, {Ref: "/b.css"}},
			[]Entry{{Ref: "/a.css", Value: "screen"}, {Ref: "/b.css"}},
		},
		{
			"first position last value",
			[]Entry{{Ref: "/a.css", Value: "screen"}, {Ref: "/b.css"}, {Ref: "/a.css", Value: "print"}},
			[]Entry{{Ref: "/a.css", Value: "print"}, {Ref: "/b.css"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueEntries(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("entry %d: expected %+v, got %+v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}
