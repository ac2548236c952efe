package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/assetkit/internal/core/domain"
)

// ErrUnknownSection is returned for top-level keys other than css/js
var ErrUnknownSection = errors.New("unknown manifest section")

// Manifest holds the ordered asset lists of a page
type Manifest struct {
	CSS []domain.Entry
	JS  []domain.Entry
}

// Entries returns the list for kind
func (m *Manifest) Entries(kind domain.Kind) []domain.Entry {
	if kind == domain.KindCSS {
		return m.CSS
	}
	return m.JS
}

// Load reads a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a manifest. Sections are either a mapping of reference to
// value, kept in document order, or a plain list of references. A repeated
// reference keeps its first position and its last value:
//
//	css:
//	  /media/css/site.css: screen
//	js:
//	  - /media/js/app.js
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m := &Manifest{}
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest root must be a mapping (line %d)", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		entries, err := parseSection(value)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", key.Value, err)
		}

		switch key.Value {
		case "css":
			m.CSS = entries
		case "js":
			m.JS = entries
		default:
			return nil, fmt.Errorf("%w: %q (line %d)", ErrUnknownSection, key.Value, key.Line)
		}
	}

	return m, nil
}

func parseSection(node *yaml.Node) ([]domain.Entry, error) {
	var entries []domain.Entry

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			ref, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("value of %q must be a string (line %d)", ref.Value, value.Line)
			}
			v := value.Value
			if value.Tag == "!!null" {
				v = ""
			}
			entries = append(entries, domain.Entry{Ref: ref.Value, Value: v})
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("list items must be strings (line %d)", item.Line)
			}
			entries = append(entries, domain.Entry{Ref: item.Value})
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return nil, fmt.Errorf("expected a mapping or a list (line %d)", node.Line)
		}
	default:
		return nil, fmt.Errorf("expected a mapping or a list (line %d)", node.Line)
	}

	if entries == nil {
		return nil, nil
	}
	return domain.UniqueEntries(entries), nil
}
