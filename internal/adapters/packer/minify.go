package packer

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"github.com/kamal-hamza/assetkit/internal/core/ports"
)

const mediaType = "application/javascript"

// MinifyPacker implements ports.Packer on top of tdewolff/minify.
//
// Only ShrinkVars maps onto the minifier. Encoding and Base62 belong to
// eval-based packers and are accepted without effect.
type MinifyPacker struct {
	shrink *minify.M
	keep   *minify.M
}

// NewMinifyPacker creates a packer with both variable naming modes ready
func NewMinifyPacker() *MinifyPacker {
	return &MinifyPacker{
		shrink: newMinifier(false),
		keep:   newMinifier(true),
	}
}

func newMinifier(keepVarNames bool) *minify.M {
	m := minify.New()
	m.Add(mediaType, &js.Minifier{KeepVarNames: keepVarNames})
	return m
}

// Pack minifies src
func (p *MinifyPacker) Pack(src []byte, opts ports.PackOptions) ([]byte, error) {
	m := p.keep
	if opts.ShrinkVars {
		m = p.shrink
	}

	out, err := m.Bytes(mediaType, src)
	if err != nil {
		return nil, fmt.Errorf("javascript minification failed: %w", err)
	}
	return out, nil
}
