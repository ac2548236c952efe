package services

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kamal-hamza/assetkit/internal/core/domain"
	"github.com/kamal-hamza/assetkit/internal/core/ports"
	"github.com/kamal-hamza/assetkit/pkg/cssmin"
	"github.com/kamal-hamza/assetkit/pkg/site"
)

// ErrNoPacker is returned when JS bundling is requested without a packer
var ErrNoPacker = errors.New("no javascript packer configured")

// BundleOptions holds the bundling switches
type BundleOptions struct {
	MinifyCSS bool // When false, CSS lists are returned untouched
	MinifyJS  bool // When false, JS lists are returned untouched
	Pack      ports.PackOptions
}

// BundleService concatenates and minifies CSS/JS assets into a single file
type BundleService struct {
	site   *site.Site
	packer ports.Packer
	opts   BundleOptions
}

// NewBundleService creates a new bundle service
func NewBundleService(s *site.Site, packer ports.Packer, opts BundleOptions) *BundleService {
	return &BundleService{
		site:   s,
		packer: packer,
		opts:   opts,
	}
}

// BundleRequest represents a request to bundle one kind of asset
type BundleRequest struct {
	Entries  []domain.Entry
	Kind     domain.Kind
	Compress bool
}

// BundleResponse represents the rewritten asset list
type BundleResponse struct {
	Entries   []domain.Entry
	Key       domain.BundleKey // Empty when nothing local was bundled
	Path      string           // Absolute bundle path, empty when nothing was bundled
	URL       string
	Generated bool // False when an existing bundle was reused
	Bundled   int  // Local assets that went into the bundle
}

type localAsset struct {
	ref  string
	path string
}

// Execute bundles req.Entries in order.
//
// External references (and *.min.js for JS) pass through. CSS pass-through
// keeps the entry's value; JS pass-through keeps only the reference. Local
// files that cannot be resolved are dropped without an error. Repeated
// references are collapsed with domain.UniqueEntries.
func (s *BundleService) Execute(ctx context.Context, req BundleRequest) (*BundleResponse, error) {
	if !s.enabled(req.Kind) {
		return &BundleResponse{Entries: passThrough(req.Kind, domain.UniqueEntries(req.Entries))}, nil
	}
	if req.Kind == domain.KindJS && s.packer == nil {
		return nil, ErrNoPacker
	}

	resp := &BundleResponse{}
	fp := domain.NewFingerprint()
	var locals []localAsset

	for _, e := range domain.UniqueEntries(req.Entries) {
		if domain.Classify(e.Ref, req.Kind) != domain.ClassLocal {
			resp.Entries = append(resp.Entries, passThroughEntry(req.Kind, e))
			continue
		}

		path, info, ok := s.site.ResolveAsset(e.Ref)
		if !ok {
			continue
		}
		fp.Add(e.Ref, info.ModTime())
		locals = append(locals, localAsset{ref: e.Ref, path: path})
	}

	if fp.Len() == 0 {
		return resp, nil
	}

	kind := string(req.Kind)
	resp.Key = fp.Key()
	filename := domain.BundleFilename(resp.Key, req.Kind, req.Compress)
	resp.Path = s.site.BundlePath(kind, filename)
	resp.URL = s.site.BundleURL(kind, filename)
	resp.Bundled = len(locals)

	_, err := os.Stat(resp.Path)
	switch {
	case err == nil:
		// Reuse
	case os.IsNotExist(err):
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.writeBundle(resp.Path, req.Kind, req.Compress, locals); err != nil {
			return nil, err
		}
		resp.Generated = true
	default:
		return nil, fmt.Errorf("failed to check bundle: %w", err)
	}

	resp.Entries = append(resp.Entries, domain.Entry{Ref: resp.URL})
	return resp, nil
}

func (s *BundleService) enabled(kind domain.Kind) bool {
	switch kind {
	case domain.KindCSS:
		return s.opts.MinifyCSS
	case domain.KindJS:
		return s.opts.MinifyJS
	}
	return false
}

// writeBundle creates the bundle file. Concurrent writers for the same key
// produce identical bytes, so no locking is done.
func (s *BundleService) writeBundle(path string, kind domain.Kind, compress bool, locals []localAsset) (err error) {
	if err := os.MkdirAll(s.site.BundleDir(string(kind)), 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close bundle: %w", cerr)
		}
		// A partial bundle would be reused forever by the existence check
		if err != nil {
			os.Remove(path)
		}
	}()

	var w io.Writer = f
	if compress {
		gz := gzip.NewWriter(f)
		defer func() {
			if cerr := gz.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to flush compressed bundle: %w", cerr)
			}
		}()
		w = gz
	}

	for _, a := range locals {
		content, err := os.ReadFile(a.path)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", a.ref, err)
		}

		out, err := s.transform(kind, content)
		if err != nil {
			return fmt.Errorf("failed to minify %s: %w", a.ref, err)
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
		if kind == domain.KindJS {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("failed to write bundle: %w", err)
			}
		}
	}

	return nil
}

func (s *BundleService) transform(kind domain.Kind, content []byte) ([]byte, error) {
	if kind == domain.KindCSS {
		return cssmin.MinifyBytes(content), nil
	}
	return s.packer.Pack(content, s.opts.Pack)
}

func passThrough(kind domain.Kind, entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, passThroughEntry(kind, e))
	}
	return out
}

// passThroughEntry keeps CSS entries whole and reduces JS entries to the bare reference
func passThroughEntry(kind domain.Kind, e domain.Entry) domain.Entry {
	if kind == domain.KindJS {
		return domain.Entry{Ref: e.Ref}
	}
	return e
}
