package site

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// AutoDir is the directory (under media/<kind>/) that holds generated bundles
const AutoDir = "auto"

// Site represents the document root an asset pipeline works against
type Site struct {
	RootPath  string // Absolute document root
	MediaDir  string // Media directory relative to the root, slash separated ("media")
	MediaPath string // Absolute media directory
	BaseURL   string // Public URL prefix of the document root ("/" or "https://cdn.example.com/")
}

// New creates a Site rooted at root. Relative roots are made absolute.
func New(root, mediaDir, baseURL string) (*Site, error) {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document root: %w", err)
	}

	mediaDir = strings.Trim(filepath.ToSlash(mediaDir), "/")
	if mediaDir == "" {
		mediaDir = "media"
	}
	if baseURL == "" {
		baseURL = "/"
	}

	return &Site{
		RootPath:  absRoot,
		MediaDir:  mediaDir,
		MediaPath: filepath.Join(absRoot, filepath.FromSlash(mediaDir)),
		BaseURL:   baseURL,
	}, nil
}

// Initialize creates the media and bundle directories if they don't exist
func (s *Site) Initialize() error {
	directories := []string{
		s.RootPath,
		s.MediaPath,
		s.BundleDir("css"),
		s.BundleDir("js"),
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the document root is an existing directory
func (s *Site) Exists() bool {
	info, err := os.Stat(s.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// BundleDir returns media/<kind>/auto
func (s *Site) BundleDir(kind string) string {
	return filepath.Join(s.MediaPath, kind, AutoDir)
}

// BundlePath returns the absolute path of a bundle file
func (s *Site) BundlePath(kind, filename string) string {
	return filepath.Join(s.BundleDir(kind), filename)
}

// BundleURL returns the public URL of a bundle file
func (s *Site) BundleURL(kind, filename string) string {
	return s.URL(path.Join(s.MediaDir, kind, AutoDir, filename))
}

// URL joins a root-relative, slash separated path onto BaseURL
func (s *Site) URL(rel string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(rel, "/")
}

// ResolveAsset maps a local asset reference ("/media/css/site.css") to a
// regular file under the document root. ok is false when the file does not
// exist, is a directory, or the reference climbs out of the root.
func (s *Site) ResolveAsset(ref string) (string, os.FileInfo, bool) {
	full := filepath.Join(s.RootPath, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	if full != s.RootPath && !strings.HasPrefix(full, s.RootPath+string(filepath.Separator)) {
		return "", nil, false
	}

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil, false
	}
	return full, info, true
}

// CleanBundles removes every generated bundle and returns how many files went away
func (s *Site) CleanBundles() (int, error) {
	removed := 0
	for _, kind := range []string{"css", "js"} {
		dir := s.BundleDir(kind)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to read bundle directory: %w", err)
		}

		for _, entry := range entries {
			p := filepath.Join(dir, entry.Name())
			if err := os.RemoveAll(p); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", p, err)
			}
			removed++
		}
	}

	return removed, nil
}

// BundleFile describes one generated bundle on disk
type BundleFile struct {
	Kind    string
	Name    string
	Path    string
	URL     string
	Size    int64
	ModTime time.Time
}

// ListBundles returns the generated bundles of every kind, newest first
// within each kind
func (s *Site) ListBundles() ([]BundleFile, error) {
	var bundles []BundleFile
	for _, kind := range []string{"css", "js"} {
		dir := s.BundleDir(kind)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read bundle directory: %w", err)
		}

		start := len(bundles)
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			bundles = append(bundles, BundleFile{
				Kind:    kind,
				Name:    entry.Name(),
				Path:    filepath.Join(dir, entry.Name()),
				URL:     s.BundleURL(kind, entry.Name()),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}

		group := bundles[start:]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ModTime.After(group[j].ModTime)
		})
	}

	return bundles, nil
}

// RemoveBundle deletes one bundle by kind and file name
func (s *Site) RemoveBundle(kind, name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid bundle name: %q", name)
	}
	if err := os.Remove(s.BundlePath(kind, name)); err != nil {
		return fmt.Errorf("failed to remove bundle: %w", err)
	}
	return nil
}
