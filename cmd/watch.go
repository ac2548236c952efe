package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/internal/adapters/manifest"
	"github.com/kamal-hamza/assetkit/internal/core/domain"
	"github.com/kamal-hamza/assetkit/pkg/site"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var (
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [manifest]",
	Short: "Rebuild bundles when assets change",
	Long: `Watch the manifest and every directory holding a local asset, and
rebuild the bundles when something changes.

Events are debounced (watch_debounce_ms in the config) so an editor saving
several files at once triggers a single rebuild. Generated bundles under
auto/ are ignored.

Use --quiet to suppress rebuild notifications.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress rebuild notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	path, err := filepath.Abs(manifestPath(args))
	if err != nil {
		return fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	kinds := []domain.Kind{domain.KindCSS, domain.KindJS}
	compress := compressFlag()

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	rewatch := func() {
		dirs, err := watchDirs(path)
		if err != nil {
			log.Printf("Watch error: %v", err)
			return
		}
		for _, dir := range dirs {
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				log.Printf("Watch error: %v", err)
				continue
			}
			watched[dir] = true
		}
	}
	rewatch()

	if !watchQuiet {
		fmt.Println(ui.FormatStep(ui.IconWatch, "Watching assets..."))
		fmt.Println(ui.FormatMuted("Manifest: " + path))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Function to perform rebuild
	rebuild := func() {
		result, err := bundleManifest(ctx, path, kinds, compress)
		if err != nil {
			if !watchQuiet {
				fmt.Println(ui.FormatError("Rebuild failed: " + err.Error()))
			}
			log.Printf("Rebuild error: %v", err)
			return
		}
		if !watchQuiet {
			printBundleResult(result)
		}
	}

	// Build once so the bundles match the sources before the first event
	rebuild()

	// Debounce timer to avoid excessive rebuilds
	var debounceTimer *time.Timer
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	rebuildCh := make(chan struct{}, 1)

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}

			// Reset debounce timer
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDuration, func() {
				select {
				case rebuildCh <- struct{}{}:
				default:
				}
			})

		case <-rebuildCh:
			// The manifest may list new directories
			rewatch()
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watch stopped"))
			}
			return nil
		}
	}
}

// watchDirs lists the manifest directory plus every directory holding a
// local asset it references
func watchDirs(manifestPath string) ([]string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	set := map[string]bool{filepath.Dir(manifestPath): true}
	for _, kind := range []domain.Kind{domain.KindCSS, domain.KindJS} {
		for _, e := range m.Entries(kind) {
			if domain.Classify(e.Ref, kind) != domain.ClassLocal {
				continue
			}
			if full, _, ok := appSite.ResolveAsset(e.Ref); ok {
				set[filepath.Dir(full)] = true
			}
		}
	}

	dirs := make([]string, 0, len(set))
	for dir := range set {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// relevantEvent filters out bundle output and editor scratch files
func relevantEvent(event fsnotify.Event) bool {
	if filepath.Base(filepath.Dir(event.Name)) == site.AutoDir {
		return false
	}

	baseName := filepath.Base(event.Name)
	if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") || strings.HasSuffix(baseName, "~") {
		return false
	}

	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
