package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/internal/adapters/manifest"
	"github.com/kamal-hamza/assetkit/internal/core/domain"
	"github.com/kamal-hamza/assetkit/internal/core/services"
	"github.com/kamal-hamza/assetkit/pkg/config"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var (
	bundleGzip   bool
	bundleNoGzip bool
	bundleCopy   bool
	bundleOnly   string
)

var bundleCmd = &cobra.Command{
	Use:   "bundle [manifest]",
	Short: "Concatenate and minify the assets listed in a manifest",
	Long: `Bundle the CSS and JS files listed in the manifest.

Local files are minified and concatenated into one fingerprinted file per
kind under <media>/css/auto and <media>/js/auto. External references
(http..., //...) and prebuilt .min.js files are kept as they are.
A bundle is only written when its fingerprint changes, so running the
command twice is cheap.

The resulting <link> and <script> tags are printed in manifest order.

Examples:
  assetkit bundle                 # uses the manifest from assetkit.yaml
  assetkit bundle site/assets.yaml
  assetkit bundle --gzip --copy   # gz_ bundles, tags copied to clipboard
  assetkit bundle --only css`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBundle,
}

func init() {
	bundleCmd.Flags().BoolVar(&bundleGzip, "gzip", false, "Write gzip compressed bundles (default from allow_gzip)")
	bundleCmd.Flags().BoolVar(&bundleNoGzip, "no-gzip", false, "Write plain bundles even when allow_gzip is set")
	bundleCmd.Flags().BoolVar(&bundleCopy, "copy", false, "Copy the generated tags to the clipboard")
	bundleCmd.Flags().StringVar(&bundleOnly, "only", "", "Bundle a single kind (css or js)")
	bundleCmd.MarkFlagsMutuallyExclusive("gzip", "no-gzip")
}

func runBundle(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	kinds, err := selectedKinds(bundleOnly)
	if err != nil {
		return err
	}

	result, err := bundleManifest(ctx, manifestPath(args), kinds, compressFlag())
	if err != nil {
		fmt.Println(ui.FormatError("Bundling failed"))
		return err
	}

	printBundleResult(result)

	tags := result.Tags()
	fmt.Println()
	fmt.Print(tags)

	if bundleCopy {
		if err := clipboard.WriteAll(tags); err != nil {
			fmt.Println(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		} else {
			fmt.Println(ui.FormatSuccess("Tags copied to clipboard"))
		}
	}

	return nil
}

// bundleResult holds one bundler response per kind, in manifest order
type bundleResult struct {
	kinds     []domain.Kind
	responses map[domain.Kind]*services.BundleResponse
}

// Tags renders every kind's entries as HTML tags
func (r *bundleResult) Tags() string {
	var sb strings.Builder
	for _, kind := range r.kinds {
		sb.WriteString(domain.RenderTags(kind, r.responses[kind].Entries))
	}
	return sb.String()
}

func bundleManifest(ctx context.Context, path string, kinds []domain.Kind, compress bool) (*bundleResult, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	result := &bundleResult{responses: make(map[domain.Kind]*services.BundleResponse)}
	for _, kind := range kinds {
		resp, err := bundleService.Execute(ctx, services.BundleRequest{
			Entries:  m.Entries(kind),
			Kind:     kind,
			Compress: compress,
		})
		if err != nil {
			return nil, fmt.Errorf("%s bundle: %w", kind, err)
		}
		result.kinds = append(result.kinds, kind)
		result.responses[kind] = resp
	}

	return result, nil
}

func printBundleResult(result *bundleResult) {
	for _, kind := range result.kinds {
		resp := result.responses[kind]
		label := strings.ToUpper(string(kind))

		switch {
		case resp.URL == "":
			fmt.Println(ui.FormatMuted(fmt.Sprintf("%s: no local files to bundle", label)))
		case resp.Generated:
			fmt.Println(ui.FormatStep(ui.IconBundle, fmt.Sprintf("%s: %d files → %s", label, resp.Bundled, resp.URL)))
		default:
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s: up to date (%s)", label, resp.URL)))
		}
	}
}

func manifestPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.ResolvePath(configPath, appConfig.Manifest)
}

func compressFlag() bool {
	switch {
	case bundleGzip:
		return true
	case bundleNoGzip:
		return false
	}
	return appConfig.AllowGzip
}

func selectedKinds(only string) ([]domain.Kind, error) {
	if only == "" {
		return []domain.Kind{domain.KindCSS, domain.KindJS}, nil
	}
	kind, err := domain.ParseKind(only)
	if err != nil {
		return nil, err
	}
	return []domain.Kind{kind}, nil
}
