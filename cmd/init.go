package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/pkg/config"
	"github.com/kamal-hamza/assetkit/pkg/site"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and the media directories",
	Long: `Create assetkit.yaml with default settings, the media directory layout
and an example manifest:

  <media>/css/auto/ : Generated CSS bundles
  <media>/js/auto/  : Generated JS bundles
  assets.yaml       : Ordered list of CSS and JS files to bundle`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

const exampleManifest = `# Files are bundled in the order listed.
# CSS values are the media attribute; JS values are ignored.
# External URLs (http..., //...) and *.min.js files are kept as they are.
css:
  # /media/css/reset.css: screen
  # //fonts.example.com/inter.css: all
js:
  # /media/js/vendor/jquery.min.js: ""
  # /media/js/app.js: ""
`

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println(ui.FormatWarning("Already initialized"))
		fmt.Println(ui.FormatMuted("Config: " + configPath))
		return nil
	}

	cfg := config.DefaultConfig()

	s, err := site.New(config.ResolvePath(configPath, cfg.DocumentRoot), cfg.MediaDir, cfg.BaseURL)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine document root"))
		return err
	}

	fmt.Println(ui.FormatStep(ui.IconBundle, "Initializing assetkit..."))
	fmt.Println()

	if err := s.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to create media directories"))
		return err
	}

	if err := cfg.Save(configPath); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}
	fmt.Println(ui.FormatSuccess("Config (" + filepath.Base(configPath) + ") created"))

	manifestFile := config.ResolvePath(configPath, cfg.Manifest)
	if _, err := os.Stat(manifestFile); os.IsNotExist(err) {
		if err := os.WriteFile(manifestFile, []byte(exampleManifest), 0644); err != nil {
			fmt.Println(ui.FormatWarning("Failed to create manifest: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Manifest (" + filepath.Base(manifestFile) + ") created"))
		}
	}

	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Document root", s.RootPath))
	fmt.Println(ui.RenderKeyValue("Media", s.MediaPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. List your CSS and JS files in " + cfg.Manifest))
	fmt.Println(ui.FormatMuted("  2. Build the bundles: assetkit bundle"))
	fmt.Println(ui.FormatMuted("  3. Rebuild on change: assetkit watch"))

	return nil
}
