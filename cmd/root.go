package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/internal/adapters/packer"
	"github.com/kamal-hamza/assetkit/internal/core/ports"
	"github.com/kamal-hamza/assetkit/internal/core/services"
	"github.com/kamal-hamza/assetkit/pkg/config"
	"github.com/kamal-hamza/assetkit/pkg/site"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var (
	// Path of the config file, set by --config
	configPath string

	// Global state
	appConfig *config.Config
	appSite   *site.Site

	// Services
	bundleService *services.BundleService
	splitService  *services.SplitService

	// JS packer
	jsPacker *packer.MinifyPacker
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetkit",
	Short: "assetkit - asset bundling and file splitting",
	Long: ui.StyleTitle.Render("assetkit") + " - Asset Toolkit\n\n" +
		"Concatenate and minify CSS/JS into fingerprinted bundles,\n" +
		"split large files into numbered pieces and join them back.",
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the config file")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(bundlesCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(mimeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the config and wires the services
func initializeApp(cmd *cobra.Command, args []string) error {
	// Commands that must work without a config
	switch cmd.Name() {
	case "init", "version":
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	s, err := site.New(config.ResolvePath(configPath, cfg.DocumentRoot), cfg.MediaDir, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize site: %w", err)
	}
	appSite = s

	jsPacker = packer.NewMinifyPacker()

	bundleService = services.NewBundleService(appSite, jsPacker, bundleOptions(cfg))
	splitService = services.NewSplitService()

	return nil
}

func bundleOptions(cfg *config.Config) services.BundleOptions {
	return services.BundleOptions{
		MinifyCSS: cfg.MinifyCSS,
		MinifyJS:  cfg.MinifyJS,
		Pack: ports.PackOptions{
			Encoding:   cfg.JSEncoding,
			Base62:     cfg.JSBase62,
			ShrinkVars: cfg.JSShrinkVars,
		},
	}
}

// getContext returns a context cancelled on interrupt
func getContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
