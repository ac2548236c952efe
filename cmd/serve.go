package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/internal/adapters/web"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var (
	serveAddr  string
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the media directory over HTTP",
	Long: `Serve the media directory, including generated bundles.

gz_ bundles are sent with Content-Encoding: gzip, fingerprinted bundles get
long-lived cache headers, and errors are rendered as HTML or JSON
depending on the Accept header. With --debug, error pages include the
full error chain.

Examples:
  assetkit serve
  assetkit serve --addr :9000 --debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from listen_addr)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Show error details in responses")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	addr := appConfig.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := web.NewServer(appSite, web.ServerConfig{
		Addr:  addr,
		Debug: appConfig.Debug || serveDebug,
	})

	srv.LogStartup()
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	fmt.Println(ui.FormatMuted("Server stopped"))
	return nil
}
