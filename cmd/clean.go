package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated bundles",
	Long: `Remove every generated bundle under <media>/css/auto and <media>/js/auto.

Bundles are never deleted by the bundler itself; stale fingerprints pile up
until this command is run. The next 'assetkit bundle' regenerates what the
manifest needs.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.StyleWarning.Render("Removing generated bundles... "))

	removed, err := appSite.CleanBundles()
	if err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Done"))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d bundle(s) removed.", removed)))
	return nil
}
