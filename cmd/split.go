package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/internal/core/services"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var (
	splitSizeMB int
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a file into numbered pieces",
	Long: `Split a file into pieces named <file>.001, <file>.002, ...

Each piece holds at least --size MiB (the last one whatever is left).
The default size comes from piece_size_mb in the config.
Use 'assetkit join' to put the file back together.

Examples:
  assetkit split backup.tar
  assetkit split video.mkv --size 100`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().IntVarP(&splitSizeMB, "size", "s", 0, "Piece size in MiB (default from piece_size_mb)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	size := splitSizeMB
	if !cmd.Flags().Changed("size") {
		size = appConfig.PieceSizeMB
	}

	fmt.Println(ui.FormatStep(ui.IconScissor, fmt.Sprintf("Splitting %s into %d MiB pieces...", args[0], size)))

	resp, err := splitService.Split(ctx, services.SplitRequest{
		Path:        args[0],
		PieceSizeMB: size,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Split failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Wrote %d piece(s), %s", resp.Pieces, ui.FormatBytes(resp.Bytes))))
	for _, p := range resp.Paths {
		fmt.Println(ui.FormatMuted("  " + filepath.Base(p)))
	}
	return nil
}
