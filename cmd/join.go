package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/internal/core/services"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var joinCmd = &cobra.Command{
	Use:   "join [file]",
	Short: "Join numbered pieces back into a file",
	Long: `Rebuild <file> from <file>.001, <file>.002, ...

Pieces are appended in order until the first missing number. The output
file is created or truncated first.

If no file is given, a fuzzy finder lists every *.001 piece in the
current directory.

Examples:
  assetkit join backup.tar
  assetkit join`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJoin,
}

func runJoin(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	var target string
	if len(args) > 0 {
		target = args[0]
	} else {
		picked, ok, err := pickPieceSet(".")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil
		}
		target = picked
	}

	resp, err := splitService.Join(ctx, services.JoinRequest{Path: target})
	if err != nil {
		fmt.Println(ui.FormatError("Join failed"))
		return err
	}

	if resp.Pieces == 0 {
		fmt.Println(ui.FormatWarning("No pieces found for " + target))
		return nil
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Joined %d piece(s) into %s (%s)", resp.Pieces, target, ui.FormatBytes(resp.Bytes))))
	return nil
}

// pickPieceSet lets the user choose a piece set in dir. ok is false when
// the user cancelled.
func pickPieceSet(dir string) (string, bool, error) {
	firsts, err := filepath.Glob(filepath.Join(dir, "*.001"))
	if err != nil {
		return "", false, err
	}
	if len(firsts) == 0 {
		return "", false, fmt.Errorf("no *.001 pieces found in %s", dir)
	}

	targets := make([]string, len(firsts))
	for i, f := range firsts {
		targets[i] = strings.TrimSuffix(f, ".001")
	}

	idx, err := fuzzyfinder.Find(
		targets,
		func(i int) string {
			return filepath.Base(targets[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return describePieces(targets[i])
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return "", false, nil
	}
	return targets[idx], true, nil
}

func describePieces(target string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target: %s\n\n", filepath.Base(target))

	var total int64
	n := 1
	for ; ; n++ {
		info, err := os.Stat(services.PiecePath(target, n))
		if err != nil || !info.Mode().IsRegular() {
			break
		}
		total += info.Size()
		fmt.Fprintf(&sb, "%s  %s\n", filepath.Base(services.PiecePath(target, n)), ui.FormatBytes(info.Size()))
	}
	fmt.Fprintf(&sb, "\n%d piece(s), %s", n-1, ui.FormatBytes(total))
	return sb.String()
}
