package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/pkg/mimetype"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var (
	mimeReverse bool
)

var mimeCmd = &cobra.Command{
	Use:   "mime <file>...",
	Short: "Show the MIME types of files",
	Long: `Show the MIME type of each file, detected from its content and from
its extension.

With --reverse, the arguments are MIME types and the known extensions
for each are listed instead.

Examples:
  assetkit mime logo.png site.css
  assetkit mime --reverse image/jpeg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMime,
}

func init() {
	mimeCmd.Flags().BoolVarP(&mimeReverse, "reverse", "r", false, "Look up extensions for MIME types")
}

func runMime(cmd *cobra.Command, args []string) error {
	if mimeReverse {
		return runMimeReverse(args)
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "FILE", Width: 20},
		{Header: "DETECTED", Width: 24},
		{Header: "BY EXTENSION", Width: 24},
		{Header: "SIZE", Width: 10, Align: "right"},
	})

	for _, path := range args {
		byExt := extensionTypes(path)

		info, err := os.Stat(path)
		if err != nil {
			table.AddRow([]string{path, "error: " + err.Error(), byExt, "-"})
			continue
		}
		if info.IsDir() {
			table.AddRow([]string{path, "directory", "-", "-"})
			continue
		}

		detected, err := mimetype.ForFile(path)
		if err != nil {
			detected = "error: " + err.Error()
		}
		table.AddRow([]string{path, detected, byExt, ui.FormatBytes(info.Size())})
	}

	fmt.Print(table.Render())
	return nil
}

func runMimeReverse(types []string) error {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "MIME TYPE", Width: 24},
		{Header: "PREFERRED", Width: 10},
		{Header: "EXTENSIONS", Width: 20},
	})

	for _, t := range types {
		exts := mimetype.ExtsByMIME(t)
		if len(exts) == 0 {
			table.AddRow([]string{t, "-", "-"})
			continue
		}
		table.AddRow([]string{t, mimetype.ExtByMIME(t), strings.Join(exts, ", ")})
	}

	fmt.Print(table.Render())
	return nil
}

// extensionTypes lists every type registered for path's extension
func extensionTypes(path string) string {
	types := mimetype.TypesByExt(filepath.Ext(path))
	if len(types) == 0 {
		return "-"
	}
	return strings.Join(types, ", ")
}
