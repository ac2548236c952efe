package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetkit/pkg/site"
	"github.com/kamal-hamza/assetkit/pkg/ui"
)

var bundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "Browse generated bundles",
	Long: `Browse the generated bundles, newest first per kind.

Controls:
  - ↑/↓   : Navigate
  - Enter : Copy the bundle URL to the clipboard
  - d     : Delete the bundle
  - q     : Quit`,
	Args: cobra.NoArgs,
	RunE: runBundles,
}

func runBundles(cmd *cobra.Command, args []string) error {
	bundles, err := appSite.ListBundles()
	if err != nil {
		return err
	}

	if len(bundles) == 0 {
		fmt.Println(ui.FormatInfo("No generated bundles. Run 'assetkit bundle' first."))
		return nil
	}

	p := tea.NewProgram(newBundlesModel(appSite, bundles))
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

// --- TUI Model ---

type bundlesModel struct {
	site    *site.Site
	table   table.Model
	bundles []site.BundleFile
	status  string
}

func newBundlesModel(s *site.Site, bundles []site.BundleFile) bundlesModel {
	columns := []table.Column{
		{Title: "Kind", Width: 4},
		{Title: "Bundle", Width: 40},
		{Title: "Size", Width: 10},
		{Title: "Modified", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(bundleRows(bundles)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(styles)

	return bundlesModel{
		site:    s,
		table:   t,
		bundles: bundles,
	}
}

func bundleRows(bundles []site.BundleFile) []table.Row {
	rows := make([]table.Row, 0, len(bundles))
	for _, b := range bundles {
		rows = append(rows, table.Row{
			b.Kind,
			b.Name,
			ui.FormatBytes(b.Size),
			b.ModTime.Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func (m bundlesModel) Init() tea.Cmd { return nil }

func (m bundlesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			idx := m.table.Cursor()
			if idx < len(m.bundles) {
				url := m.bundles[idx].URL
				if err := clipboard.WriteAll(url); err != nil {
					m.status = "Clipboard access failed"
				} else {
					m.status = "Copied " + url
				}
			}
			return m, nil

		case "d", "delete":
			idx := m.table.Cursor()
			if idx < len(m.bundles) {
				target := m.bundles[idx]
				if err := m.site.RemoveBundle(target.Kind, target.Name); err != nil {
					m.status = err.Error()
					return m, nil
				}

				m.bundles = append(m.bundles[:idx:idx], m.bundles[idx+1:]...)
				m.table.SetRows(bundleRows(m.bundles))
				if idx >= len(m.bundles) && idx > 0 {
					m.table.SetCursor(idx - 1)
				}
				m.status = "Deleted " + target.Name
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m bundlesModel) View() string {
	if len(m.bundles) == 0 {
		return "\n  " + ui.FormatSuccess("No bundles left.") + "\n\n  Press 'q' to quit.\n"
	}

	view := "\n" +
		ui.StyleTitle.Render(" "+ui.IconBundle+" Bundles ") + "\n\n" +
		m.table.View() + "\n\n"
	if m.status != "" {
		view += " " + ui.FormatMuted(m.status) + "\n"
	}
	return view + ui.FormatMuted(" [Enter] Copy URL  [d] Delete  [q] Quit") + "\n"
}
