package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/workdigest/workdigest/internal/config"
	"github.com/workdigest/workdigest/internal/report"
	"github.com/workdigest/workdigest/internal/snapshot"
)

var showCmd = &cobra.Command{
	Use:   "show <from> <to>",
	Short: "Preview the activity report in the terminal",
	Long: `Preview the per-day merge-request activity as a styled terminal table,
without writing the HTML report.

Examples:
  workdigest show 2024-01-01 2024-01-07`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	from, to, err := parseDateRange(args[0], args[1])
	if err != nil {
		return err
	}

	snap, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("no usable snapshot (run fetch first): %w", err)
	}

	doc, err := report.Compose(from, to, cfg.GitLab.UserName, cfg.Chat.UserID, snap.MergeRequests, snap.Conversations)
	if err != nil {
		return fmt.Errorf("report composition failed: %w", err)
	}

	printPreview(doc)
	return nil
}

func printPreview(doc *report.Document) {
	var (
		headingColor = lipgloss.Color("#F780FF") // Bright pink/magenta
		titleColor   = lipgloss.Color("#BD93F9") // Purple
		numberColor  = lipgloss.Color("#FF79C6") // Pink
		flagColor    = lipgloss.Color("#8BE9FD") // Cyan accent
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		quietColor   = lipgloss.Color("#6272A4")
	)

	const (
		titleWidth  = 44
		numberWidth = 10
		flagWidth   = 10
	)

	dayStyle := lipgloss.NewStyle().Foreground(headingColor).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	quietStyle := lipgloss.NewStyle().Foreground(quietColor).Italic(true)

	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Padding(0, 1).Width(titleWidth)
	numberStyle := lipgloss.NewStyle().Foreground(numberColor).Padding(0, 1).Width(numberWidth).Align(lipgloss.Right)
	flagStyle := lipgloss.NewStyle().Foreground(flagColor).Padding(0, 1).Width(flagWidth)

	separator := borderStyle.Render(strings.Join([]string{
		strings.Repeat("─", titleWidth),
		strings.Repeat("─", numberWidth),
		strings.Repeat("─", numberWidth),
		strings.Repeat("─", flagWidth),
	}, "┼"))

	for _, day := range doc.Days {
		fmt.Println(dayStyle.Render(day.Heading))

		if len(day.MergeRequests) == 0 {
			fmt.Println(quietStyle.Render("  no merge-request activity"))
		} else {
			fmt.Println(separator)
			for _, row := range day.MergeRequests {
				flags := ""
				if row.Reviewed {
					flags += "reviewed "
				}
				if row.Merged {
					flags += "merged"
				}

				cells := []string{
					titleStyle.Render(row.Title),
					numberStyle.Render(fmt.Sprintf("%d", row.Commits)),
					numberStyle.Render(fmt.Sprintf("%d", row.Comments)),
					flagStyle.Render(strings.TrimSpace(flags)),
				}
				fmt.Println(strings.Join(cells, borderStyle.Render("│")))
			}
		}

		for _, block := range day.Conversations {
			fmt.Println(quietStyle.Render("  " + block.Heading + ": " + fmt.Sprintf("%d items", len(block.Items))))
		}
		fmt.Println()
	}

	fmt.Println(quietStyle.Render(fmt.Sprintf("Total: %d days", len(doc.Days))))
}
