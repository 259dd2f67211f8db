package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workdigest/workdigest/internal/config"
	"github.com/workdigest/workdigest/internal/narrative"
	"github.com/workdigest/workdigest/internal/report"
	"github.com/workdigest/workdigest/internal/snapshot"
)

var (
	reportOutput    string
	reportNarrative bool
)

var reportCmd = &cobra.Command{
	Use:   "report <from> <to>",
	Short: "Render the HTML activity report for a date range",
	Long: `Render the day-by-day HTML report from the local snapshot.

Both dates are inclusive and given as YYYY-MM-DD. With --narrative, a short
LLM-written paragraph is prepended (requires OPENAI_API_KEY).

Examples:
  workdigest report 2024-01-01 2024-01-07
  workdigest report 2024-01-01 2024-01-07 --narrative -o week1.html`,
	Args: cobra.ExactArgs(2),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Report file path (default from config)")
	reportCmd.Flags().BoolVar(&reportNarrative, "narrative", false, "Prepend an LLM-written digest paragraph")
}

func runReport(cmd *cobra.Command, args []string) error {
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

	if reportNarrative {
		doc.Narrative = generateNarrative(cmd.Context(), cfg, doc)
	}

	output := reportOutput
	if output == "" {
		output = cfg.ReportPath
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := report.Render(file, doc); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %d day sections to %s\n", len(doc.Days), output)
	return nil
}

// generateNarrative produces the digest paragraph. The digest is best-effort:
// any failure logs a warning and leaves the report without one.
func generateNarrative(ctx context.Context, cfg *config.Config, doc *report.Document) string {
	llmConfig := narrative.DefaultLLMConfig()
	if cfg.Narrative.Model != "" {
		llmConfig.Model = cfg.Narrative.Model
	}
	if cfg.Narrative.MaxTokens > 0 {
		llmConfig.MaxTokens = cfg.Narrative.MaxTokens
	}

	llm, err := narrative.NewOpenAILLM(llmConfig)
	if err != nil {
		slog.Warn("skipping narrative", "error", err)
		return ""
	}

	digest, err := narrative.NewGenerator(llm, llmConfig).Digest(ctx, doc)
	if err != nil {
		slog.Warn("skipping narrative", "error", err)
		return ""
	}
	return digest
}

// parseDateRange parses the two positional date arguments.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", fromStr, err)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", toStr, err)
	}
	return from, to, nil
}
