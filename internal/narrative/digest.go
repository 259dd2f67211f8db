package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/workdigest/workdigest/internal/report"
)

// Generator produces the report's prose digest using an LLM.
type Generator struct {
	llm    LLM
	config LLMConfig
}

// NewGenerator creates a digest generator with the given LLM implementation.
func NewGenerator(llm LLM, config LLMConfig) *Generator {
	return &Generator{llm: llm, config: config}
}

// Digest writes a short prose paragraph summarizing the composed report.
func (g *Generator) Digest(ctx context.Context, doc *report.Document) (string, error) {
	if g.llm == nil {
		return "", fmt.Errorf("%w: LLM is required", ErrInvalidConfig)
	}

	text, err := g.llm.Generate(ctx, AssemblePrompt(doc))
	if err != nil {
		return "", fmt.Errorf("digest generation failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// AssemblePrompt flattens the composed report into a compact prompt: per day,
// the merge-request titles with their activity counts and the number of kept
// conversation messages.
func AssemblePrompt(doc *report.Document) string {
	var b strings.Builder

	b.WriteString("You are writing the opening paragraph of a personal work activity report. ")
	b.WriteString("Summarize the activity below in 3-4 plain sentences, past tense, no bullet points.\n\n")
	b.WriteString(fmt.Sprintf("# Activity %s to %s\n",
		doc.From.Format("2006-01-02"), doc.To.Format("2006-01-02")))

	for _, day := range doc.Days {
		b.WriteString(fmt.Sprintf("\n## %s\n", day.Heading))

		if len(day.MergeRequests) == 0 && len(day.Conversations) == 0 {
			b.WriteString("- no recorded activity\n")
			continue
		}

		for _, row := range day.MergeRequests {
			b.WriteString(fmt.Sprintf("- MR %q: %d commits pushed, %d comments", row.Title, row.Commits, row.Comments))
			if row.Reviewed {
				b.WriteString(", reviewed")
			}
			if row.Merged {
				b.WriteString(", merged")
			}
			b.WriteString("\n")
		}

		for _, block := range day.Conversations {
			b.WriteString(fmt.Sprintf("- conversation %q: %d messages\n", block.Heading, countMessages(block.Items)))
		}
	}

	return b.String()
}

// countMessages counts kept messages including nested replies, skipping gap
// markers.
func countMessages(items []report.MessageView) int {
	count := 0
	for _, item := range items {
		if item.Gap {
			continue
		}
		count += 1 + countMessages(item.Replies)
	}
	return count
}
