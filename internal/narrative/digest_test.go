package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/workdigest/workdigest/internal/report"
)

func testDocument() *report.Document {
	return &report.Document{
		From: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC),
		Days: []report.DaySection{
			{
				Heading: "Fri 5 (January)",
				MergeRequests: []report.MergeRequestRow{
					{Title: "Add rate limiter", Commits: 2, Comments: 1, Merged: true},
				},
				Conversations: []report.ConversationBlock{{
					Heading: "Platform / General",
					Items: []report.MessageView{
						{Text: "standup notes", Replies: []report.MessageView{{Text: "thanks"}}},
						{Gap: true},
					},
				}},
			},
			{Heading: "Sat 6 (January)"},
		},
	}
}

func TestAssemblePrompt(t *testing.T) {
	prompt := AssemblePrompt(testDocument())

	for _, want := range []string{
		"# Activity 2024-01-05 to 2024-01-06",
		"## Fri 5 (January)",
		`MR "Add rate limiter": 2 commits pushed, 1 comments, merged`,
		`conversation "Platform / General": 2 messages`,
		"## Sat 6 (January)",
		"no recorded activity",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q\n\nprompt:\n%s", want, prompt)
		}
	}
}

func TestDigest_UsesLLMResponse(t *testing.T) {
	mock := NewMockLLM("Busy week shipping the rate limiter.")
	gen := NewGenerator(mock, DefaultLLMConfig())

	got, err := gen.Digest(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "Busy week shipping the rate limiter." {
		t.Errorf("Expected the mock response, got %q", got)
	}
	if !strings.Contains(mock.LastPrompt, "Add rate limiter") {
		t.Error("Expected the assembled prompt to reach the LLM")
	}
}

func TestDigest_PropagatesLLMErrors(t *testing.T) {
	llmErr := errors.New("rate limited")
	gen := NewGenerator(NewMockLLMWithError(llmErr), DefaultLLMConfig())

	_, err := gen.Digest(context.Background(), testDocument())
	if err == nil {
		t.Fatal("Expected an error from a failing LLM")
	}
	if !errors.Is(err, llmErr) {
		t.Errorf("Expected the LLM error in the chain, got %v", err)
	}
}

func TestDigest_RequiresLLM(t *testing.T) {
	gen := NewGenerator(nil, DefaultLLMConfig())
	if _, err := gen.Digest(context.Background(), testDocument()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for a nil LLM, got %v", err)
	}
}
