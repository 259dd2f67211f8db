package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workdigest/workdigest/internal/chat"
	"github.com/workdigest/workdigest/internal/config"
	"github.com/workdigest/workdigest/internal/gitlab"
	"github.com/workdigest/workdigest/internal/snapshot"
)

var fetchSince string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch activity data and store a local snapshot",
	Long: `Fetch merge requests from GitLab and conversations from the chat
service, then write everything to the snapshot file for later reporting.

Tokens are read from the environment: GITLAB_TOKEN and CHAT_TOKEN.

Examples:
  workdigest fetch
  workdigest fetch --since 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchSince, "since", "", "Fetch merge requests updated since this date (YYYY-MM-DD, default 30 days ago)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	since := time.Now().AddDate(0, 0, -30)
	if fetchSince != "" {
		since, err = time.Parse("2006-01-02", fetchSince)
		if err != nil {
			return fmt.Errorf("invalid --since date: %w", err)
		}
	}

	gitLabToken := os.Getenv("GITLAB_TOKEN")
	if gitLabToken == "" {
		return fmt.Errorf("GITLAB_TOKEN is not set")
	}
	chatToken := os.Getenv("CHAT_TOKEN")
	if chatToken == "" {
		return fmt.Errorf("CHAT_TOKEN is not set")
	}

	ctx := context.Background()

	gitLabClient, err := gitlab.NewClient(cfg.GitLab.BaseURL, gitLabToken)
	if err != nil {
		return fmt.Errorf("failed to create GitLab client: %w", err)
	}

	snap := &snapshot.Snapshot{FetchedAt: time.Now()}

	for _, project := range cfg.GitLab.Projects {
		mrs, err := gitlab.FetchMergeRequests(ctx, gitLabClient, project, since)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		snap.MergeRequests = append(snap.MergeRequests, mrs...)
	}

	chatClient := chat.NewClient(cfg.Chat.BaseURL, chatToken)
	conv, err := chatClient.FetchConversations(ctx, cfg.Chat.Teams)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	snap.Conversations = *conv

	if err := snapshot.Save(cfg.SnapshotPath, snap); err != nil {
		return err
	}

	fmt.Printf("✓ Saved %d merge requests, %d channels, %d chats to %s\n",
		len(snap.MergeRequests),
		len(snap.Conversations.Channels),
		len(snap.Conversations.Chats),
		cfg.SnapshotPath)
	return nil
}
