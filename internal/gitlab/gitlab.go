// Package gitlab fetches merge-request activity snapshots from the GitLab
// REST API and maps them onto the local snapshot model.
package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	glab "gitlab.com/gitlab-org/api/client-go"
)

const perPage = 100

// NewClient creates a GitLab API client.
// token: personal access token; baseURL may be empty for gitlab.com.
func NewClient(baseURL, token string) (*glab.Client, error) {
	if baseURL == "" {
		return glab.NewClient(token)
	}
	apiURL := strings.TrimSuffix(baseURL, "/") + "/api/v4"
	return glab.NewClient(token, glab.WithBaseURL(apiURL))
}

// FetchMergeRequests pulls every merge request of a project updated since the
// given instant, including discussions, award emoji, and file changes.
// Pagination is a plain fetch-until-empty-page loop.
func FetchMergeRequests(ctx context.Context, client *glab.Client, project string, updatedAfter time.Time) ([]MergeRequest, error) {
	opts := &glab.ListProjectMergeRequestsOptions{
		UpdatedAfter: &updatedAfter,
		Scope:        glab.Ptr("all"),
		ListOptions:  glab.ListOptions{Page: 1, PerPage: perPage},
	}

	var result []MergeRequest
	for {
		page, _, err := client.MergeRequests.ListProjectMergeRequests(project, opts, glab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list merge requests for %s: %w", project, err)
		}
		if len(page) == 0 {
			break
		}

		for _, basic := range page {
			mr, err := fetchMergeRequest(ctx, client, project, basic.IID)
			if err != nil {
				return nil, err
			}
			result = append(result, *mr)
		}

		opts.Page++
	}

	slog.Info("fetched merge requests", "project", project, "count", len(result))
	return result, nil
}

// fetchMergeRequest loads the full record of one merge request.
func fetchMergeRequest(ctx context.Context, client *glab.Client, project string, iid int) (*MergeRequest, error) {
	detail, _, err := client.MergeRequests.GetMergeRequest(project, iid, nil, glab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get merge request %s!%d: %w", project, iid, err)
	}

	mr := mapMergeRequest(project, detail)

	discussions, err := fetchDiscussions(ctx, client, project, iid)
	if err != nil {
		return nil, fmt.Errorf("failed to get discussions for %s!%d: %w", project, iid, err)
	}
	mr.Discussions = discussions

	awards, err := fetchAwards(ctx, client, project, iid)
	if err != nil {
		return nil, fmt.Errorf("failed to get award emoji for %s!%d: %w", project, iid, err)
	}
	mr.Awards = awards

	changes, err := fetchChanges(ctx, client, project, iid)
	if err != nil {
		return nil, fmt.Errorf("failed to get changes for %s!%d: %w", project, iid, err)
	}
	mr.Changes = changes

	return mr, nil
}

// mapMergeRequest converts the API detail record to the snapshot model.
func mapMergeRequest(project string, detail *glab.MergeRequest) *MergeRequest {
	mr := &MergeRequest{
		Project:  project,
		Number:   detail.IID,
		Title:    detail.Title,
		State:    mapState(detail.State),
		MergedAt: detail.MergedAt,
	}
	if detail.CreatedAt != nil {
		mr.CreatedAt = *detail.CreatedAt
	}
	if detail.Author != nil {
		mr.Author = detail.Author.Username
	}
	if detail.MergeUser != nil {
		mr.MergedBy = detail.MergeUser.Username
	}
	return mr
}

func mapState(state string) State {
	switch state {
	case "opened":
		return StateOpen
	case "merged":
		return StateMerged
	default:
		return StateOther
	}
}

func fetchDiscussions(ctx context.Context, client *glab.Client, project string, iid int) ([]Discussion, error) {
	opts := &glab.ListMergeRequestDiscussionsOptions{Page: 1, PerPage: perPage}

	var result []Discussion
	for {
		page, _, err := client.Discussions.ListMergeRequestDiscussions(project, iid, opts, glab.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, d := range page {
			discussion := Discussion{ID: d.ID}
			for _, n := range d.Notes {
				note := Note{
					Body:   n.Body,
					Author: n.Author.Username,
					System: n.System,
				}
				if n.CreatedAt != nil {
					note.CreatedAt = *n.CreatedAt
				}
				discussion.Notes = append(discussion.Notes, note)
			}
			result = append(result, discussion)
		}

		opts.Page++
	}
	return result, nil
}

func fetchAwards(ctx context.Context, client *glab.Client, project string, iid int) ([]Award, error) {
	opts := &glab.ListAwardEmojiOptions{Page: 1, PerPage: perPage}

	var result []Award
	for {
		page, _, err := client.AwardEmoji.ListMergeRequestAwardEmoji(project, iid, opts, glab.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, a := range page {
			award := Award{
				Name:   a.Name,
				Author: a.User.Username,
			}
			if a.CreatedAt != nil {
				award.CreatedAt = *a.CreatedAt
			}
			result = append(result, award)
		}

		opts.Page++
	}
	return result, nil
}

func fetchChanges(ctx context.Context, client *glab.Client, project string, iid int) ([]Change, error) {
	opts := &glab.ListMergeRequestDiffsOptions{
		ListOptions: glab.ListOptions{Page: 1, PerPage: perPage},
	}

	var result []Change
	for {
		page, _, err := client.MergeRequests.ListMergeRequestDiffs(project, iid, opts, glab.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, d := range page {
			result = append(result, Change{
				Path:    d.NewPath,
				OldPath: d.OldPath,
				New:     d.NewFile,
				Deleted: d.DeletedFile,
				Renamed: d.RenamedFile,
				Diff:    d.Diff,
			})
		}

		opts.Page++
	}
	return result, nil
}
