package summary

import (
	"regexp"
	"time"

	"github.com/workdigest/workdigest/internal/gitlab"
	"github.com/workdigest/workdigest/internal/workday"
)

// addedCommitsPattern matches the system note GitLab emits when commits are
// pushed to a merge request ("added 2 commits", "added 1 commit ..."). The
// anchor matters: a note merely containing similar text must not count.
// TODO: replace the free-text parse with structured commit data once the
// fetcher collects per-MR commit lists.
var addedCommitsPattern = regexp.MustCompile(`^added \d+ commit`)

// MergeRequests reduces the merge-request snapshot to the user's activity on
// one day. Merge requests without any activity signal are dropped, even when
// they were created by the user on that day; input order is preserved.
func MergeRequests(day time.Time, userName string, mrs []gitlab.MergeRequest) []MergeRequestSummary {
	var result []MergeRequestSummary

	for i := range mrs {
		mr := &mrs[i]

		s := MergeRequestSummary{
			MergeRequest: mr,
			New:          workday.BelongsTo(day, mr.CreatedAt),
			Authored:     mr.Author == userName,
		}

		for _, d := range mr.Discussions {
			for _, note := range d.Notes {
				if note.Author != userName || !workday.BelongsTo(day, note.CreatedAt) {
					continue
				}
				if note.System {
					if addedCommitsPattern.MatchString(note.Body) {
						s.AddedCommits++
					}
				} else {
					s.Comments = append(s.Comments, note.Body)
				}
			}
		}

		for _, award := range mr.Awards {
			if award.Author == userName && workday.BelongsTo(day, award.CreatedAt) {
				s.Reviewed = true
				break
			}
		}

		if mr.State == gitlab.StateMerged && mr.MergedAt != nil &&
			mr.MergedBy == userName && workday.BelongsTo(day, *mr.MergedAt) {
			s.Merged = true
		}

		if s.HasActivity() {
			result = append(result, s)
		}
	}

	return result
}
