package gitlab

import "time"

// State is the lifecycle state of a merge request.
type State string

const (
	StateOpen   State = "opened"
	StateMerged State = "merged"
	StateOther  State = "other"
)

// MergeRequest is an immutable snapshot of one merge request together with
// its discussions, award emoji, and file changes. A merged state implies a
// non-nil MergedAt and a non-empty MergedBy.
type MergeRequest struct {
	Project   string     `json:"project"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	State     State      `json:"state"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
	MergedBy  string     `json:"merged_by,omitempty"`

	Discussions []Discussion `json:"discussions,omitempty"`
	Awards      []Award      `json:"awards,omitempty"`
	Changes     []Change     `json:"changes,omitempty"`
}

// Discussion is one comment thread on a merge request.
type Discussion struct {
	ID    string `json:"id"`
	Notes []Note `json:"notes"`
}

// Note is a single message within a discussion. System notes are generated by
// the server ("added 2 commits", "changed title") as opposed to human comments.
type Note struct {
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	System    bool      `json:"system"`
}

// Award is an emoji reaction event on a merge request.
type Award struct {
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Change is one per-file diff record of a merge request.
type Change struct {
	Path    string `json:"path"`
	OldPath string `json:"old_path,omitempty"`
	New     bool   `json:"new,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
	Renamed bool   `json:"renamed,omitempty"`
	Diff    string `json:"diff,omitempty"`
}
