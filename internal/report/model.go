package report

import "time"

// Row colors of the merge-request table, in priority order.
const (
	colorAuthoredNew  = "#77dd77" // authored and created on the day
	colorAuthored     = "#d5f0d5" // authored on another day
	colorAddedCommits = "#f5b162" // pushed commits to someone else's MR
	colorDefault      = "#ffffff"
)

// maxMessageLength bounds a rendered message body. Longer bodies are cut and
// get an ellipsis appended.
const maxMessageLength = 300

// Document is the composed report: one section per calendar day, plus an
// optional prose narrative at the top.
type Document struct {
	From      time.Time
	To        time.Time
	Narrative string
	Days      []DaySection
}

// DaySection is one day's worth of summarized activity, ready to render.
type DaySection struct {
	Date          time.Time
	Heading       string
	MergeRequests []MergeRequestRow
	Conversations []ConversationBlock
}

// MergeRequestRow is one row of the merge-request table.
type MergeRequestRow struct {
	Title    string
	Commits  int
	Comments int
	Reviewed bool
	Merged   bool
	Color    string
}

// ConversationBlock is one channel or chat with its kept messages.
type ConversationBlock struct {
	Heading string
	Items   []MessageView
}

// MessageView is a rendered message, a gap marker, or a thread top with
// nested replies.
type MessageView struct {
	Gap       bool
	Important bool
	Text      string
	Replies   []MessageView
}
