// Package summary reduces raw activity snapshots to per-day views of what one
// user was doing. Summarizers never mutate their inputs and allocate fresh
// output structures on every call, so they are safe to run concurrently over
// independent days.
package summary

import (
	"github.com/workdigest/workdigest/internal/chat"
	"github.com/workdigest/workdigest/internal/gitlab"
)

// MergeRequestSummary is one merge request's activity on a single day.
// New and Authored are display hints; only the activity fields decide whether
// the merge request is retained.
type MergeRequestSummary struct {
	MergeRequest *gitlab.MergeRequest

	// New is true when the merge request was created on the day.
	New bool

	// Authored is true when the user authored the merge request,
	// regardless of day.
	Authored bool

	// AddedCommits counts the user's "added N commits" system notes on the day.
	AddedCommits int

	// Comments holds the bodies of the user's human comments on the day,
	// in discussion traversal order.
	Comments []string

	// Reviewed is true when the user awarded an emoji on the day. This is a
	// proxy for a finished review, not a real approval check.
	Reviewed bool

	// Merged is true when the user merged the merge request on the day.
	Merged bool
}

// HasActivity reports whether any activity signal is set. New and Authored
// deliberately do not count.
func (s *MergeRequestSummary) HasActivity() bool {
	return s.AddedCommits > 0 || len(s.Comments) > 0 || s.Reviewed || s.Merged
}

// MessageItem is one entry of a summarized message window: either a kept
// message or a gap marker standing in for a run of dropped messages.
type MessageItem struct {
	// Gap marks a placeholder for one or more dropped messages. When set,
	// the other fields are zero.
	Gap bool

	// Important is true when the kept message was written by the user.
	Important bool

	Message chat.Message
}

// ThreadSummary is one channel thread retained for the day: the top-level
// message plus the windowed view of its replies.
type ThreadSummary struct {
	Message   chat.Message
	Important bool
	Replies   []MessageItem
}

// ChannelSummary is one channel's retained threads for the day.
type ChannelSummary struct {
	Channel chat.Channel
	Threads []ThreadSummary
}

// ChatSummary is one chat's windowed messages for the day.
type ChatSummary struct {
	Chat  chat.Chat
	Items []MessageItem
}

// ConversationsSummary is the per-day view over all channels and chats.
// Channels and chats with nothing to show are dropped.
type ConversationsSummary struct {
	Channels []ChannelSummary
	Chats    []ChatSummary
}
