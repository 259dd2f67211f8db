package summary

import (
	"sort"
	"time"

	"github.com/workdigest/workdigest/internal/chat"
	"github.com/workdigest/workdigest/internal/workday"
)

// contextWindow is the number of messages kept after each of the user's own
// messages: the message itself plus up to three chronologically-following
// messages of reply context.
const contextWindow = 4

// ChatMessages windows a flat message list down to the user's activity on one
// day. Every message written by the user is kept together with up to three
// following messages; each run of dropped messages between or after kept
// spans collapses to a single gap marker. Messages from other days never
// appear.
func ChatMessages(day time.Time, userID string, messages []chat.Message) []MessageItem {
	var onDay []chat.Message
	for _, m := range messages {
		if workday.BelongsTo(day, m.CreatedAt) {
			onDay = append(onDay, m)
		}
	}
	sort.SliceStable(onDay, func(i, j int) bool {
		return onDay[i].CreatedAt.Before(onDay[j].CreatedAt)
	})

	// Single forward pass with a remaining-context budget. The budget is
	// reset whenever the user speaks; the first message outside a kept span
	// leaves the budget at exactly -1 and becomes the gap marker, everything
	// further inside the gap is silently dropped.
	budget := -1
	var items []MessageItem
	for _, m := range onDay {
		important := m.From != nil && m.From.ID == userID
		if important {
			budget = contextWindow
		}
		budget--

		switch {
		case budget >= 0:
			items = append(items, MessageItem{Message: m, Important: important})
		case budget == -1:
			items = append(items, MessageItem{Gap: true})
		}
	}

	return items
}

// Channel reduces a channel's threads to the day's relevant ones. A thread is
// kept when its top message was written by the user on the day, or when the
// windowed view of its replies is non-empty. Threads are returned in
// chronological order of their top message.
func Channel(day time.Time, userID string, channel chat.ChannelMessages) ChannelSummary {
	var threads []ThreadSummary

	for _, thread := range channel.Messages {
		top := thread.Message
		important := top.From != nil && top.From.ID == userID && workday.BelongsTo(day, top.CreatedAt)

		replies := ChatMessages(day, userID, thread.Replies)
		if !important && len(replies) == 0 {
			continue
		}

		threads = append(threads, ThreadSummary{
			Message:   top,
			Important: important,
			Replies:   replies,
		})
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].Message.CreatedAt.Before(threads[j].Message.CreatedAt)
	})

	return ChannelSummary{Channel: channel.Channel, Threads: threads}
}

// Chat applies the message window to a chat's flat message list.
func Chat(day time.Time, userID string, c chat.ChatMessages) ChatSummary {
	return ChatSummary{
		Chat:  c.Chat,
		Items: ChatMessages(day, userID, c.Messages),
	}
}

// Conversations summarizes every channel and chat for the day, dropping the
// ones with nothing left to show.
func Conversations(day time.Time, userID string, conv chat.Conversations) ConversationsSummary {
	var result ConversationsSummary

	for _, ch := range conv.Channels {
		if s := Channel(day, userID, ch); len(s.Threads) > 0 {
			result.Channels = append(result.Channels, s)
		}
	}
	for _, c := range conv.Chats {
		if s := Chat(day, userID, c); len(s.Items) > 0 {
			result.Chats = append(result.Chats, s)
		}
	}

	return result
}
