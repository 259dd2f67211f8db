// Package report composes the per-day HTML activity report from summarized
// merge-request and conversation data.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/workdigest/workdigest/internal/chat"
	"github.com/workdigest/workdigest/internal/gitlab"
	"github.com/workdigest/workdigest/internal/summary"
)

// Compose builds the report document for every calendar day in [from, to],
// ascending. An inverted range yields an empty document. When a day fails to
// compose (unsupported message content), the document with all previously
// composed days is returned alongside the error.
func Compose(from, to time.Time, gitLabUser, chatUserID string, mrs []gitlab.MergeRequest, conv chat.Conversations) (*Document, error) {
	doc := &Document{From: from, To: to}

	last := dateOnly(to)
	for day := dateOnly(from); !day.After(last); day = day.AddDate(0, 0, 1) {
		section, err := composeDay(day, gitLabUser, chatUserID, mrs, conv)
		if err != nil {
			return doc, fmt.Errorf("failed to compose %s: %w", day.Format("2006-01-02"), err)
		}
		doc.Days = append(doc.Days, *section)
	}

	return doc, nil
}

// composeDay assembles one day section from both summarizers.
func composeDay(day time.Time, gitLabUser, chatUserID string, mrs []gitlab.MergeRequest, conv chat.Conversations) (*DaySection, error) {
	section := &DaySection{
		Date:    day,
		Heading: day.Format("Mon 2 (January)"),
	}

	for _, s := range summary.MergeRequests(day, gitLabUser, mrs) {
		section.MergeRequests = append(section.MergeRequests, MergeRequestRow{
			Title:    s.MergeRequest.Title,
			Commits:  s.AddedCommits,
			Comments: len(s.Comments),
			Reviewed: s.Reviewed,
			Merged:   s.Merged,
			Color:    rowColor(s),
		})
	}

	convSummary := summary.Conversations(day, chatUserID, conv)

	for _, ch := range convSummary.Channels {
		block := ConversationBlock{Heading: channelHeading(ch.Channel)}
		for _, thread := range ch.Threads {
			view, err := threadView(thread)
			if err != nil {
				return nil, fmt.Errorf("channel %q: %w", block.Heading, err)
			}
			block.Items = append(block.Items, view)
		}
		section.Conversations = append(section.Conversations, block)
	}

	for _, c := range convSummary.Chats {
		block := ConversationBlock{Heading: chatHeading(c.Chat)}
		items, err := messageViews(c.Items)
		if err != nil {
			return nil, fmt.Errorf("chat %q: %w", block.Heading, err)
		}
		block.Items = items
		section.Conversations = append(section.Conversations, block)
	}

	return section, nil
}

// rowColor picks the table row background by activity priority.
func rowColor(s summary.MergeRequestSummary) string {
	switch {
	case s.Authored && s.New:
		return colorAuthoredNew
	case s.Authored:
		return colorAuthored
	case s.AddedCommits > 0:
		return colorAddedCommits
	default:
		return colorDefault
	}
}

// channelHeading formats "<team> / <channel>".
func channelHeading(ch chat.Channel) string {
	return ch.Team.Name + " / " + ch.Name
}

// chatHeading formats the comma-joined member names plus the optional topic.
func chatHeading(c chat.Chat) string {
	names := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		names = append(names, m.DisplayName)
	}
	heading := strings.Join(names, ", ")
	if c.Topic != "" {
		heading += " (" + c.Topic + ")"
	}
	return heading
}

// threadView renders a channel thread: the top message with its windowed
// replies nested underneath.
func threadView(thread summary.ThreadSummary) (MessageView, error) {
	view, err := messageView(thread.Message, thread.Important)
	if err != nil {
		return MessageView{}, err
	}

	view.Replies, err = messageViews(thread.Replies)
	if err != nil {
		return MessageView{}, err
	}
	return view, nil
}

func messageViews(items []summary.MessageItem) ([]MessageView, error) {
	var views []MessageView
	for _, item := range items {
		if item.Gap {
			views = append(views, MessageView{Gap: true})
			continue
		}
		view, err := messageView(item.Message, item.Important)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func messageView(m chat.Message, important bool) (MessageView, error) {
	text, err := m.Body.Text()
	if err != nil {
		return MessageView{}, fmt.Errorf("message %s: %w", m.ID, err)
	}
	return MessageView{
		Important: important,
		Text:      truncate(text, maxMessageLength),
	}, nil
}

// truncate cuts s to at most max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// dateOnly strips the time of day, keeping the location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
