// Package chat fetches team conversations from a Microsoft-Graph-style REST
// API and exposes them as an immutable snapshot model. Channels keep their
// reply threading; chats are flat message lists.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the chat service REST API. It owns pagination; callers get
// fully-assembled conversation snapshots.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a chat API client.
// token: bearer token for the chat service.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// wire types mirror the service's JSON shapes before mapping to the model.

type wireUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type wireTeam struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type wireChannel struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type wireChat struct {
	ID       string     `json:"id"`
	ChatType string     `json:"chatType"`
	Topic    string     `json:"topic"`
	Members  []wireUser `json:"members"`
}

type wireMessage struct {
	ID              string    `json:"id"`
	CreatedDateTime time.Time `json:"createdDateTime"`
	Subject         string    `json:"subject"`
	From            *struct {
		User *wireUser `json:"user"`
	} `json:"from"`
	Body struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	Reactions []struct {
		ReactionType    string    `json:"reactionType"`
		CreatedDateTime time.Time `json:"createdDateTime"`
		User            struct {
			User *wireUser `json:"user"`
		} `json:"user"`
	} `json:"reactions"`
	Mentions []struct {
		MentionText string `json:"mentionText"`
		Mentioned   *struct {
			User *wireUser `json:"user"`
		} `json:"mentioned"`
	} `json:"mentions"`
}

// FetchConversations pulls every channel of the given teams, including reply
// threads, plus all chats the authenticated user is a member of.
func (c *Client) FetchConversations(ctx context.Context, teamIDs []string) (*Conversations, error) {
	conv := &Conversations{}

	for _, teamID := range teamIDs {
		channels, err := c.fetchTeamChannels(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch team %s: %w", teamID, err)
		}
		conv.Channels = append(conv.Channels, channels...)
	}

	chats, err := c.fetchChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}
	conv.Chats = chats

	return conv, nil
}

// fetchTeamChannels lists a team's channels and loads each channel's message
// threads.
func (c *Client) fetchTeamChannels(ctx context.Context, teamID string) ([]ChannelMessages, error) {
	var team wireTeam
	if err := c.get(ctx, fmt.Sprintf("%s/teams/%s", c.baseURL, url.PathEscape(teamID)), &team); err != nil {
		return nil, err
	}

	channels, err := collect[wireChannel](ctx, c.NewPager(fmt.Sprintf("%s/teams/%s/channels", c.baseURL, url.PathEscape(teamID))))
	if err != nil {
		return nil, err
	}

	result := make([]ChannelMessages, 0, len(channels))
	for _, ch := range channels {
		threads, err := c.fetchChannelThreads(ctx, teamID, ch.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch channel %s: %w", ch.DisplayName, err)
		}

		result = append(result, ChannelMessages{
			Channel: Channel{
				ID:   ch.ID,
				Name: ch.DisplayName,
				Team: Team{ID: team.ID, Name: team.DisplayName},
			},
			Messages: threads,
		})

		slog.Debug("fetched channel", "team", team.DisplayName, "channel", ch.DisplayName, "threads", len(threads))
	}

	return result, nil
}

// fetchChannelThreads loads a channel's top-level messages and their replies.
func (c *Client) fetchChannelThreads(ctx context.Context, teamID, channelID string) ([]MessageWithReplies, error) {
	base := fmt.Sprintf("%s/teams/%s/channels/%s/messages", c.baseURL, url.PathEscape(teamID), url.PathEscape(channelID))

	tops, err := collect[wireMessage](ctx, c.NewPager(base))
	if err != nil {
		return nil, err
	}

	var threads []MessageWithReplies
	for _, top := range tops {
		msg, ok := mapMessage(top)
		if !ok {
			continue
		}

		wireReplies, err := collect[wireMessage](ctx, c.NewPager(fmt.Sprintf("%s/%s/replies", base, url.PathEscape(top.ID))))
		if err != nil {
			return nil, err
		}

		var replies []Message
		for _, wr := range wireReplies {
			if reply, ok := mapMessage(wr); ok {
				replies = append(replies, reply)
			}
		}

		threads = append(threads, MessageWithReplies{Message: msg, Replies: replies})
	}

	return threads, nil
}

// fetchChats loads every chat with its members and flat message list.
func (c *Client) fetchChats(ctx context.Context) ([]ChatMessages, error) {
	chats, err := collect[wireChat](ctx, c.NewPager(c.baseURL+"/chats?$expand=members"))
	if err != nil {
		return nil, err
	}

	result := make([]ChatMessages, 0, len(chats))
	for _, wc := range chats {
		wireMsgs, err := collect[wireMessage](ctx, c.NewPager(fmt.Sprintf("%s/chats/%s/messages", c.baseURL, url.PathEscape(wc.ID))))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chat %s: %w", wc.ID, err)
		}

		msgs := make([]Message, 0, len(wireMsgs))
		for _, wm := range wireMsgs {
			if msg, ok := mapMessage(wm); ok {
				msgs = append(msgs, msg)
			}
		}

		members := make([]User, 0, len(wc.Members))
		for _, m := range wc.Members {
			members = append(members, User{ID: m.ID, DisplayName: m.DisplayName})
		}

		result = append(result, ChatMessages{
			Chat: Chat{
				ID:      wc.ID,
				Type:    wc.ChatType,
				Topic:   wc.Topic,
				Members: members,
			},
			Messages: msgs,
		})
	}

	return result, nil
}

// mapMessage converts a wire message to the snapshot model. Messages with an
// empty body are skipped with a warning: downstream summarizers require a
// well-formed body and must never see one that is absent.
func mapMessage(wm wireMessage) (Message, bool) {
	if wm.Body.Content == "" {
		slog.Warn("skipping message with empty body", "message_id", wm.ID)
		return Message{}, false
	}

	msg := Message{
		ID:        wm.ID,
		CreatedAt: wm.CreatedDateTime,
		Subject:   wm.Subject,
		Body: Body{
			ContentType: ContentType(wm.Body.ContentType),
			Content:     wm.Body.Content,
		},
	}

	if wm.From != nil && wm.From.User != nil {
		msg.From = &User{ID: wm.From.User.ID, DisplayName: wm.From.User.DisplayName}
	}

	for _, r := range wm.Reactions {
		reaction := Reaction{Type: r.ReactionType, CreatedAt: r.CreatedDateTime}
		if r.User.User != nil {
			reaction.UserID = r.User.User.ID
		}
		msg.Reactions = append(msg.Reactions, reaction)
	}

	for _, m := range wm.Mentions {
		if m.Mentioned != nil && m.Mentioned.User != nil {
			msg.Mentions = append(msg.Mentions, Mention{
				User: &User{ID: m.Mentioned.User.ID, DisplayName: m.Mentioned.User.DisplayName},
			})
		} else {
			msg.Mentions = append(msg.Mentions, Mention{Text: m.MentionText})
		}
	}

	return msg, true
}
