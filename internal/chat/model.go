package chat

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// User identifies a chat service account.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Team is a named group of channels.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Channel is a persistent, threaded conversation space within a team.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team Team   `json:"team"`
}

// Chat is a direct or group conversation. Unlike channels, chats have no
// reply threading; their messages form a flat list.
type Chat struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Topic   string `json:"topic,omitempty"`
	Members []User `json:"members"`
}

// ContentType tags the encoding of a message body.
type ContentType string

const (
	ContentText ContentType = "text"
	ContentHTML ContentType = "html"
)

// Body is a message payload tagged with its encoding.
type Body struct {
	ContentType ContentType `json:"content_type"`
	Content     string      `json:"content"`
}

// UnsupportedContentError reports a body whose content type is neither plain
// text nor HTML. Callers are expected to surface it without discarding work
// already done.
type UnsupportedContentError struct {
	ContentType ContentType
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("unsupported message content type %q", string(e.ContentType))
}

// Text returns the body as plain text. HTML bodies are stripped to their
// inner text; plain-text bodies are returned verbatim. Any other content type
// yields an UnsupportedContentError.
func (b Body) Text() (string, error) {
	switch b.ContentType {
	case ContentText:
		return b.Content, nil
	case ContentHTML:
		return stripHTML(b.Content), nil
	default:
		return "", &UnsupportedContentError{ContentType: b.ContentType}
	}
}

// stripHTML extracts the concatenated text nodes of an HTML fragment.
func stripHTML(fragment string) string {
	var b strings.Builder

	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// html.Parse only fails on reader errors; a string reader cannot
		// produce one, but fall back to the raw content anyway.
		return fragment
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return b.String()
}

// Reaction is a lightweight endorsement attached to a message.
type Reaction struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Mention references either a resolved user or, when the service could not
// resolve the target, a free-text fragment. Exactly one of the two is set.
type Mention struct {
	User *User  `json:"user,omitempty"`
	Text string `json:"text,omitempty"`
}

// Message is a single chat or channel message. A nil From means the message
// was generated by a bot or connector rather than a person.
type Message struct {
	ID        string     `json:"id"`
	From      *User      `json:"from,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Subject   string     `json:"subject,omitempty"`
	Body      Body       `json:"body"`
	Reactions []Reaction `json:"reactions,omitempty"`
	Mentions  []Mention  `json:"mentions,omitempty"`
}

// MessageWithReplies pairs a top-level channel message with its ordered reply
// thread.
type MessageWithReplies struct {
	Message Message   `json:"message"`
	Replies []Message `json:"replies,omitempty"`
}

// ChannelMessages holds a channel together with its fetched message threads.
type ChannelMessages struct {
	Channel  Channel              `json:"channel"`
	Messages []MessageWithReplies `json:"messages"`
}

// ChatMessages holds a chat together with its fetched flat message list.
type ChatMessages struct {
	Chat     Chat      `json:"chat"`
	Messages []Message `json:"messages"`
}

// Conversations is the full fetched conversation snapshot.
type Conversations struct {
	Channels []ChannelMessages `json:"channels"`
	Chats    []ChatMessages    `json:"chats"`
}
