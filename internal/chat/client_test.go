package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFakeChatService serves a minimal Graph-style API: one team with one
// channel holding one thread, and one group chat with two messages.
func newFakeChatService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	respond := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}

	mux.HandleFunc("/teams/team-1", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"id":"team-1","displayName":"Platform"}`)
	})
	mux.HandleFunc("/teams/team-1/channels", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"value":[{"id":"chan-1","displayName":"General"}]}`)
	})
	mux.HandleFunc("/teams/team-1/channels/chan-1/messages", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"value":[
			{"id":"m1","createdDateTime":"2024-01-05T10:00:00Z",
			 "from":{"user":{"id":"u1","displayName":"Alice"}},
			 "body":{"contentType":"html","content":"<p>standup notes</p>"},
			 "mentions":[{"mentionText":"everyone"}]},
			{"id":"m2","createdDateTime":"2024-01-05T10:05:00Z",
			 "body":{"contentType":"text","content":""}}
		]}`)
	})
	mux.HandleFunc("/teams/team-1/channels/chan-1/messages/m1/replies", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"value":[
			{"id":"m1-r1","createdDateTime":"2024-01-05T10:10:00Z",
			 "from":{"user":{"id":"u2","displayName":"Bob"}},
			 "body":{"contentType":"text","content":"thanks"},
			 "reactions":[{"reactionType":"like","createdDateTime":"2024-01-05T10:11:00Z","user":{"user":{"id":"u1"}}}]}
		]}`)
	})
	mux.HandleFunc("/teams/team-1/channels/chan-1/messages/m2/replies", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"value":[]}`)
	})
	mux.HandleFunc("/chats", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"value":[
			{"id":"chat-1","chatType":"group","topic":"release",
			 "members":[{"id":"u1","displayName":"Alice"},{"id":"u2","displayName":"Bob"}]}
		]}`)
	})
	mux.HandleFunc("/chats/chat-1/messages", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"value":[
			{"id":"c1","createdDateTime":"2024-01-05T09:00:00Z",
			 "from":{"user":{"id":"u2","displayName":"Bob"}},
			 "body":{"contentType":"text","content":"shipping today?"}},
			{"id":"c2","createdDateTime":"2024-01-05T09:01:00Z",
			 "body":{"contentType":"text","content":"pipeline green"}}
		]}`)
	})

	return httptest.NewServer(mux)
}

func TestFetchConversations(t *testing.T) {
	srv := newFakeChatService(t)
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	conv, err := client.FetchConversations(context.Background(), []string{"team-1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(conv.Channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(conv.Channels))
	}
	ch := conv.Channels[0]
	if ch.Channel.Team.Name != "Platform" || ch.Channel.Name != "General" {
		t.Errorf("Expected channel General of team Platform, got %q / %q", ch.Channel.Team.Name, ch.Channel.Name)
	}

	// The empty-body message m2 must have been skipped.
	if len(ch.Messages) != 1 {
		t.Fatalf("Expected 1 thread after skipping the empty-body message, got %d", len(ch.Messages))
	}

	thread := ch.Messages[0]
	if thread.Message.From == nil || thread.Message.From.ID != "u1" {
		t.Errorf("Expected thread author u1, got %+v", thread.Message.From)
	}
	if thread.Message.Body.ContentType != ContentHTML {
		t.Errorf("Expected html body tag, got %q", thread.Message.Body.ContentType)
	}
	if len(thread.Message.Mentions) != 1 || thread.Message.Mentions[0].Text != "everyone" {
		t.Errorf("Expected one unresolved mention %q, got %+v", "everyone", thread.Message.Mentions)
	}
	if len(thread.Replies) != 1 {
		t.Fatalf("Expected 1 reply, got %d", len(thread.Replies))
	}
	if len(thread.Replies[0].Reactions) != 1 || thread.Replies[0].Reactions[0].UserID != "u1" {
		t.Errorf("Expected one reaction by u1 on the reply, got %+v", thread.Replies[0].Reactions)
	}

	if len(conv.Chats) != 1 {
		t.Fatalf("Expected 1 chat, got %d", len(conv.Chats))
	}
	chat := conv.Chats[0]
	if chat.Chat.Topic != "release" || len(chat.Chat.Members) != 2 {
		t.Errorf("Expected group chat with topic release and 2 members, got %+v", chat.Chat)
	}
	if len(chat.Messages) != 2 {
		t.Fatalf("Expected 2 chat messages, got %d", len(chat.Messages))
	}
	// c2 is bot-generated: no author.
	if chat.Messages[1].From != nil {
		t.Errorf("Expected bot message to have no author, got %+v", chat.Messages[1].From)
	}
}
