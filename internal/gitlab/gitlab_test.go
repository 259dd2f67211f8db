package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newFakeGitLab serves a minimal GitLab v4 API: project 42 with one merged
// merge request carrying a discussion, an award, and a diff.
func newFakeGitLab(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	respond := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
	// Every collection endpoint has a single page; further pages are empty.
	paged := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") > "1" {
				respond(w, `[]`)
				return
			}
			respond(w, body)
		}
	}

	mux.HandleFunc("/api/v4/projects/42/merge_requests", paged(`[{"iid":7,"title":"Add rate limiter"}]`))
	mux.HandleFunc("/api/v4/projects/42/merge_requests/7", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{
			"iid":7,"title":"Add rate limiter","state":"merged",
			"created_at":"2024-01-05T09:00:00Z",
			"author":{"username":"alice"},
			"merged_at":"2024-01-05T17:00:00Z",
			"merge_user":{"username":"alice"}
		}`)
	})
	mux.HandleFunc("/api/v4/projects/42/merge_requests/7/discussions", paged(`[
		{"id":"d1","notes":[
			{"body":"added 2 commits","system":true,"author":{"username":"alice"},"created_at":"2024-01-05T10:00:00Z"},
			{"body":"ready for review","system":false,"author":{"username":"alice"},"created_at":"2024-01-05T10:01:00Z"}
		]}
	]`))
	mux.HandleFunc("/api/v4/projects/42/merge_requests/7/award_emoji", paged(`[
		{"name":"thumbsup","user":{"username":"bob"},"created_at":"2024-01-05T11:00:00Z"}
	]`))
	mux.HandleFunc("/api/v4/projects/42/merge_requests/7/diffs", paged(`[
		{"old_path":"limiter.go","new_path":"limiter.go","new_file":true,"diff":"@@ -0,0 +1 @@"}
	]`))

	return httptest.NewServer(mux)
}

func TestFetchMergeRequests(t *testing.T) {
	srv := newFakeGitLab(t)
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("Expected no error creating client, got %v", err)
	}

	since := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mrs, err := FetchMergeRequests(context.Background(), client, "42", since)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(mrs) != 1 {
		t.Fatalf("Expected 1 merge request, got %d", len(mrs))
	}

	mr := mrs[0]
	if mr.Number != 7 || mr.Title != "Add rate limiter" {
		t.Errorf("Expected MR !7 'Add rate limiter', got !%d %q", mr.Number, mr.Title)
	}
	if mr.State != StateMerged {
		t.Errorf("Expected merged state, got %q", mr.State)
	}
	if mr.Author != "alice" || mr.MergedBy != "alice" {
		t.Errorf("Expected alice as author and merger, got %q / %q", mr.Author, mr.MergedBy)
	}
	if mr.MergedAt == nil {
		t.Error("Expected merged state to carry a merge timestamp")
	}

	if len(mr.Discussions) != 1 || len(mr.Discussions[0].Notes) != 2 {
		t.Fatalf("Expected 1 discussion with 2 notes, got %+v", mr.Discussions)
	}
	if !mr.Discussions[0].Notes[0].System || mr.Discussions[0].Notes[1].System {
		t.Errorf("Expected first note system, second human, got %+v", mr.Discussions[0].Notes)
	}

	if len(mr.Awards) != 1 || mr.Awards[0].Author != "bob" {
		t.Errorf("Expected one award by bob, got %+v", mr.Awards)
	}
	if len(mr.Changes) != 1 || !mr.Changes[0].New {
		t.Errorf("Expected one new-file change, got %+v", mr.Changes)
	}
}

func TestMapState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"opened", StateOpen},
		{"merged", StateMerged},
		{"closed", StateOther},
		{"locked", StateOther},
	}
	for _, tt := range tests {
		if got := mapState(tt.in); got != tt.want {
			t.Errorf("Expected mapState(%q) = %q, got %q", tt.in, tt.want, got)
		}
	}
}
