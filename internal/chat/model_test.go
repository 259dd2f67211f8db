package chat

import (
	"errors"
	"testing"
)

func TestBodyText_Plain(t *testing.T) {
	b := Body{ContentType: ContentText, Content: "hello there"}

	got, err := b.Text()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "hello there" {
		t.Errorf("Expected plain text to pass through verbatim, got %q", got)
	}
}

func TestBodyText_HTMLStripped(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "simple markup",
			content: "<div>deploy is <b>done</b></div>",
			want:    "deploy is done",
		},
		{
			name:    "nested markup with attributes",
			content: `<p>see <a href="https://example.com">the doc</a> please</p>`,
			want:    "see the doc please",
		},
		{
			name:    "no markup at all",
			content: "just text",
			want:    "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{ContentType: ContentHTML, Content: tt.content}
			got, err := b.Text()
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBodyText_UnsupportedContentType(t *testing.T) {
	b := Body{ContentType: "applesauce", Content: "???"}

	_, err := b.Text()
	if err == nil {
		t.Fatal("Expected an error for unknown content type")
	}

	var unsupported *UnsupportedContentError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedContentError, got %T: %v", err, err)
	}
	if unsupported.ContentType != "applesauce" {
		t.Errorf("Expected the offending content type in the error, got %q", unsupported.ContentType)
	}
}
