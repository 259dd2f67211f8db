package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// page is the wire envelope every collection endpoint returns: a slice of
// items plus an optional link to the next page.
type page struct {
	Value    json.RawMessage `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

// Pager walks a paginated collection endpoint lazily, one page per Next call.
// Reset rewinds it to the first page, so a Pager is a restartable sequence of
// pages rather than a one-shot cursor.
type Pager struct {
	client *Client
	first  string
	next   string
	done   bool
}

// NewPager creates a pager positioned at the first page of url.
func (c *Client) NewPager(url string) *Pager {
	return &Pager{client: c, first: url, next: url}
}

// Reset rewinds the pager to the first page.
func (p *Pager) Reset() {
	p.next = p.first
	p.done = false
}

// Next fetches one page and returns its raw items. The second result is false
// once the sequence is exhausted.
func (p *Pager) Next(ctx context.Context) (json.RawMessage, bool, error) {
	if p.done || p.next == "" {
		return nil, false, nil
	}

	var pg page
	if err := p.client.get(ctx, p.next, &pg); err != nil {
		return nil, false, err
	}

	p.next = pg.NextLink
	if p.next == "" {
		p.done = true
	}

	return pg.Value, true, nil
}

// collect drains the pager, decoding every page into a slice of T. Fetching
// stops at the first page with no follow-up link.
func collect[T any](ctx context.Context, p *Pager) ([]T, error) {
	var all []T
	for {
		raw, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode page: %w", err)
		}
		all = append(all, items...)

		// Defensive stop: an empty page means the server has nothing more
		// even if it still advertised a next link.
		if len(items) == 0 {
			break
		}
	}
	return all, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed: unexpected status %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
