// Package snapshot persists the fetched activity data as a local JSON file,
// so reports can be re-rendered without touching the remote APIs.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/workdigest/workdigest/internal/chat"
	"github.com/workdigest/workdigest/internal/gitlab"
)

// Snapshot is one fetch run's worth of raw activity data.
type Snapshot struct {
	FetchedAt     time.Time             `json:"fetched_at"`
	MergeRequests []gitlab.MergeRequest `json:"merge_requests"`
	Conversations chat.Conversations    `json:"conversations"`
}

// Save writes the snapshot to path, replacing any previous snapshot.
func Save(path string, snap *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot previously written by Save.
func Load(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	var snap Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
