// Package config loads the tool configuration from a JSON file. Secrets are
// deliberately not part of the file; they come from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the tool configuration.
type Config struct {
	GitLab    GitLabConfig    `json:"gitlab"`
	Chat      ChatConfig      `json:"chat"`
	Narrative NarrativeConfig `json:"narrative"`

	// SnapshotPath is where fetched data is stored between runs.
	SnapshotPath string `json:"snapshot_path"`

	// ReportPath is where the rendered HTML report is written.
	ReportPath string `json:"report_path"`
}

// GitLabConfig identifies the code-hosting account to report on.
type GitLabConfig struct {
	// BaseURL of the GitLab instance; empty means gitlab.com.
	BaseURL string `json:"base_url,omitempty"`

	// Projects to scan, by numeric ID or full path.
	Projects []string `json:"projects"`

	// UserName whose activity is summarized.
	UserName string `json:"user_name"`
}

// ChatConfig identifies the chat-service account to report on.
type ChatConfig struct {
	BaseURL string `json:"base_url"`

	// UserID whose messages count as important.
	UserID string `json:"user_id"`

	// Teams whose channels are fetched.
	Teams []string `json:"teams"`
}

// NarrativeConfig controls the optional LLM digest.
type NarrativeConfig struct {
	Model     string `json:"model,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.GitLab.UserName == "" {
		return nil, fmt.Errorf("config %s: gitlab.user_name is required", path)
	}
	if cfg.Chat.UserID == "" {
		return nil, fmt.Errorf("config %s: chat.user_id is required", path)
	}

	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "snapshot.json"
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = "report.html"
	}

	return &cfg, nil
}
