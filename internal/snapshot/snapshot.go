// Package snapshot saves a listed user page to disk and reads it back.
//
// Supports both YAML (.yaml, .yml) and JSON (.json) snapshot files; the
// format is chosen by file extension.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/firebase-admin-check/internal/users"
)

// Snapshot is the file structure
type Snapshot struct {
	ProjectID  string         `yaml:"projectId,omitempty" json:"projectId,omitempty"`
	CapturedAt time.Time      `yaml:"capturedAt" json:"capturedAt"`
	PageSize   int            `yaml:"pageSize" json:"pageSize"`
	Users      []users.Record `yaml:"users" json:"users"`

	// NextPageToken resumes listing after this page.
	NextPageToken string `yaml:"nextPageToken,omitempty" json:"nextPageToken,omitempty"`
}

// New captures page as a Snapshot.
func New(projectID string, pageSize int, page *users.Page) *Snapshot {
	s := &Snapshot{
		ProjectID:  projectID,
		CapturedAt: time.Now().UTC(),
		PageSize:   pageSize,
		Users:      []users.Record{},
	}
	if page != nil {
		s.Users = append(s.Users, page.Users...)
		s.NextPageToken = page.NextPageToken
	}
	return s
}

// Page returns the snapshot contents as a users.Page.
func (s *Snapshot) Page() *users.Page {
	return &users.Page{Users: s.Users, NextPageToken: s.NextPageToken}
}

// Load loads and parses a snapshot file (supports .yaml, .yml, and .json)
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap Snapshot

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot YAML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot (unknown extension %s, tried YAML): %w", ext, err)
		}
	}

	for i, u := range snap.Users {
		if u.UID == "" {
			return nil, fmt.Errorf("snapshot user %d has no uid", i)
		}
	}

	return &snap, nil
}

// Save saves a snapshot to file (format determined by file extension)
func Save(snap *Snapshot, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		data, err = json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot JSON: %w", err)
		}
	default:
		data, err = yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot YAML: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
