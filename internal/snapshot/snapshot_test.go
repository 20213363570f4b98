package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/firebase-admin-check/internal/users"
)

func samplePage() *users.Page {
	return &users.Page{
		Users: []users.Record{
			{UID: "a1", Email: "x@y.com"},
			{UID: "a2"},
			{UID: "a3", Email: "z@y.com"},
		},
		NextPageToken: "tok-3",
	}
}

func TestSaveLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "json", file: "users.json"},
		{name: "yaml", file: "users.yaml"},
		{name: "yml", file: "users.yml"},
		{name: "no extension falls back to yaml", file: "users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			snap := New("demo-project", 10, samplePage())

			require.NoError(t, Save(snap, path))

			got, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, "demo-project", got.ProjectID)
			assert.Equal(t, 10, got.PageSize)
			assert.True(t, snap.CapturedAt.Equal(got.CapturedAt))
			assert.Equal(t, samplePage(), got.Page())
		})
	}
}

func TestSaveKeepsAbsentEmailAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, Save(New("", 10, &users.Page{Users: []users.Record{{UID: "a2"}}}), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"email"`)
	assert.NotContains(t, string(data), "null")
}

func TestNewWithNilPage(t *testing.T) {
	snap := New("p", 10, nil)
	assert.NotNil(t, snap.Users)
	assert.Equal(t, 0, snap.Page().Len())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		write   bool
	}{
		{name: "missing file", file: "missing.yaml"},
		{name: "bad json", file: "bad.json", content: "{", write: true},
		{name: "bad yaml", file: "bad.yaml", content: "users: [", write: true},
		{name: "user without uid", file: "nouid.yaml", content: "users:\n  - email: x@y.com\n", write: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if tt.write {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
