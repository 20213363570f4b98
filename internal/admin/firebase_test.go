package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/firebase-admin-check/internal/apperr"
	"github.com/blackwell-systems/firebase-admin-check/internal/credential"
)

// newEmulator serves the accounts:batchGet endpoint the way the Auth
// emulator does.
func newEmulator(t *testing.T, status int, body string) (host string, requests *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://"), &seen
}

func newEmulatorClient(t *testing.T, host string) *Client {
	t.Helper()
	// restored when the test ends
	t.Setenv(EmulatorHostEnv, "")

	initializer := NewInitializer(NewFirebaseSource, Options{EmulatorHost: host})
	client, err := initializer.Initialize(context.Background(), writeCredential(t))
	require.NoError(t, err)
	return client
}

func TestFirebaseSourceListsFirstPage(t *testing.T) {
	host, requests := newEmulator(t, http.StatusOK, `{
  "users": [
    {"localId": "a1", "email": "x@y.com"},
    {"localId": "a2"},
    {"localId": "a3", "email": "z@y.com"}
  ]
}`)
	client := newEmulatorClient(t, host)

	page, err := client.ListFirstPage(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, page.Users, 3)

	assert.Equal(t, "a1", page.Users[0].UID)
	assert.Equal(t, "x@y.com", page.Users[0].Email)
	assert.Equal(t, "a2", page.Users[1].UID)
	assert.Empty(t, page.Users[1].Email)
	assert.Equal(t, "a3", page.Users[2].UID)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/identitytoolkit.googleapis.com/v1/projects/demo-project/accounts:batchGet", req.URL.Path)
	assert.Equal(t, "10", req.URL.Query().Get("maxResults"))
	assert.Empty(t, req.URL.Query().Get("nextPageToken"))
}

func TestFirebaseSourcePermissionDenied(t *testing.T) {
	host, _ := newEmulator(t, http.StatusForbidden, `{
  "error": {
    "code": 403,
    "message": "INSUFFICIENT_PERMISSION",
    "status": "PERMISSION_DENIED"
  }
}`)
	client := newEmulatorClient(t, host)

	page, err := client.ListFirstPage(context.Background(), 10)
	require.Error(t, err)
	assert.Nil(t, page)

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.AuthServiceError, e.Kind)
	assert.Equal(t, ReasonPermissionDenied, e.Reason)
}

func TestToRecord(t *testing.T) {
	tests := []struct {
		name   string
		in     *auth.ExportedUserRecord
		want   string
		wantOK bool
	}{
		{
			name: "full record",
			in: &auth.ExportedUserRecord{UserRecord: &auth.UserRecord{
				UserInfo: &auth.UserInfo{UID: "u1", Email: "u1@example.com"},
			}},
			want:   "u1",
			wantOK: true,
		},
		{
			name:   "nil record",
			in:     nil,
			wantOK: false,
		},
		{
			name:   "missing user info",
			in:     &auth.ExportedUserRecord{UserRecord: &auth.UserRecord{}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := toRecord(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, r.UID)
		})
	}
}

func TestNewFirebaseSourceUsesCredential(t *testing.T) {
	t.Setenv(EmulatorHostEnv, "")

	cred, err := credential.Load(context.Background(), writeCredential(t))
	require.NoError(t, err)

	src, err := NewFirebaseSource(context.Background(), cred, Options{ProjectID: "demo-project", EmulatorHost: "localhost:9099"})
	require.NoError(t, err)
	assert.NotNil(t, src)
}

func TestNewFirebaseSourceRestoresEmulatorEnv(t *testing.T) {
	host, requests := newEmulator(t, http.StatusOK, `{"users": [{"localId": "a1"}]}`)
	t.Setenv(EmulatorHostEnv, "localhost:1")

	cred, err := credential.Load(context.Background(), writeCredential(t))
	require.NoError(t, err)

	src, err := NewFirebaseSource(context.Background(), cred, Options{ProjectID: "demo-project", EmulatorHost: host})
	require.NoError(t, err)
	assert.Equal(t, "localhost:1", os.Getenv(EmulatorHostEnv))

	// the client keeps the host it was built with
	page, err := src.ListUsers(context.Background(), 10, "")
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Len(t, *requests, 1)
}

func TestSetEmulatorHostUnsetsWhenAbsent(t *testing.T) {
	t.Setenv(EmulatorHostEnv, "")
	require.NoError(t, os.Unsetenv(EmulatorHostEnv))

	restore, err := setEmulatorHost("localhost:9099")
	require.NoError(t, err)
	assert.Equal(t, "localhost:9099", os.Getenv(EmulatorHostEnv))

	restore()
	_, ok := os.LookupEnv(EmulatorHostEnv)
	assert.False(t, ok)
}

func TestToPageSkipsIncompleteRecords(t *testing.T) {
	exported := []*auth.ExportedUserRecord{
		{UserRecord: &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "u1", Email: "u1@example.com"}}},
		nil,
		{UserRecord: &auth.UserRecord{}},
		{UserRecord: &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "u2"}}},
	}

	page := toPage(exported, "next")

	require.Len(t, page.Users, 2)
	assert.Equal(t, "u1", page.Users[0].UID)
	assert.Equal(t, "u2", page.Users[1].UID)
	assert.Equal(t, "next", page.NextPageToken)
}
