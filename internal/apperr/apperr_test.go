package apperr

import (
	"bytes"
	"fmt"
	"io/fs"
	"testing"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "plain error is unclassified",
			err:  fmt.Errorf("boom"),
			want: UnclassifiedError,
		},
		{
			name: "direct error",
			err:  New(CredentialNotFound, "credential.Load", fs.ErrNotExist),
			want: CredentialNotFound,
		},
		{
			name: "wrapped error keeps its kind",
			err:  fmt.Errorf("outer: %w", New(AuthServiceError, "admin.ListFirstPage", fmt.Errorf("denied"))),
			want: AuthServiceError,
		},
		{
			name: "pkg/errors wrap keeps its kind",
			err:  errors.Wrap(New(CredentialReadError, "credential.Load", fmt.Errorf("bad json")), "init"),
			want: CredentialReadError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	err := New(CredentialNotFound, "credential.Load", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, Is(err, CredentialNotFound))
	assert.False(t, Is(nil, CredentialNotFound))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	e := Classify(fmt.Errorf("unexpected"))
	require.NotNil(t, e)
	assert.Equal(t, UnclassifiedError, e.Kind)
	assert.Equal(t, "unexpected", e.Detail())

	orig := New(AuthServiceError, "op", fmt.Errorf("x"))
	assert.Same(t, orig, Classify(orig))
}

func TestErrorString(t *testing.T) {
	err := New(CredentialNotFound, "credential.Load", fs.ErrNotExist).WithPath("key.json")
	assert.Equal(t, "credential.Load key.json: file does not exist", err.Error())

	err = New(AuthServiceError, "admin.ListFirstPage", fmt.Errorf("denied")).WithReason("permission-denied")
	assert.Equal(t, "admin.ListFirstPage (permission-denied): denied", err.Error())
}

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name: "credential not found",
			err:  New(CredentialNotFound, "credential.Load", fs.ErrNotExist).WithPath("missing.json"),
			contains: []string{
				"Error: service account file not found at path: missing.json",
				"Check the path",
			},
		},
		{
			name:     "credential read error",
			err:      New(CredentialReadError, "credential.Load", fmt.Errorf("unexpected end of JSON input")),
			contains: []string{"Error: I/O failure while initializing the Firebase Admin SDK."},
		},
		{
			name: "auth service error",
			err:  New(AuthServiceError, "admin.ListFirstPage", fmt.Errorf("caller does not have permission")),
			contains: []string{
				"Error: Firebase Authentication operation failed.",
				"Detail: caller does not have permission",
			},
		},
		{
			name:     "unclassified",
			err:      fmt.Errorf("nil map"),
			contains: []string{"Error: unexpected runtime error: nil map"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Report(&buf, tt.err)
			out := buf.String()
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			// stack trace frames from this test file
			assert.Contains(t, out, "apperr_test.go")
		})
	}
}

func TestReportNil(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, nil)
	assert.Empty(t, buf.String())
}
