// Package credential loads service-account credential files.
//
// The file format is owned by Google; this package only reads it once,
// hands it to golang.org/x/oauth2/google for parsing, and classifies
// failures as CredentialNotFound or CredentialReadError.
package credential

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/common-fate/clio"
	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"

	"github.com/blackwell-systems/firebase-admin-check/internal/apperr"
)

// Scopes requested for the Firebase Admin APIs.
var Scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/devstorage.full_control",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Credential is a parsed credential file. It is not modified after Load.
type Credential struct {
	Path        string
	Type        string
	ProjectID   string
	ClientEmail string

	json   []byte
	google *google.Credentials
}

// descriptor holds the fields we display; everything else stays opaque.
type descriptor struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

// Load reads and parses the credential file at path.
func Load(ctx context.Context, path string) (*Credential, error) {
	const op = "credential.Load"

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.New(apperr.CredentialNotFound, op, err).WithPath(path)
		}
		return nil, apperr.New(apperr.CredentialReadError, op, err).WithPath(path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.New(apperr.CredentialReadError, op, err).WithPath(path)
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.CredentialReadError, op, errors.New("credential file is empty")).WithPath(path)
	}

	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, apperr.New(apperr.CredentialReadError, op, errors.Wrap(err, "failed to parse credential JSON")).WithPath(path)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, apperr.New(apperr.CredentialReadError, op, errors.Wrap(err, "failed to build credentials")).WithPath(path)
	}

	projectID := d.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}

	clio.Debugw("loaded credential", "path", path, "type", d.Type, "project", projectID)

	return &Credential{
		Path:        path,
		Type:        d.Type,
		ProjectID:   projectID,
		ClientEmail: d.ClientEmail,
		json:        data,
		google:      creds,
	}, nil
}

// Google returns the parsed credentials for use with client options.
func (c *Credential) Google() *google.Credentials {
	return c.google
}

// JSON returns the raw credential file contents.
func (c *Credential) JSON() []byte {
	return c.json
}
