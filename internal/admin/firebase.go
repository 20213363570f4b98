package admin

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/common-fate/clio"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/blackwell-systems/firebase-admin-check/internal/credential"
	"github.com/blackwell-systems/firebase-admin-check/internal/users"
)

// EmulatorHostEnv is read by the Firebase SDK when creating the Auth client.
const EmulatorHostEnv = "FIREBASE_AUTH_EMULATOR_HOST"

type firebaseSource struct {
	client *auth.Client
}

// NewFirebaseSource builds a UserSource backed by the Firebase Admin SDK.
func NewFirebaseSource(ctx context.Context, cred *credential.Credential, opts Options) (UserSource, error) {
	restore, err := setEmulatorHost(opts.EmulatorHost)
	if err != nil {
		return nil, err
	}
	defer restore()

	conf := &firebase.Config{ProjectID: opts.ProjectID}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentials(cred.Google()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create auth client")
	}

	return &firebaseSource{client: client}, nil
}

// setEmulatorHost exports host for the SDK, which reads it once when the
// Auth client is built. The returned func puts the previous value back.
func setEmulatorHost(host string) (func(), error) {
	if host == "" {
		return func() {}, nil
	}

	prev, had := os.LookupEnv(EmulatorHostEnv)
	if err := os.Setenv(EmulatorHostEnv, host); err != nil {
		return nil, errors.Wrap(err, "failed to set emulator host")
	}

	return func() {
		if had {
			os.Setenv(EmulatorHostEnv, prev)
		} else {
			os.Unsetenv(EmulatorHostEnv)
		}
	}, nil
}

func (s *firebaseSource) ListUsers(ctx context.Context, pageSize int, pageToken string) (*users.Page, error) {
	pager := iterator.NewPager(s.client.Users(ctx, pageToken), pageSize, pageToken)

	var exported []*auth.ExportedUserRecord
	next, err := pager.NextPage(&exported)
	if err != nil {
		return nil, err
	}

	return toPage(exported, next), nil
}

func toPage(exported []*auth.ExportedUserRecord, next string) *users.Page {
	page := &users.Page{
		Users:         make([]users.Record, 0, len(exported)),
		NextPageToken: next,
	}
	for i, u := range exported {
		r, ok := toRecord(u)
		if !ok {
			clio.Debugw("skipping user record without user info", "index", i)
			continue
		}
		page.Users = append(page.Users, r)
	}
	return page
}

func toRecord(u *auth.ExportedUserRecord) (users.Record, bool) {
	if u == nil || u.UserRecord == nil || u.UserInfo == nil {
		return users.Record{}, false
	}
	return users.Record{UID: u.UID, Email: u.Email}, true
}
