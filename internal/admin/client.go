// Package admin owns the authenticated session with the Auth service.
//
// An Initializer creates at most one Client. Callers pass the returned
// *Client explicitly to whatever needs it; there is no package-level
// client state.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/common-fate/clio"
	"github.com/pkg/errors"

	"github.com/blackwell-systems/firebase-admin-check/internal/apperr"
	"github.com/blackwell-systems/firebase-admin-check/internal/credential"
	"github.com/blackwell-systems/firebase-admin-check/internal/users"
)

// MaxPageSize is the largest page the Auth service returns.
const MaxPageSize = 1000

// UserSource lists one page of users.
type UserSource interface {
	ListUsers(ctx context.Context, pageSize int, pageToken string) (*users.Page, error)
}

// Options configure the client built from a credential.
type Options struct {
	// ProjectID overrides the project named in the credential.
	ProjectID string
	// EmulatorHost points the SDK at a local Auth emulator (host:port).
	EmulatorHost string
}

// Factory builds a UserSource from a loaded credential.
type Factory func(ctx context.Context, cred *credential.Credential, opts Options) (UserSource, error)

// Client is an initialized session.
type Client struct {
	source UserSource
	cred   *credential.Credential
	opts   Options
}

// ProjectID returns the project the client talks to.
func (c *Client) ProjectID() string {
	return c.opts.ProjectID
}

// Credential returns the credential the client was built from.
func (c *Client) Credential() *credential.Credential {
	return c.cred
}

// ListFirstPage requests the first page of at most pageSize users.
func (c *Client) ListFirstPage(ctx context.Context, pageSize int) (*users.Page, error) {
	return c.ListPage(ctx, pageSize, "")
}

// ListPage requests the page starting at pageToken. The result never holds
// more than pageSize records.
func (c *Client) ListPage(ctx context.Context, pageSize int, pageToken string) (*users.Page, error) {
	const op = "admin.ListPage"

	if c == nil || c.source == nil {
		return nil, apperr.New(apperr.UnclassifiedError, op, errors.New("client is not initialized"))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, apperr.New(apperr.AuthServiceError, op,
			errors.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, pageSize)).
			WithReason(ReasonInvalidArgument)
	}

	clio.Debugw("listing users", "project", c.opts.ProjectID, "pageSize", pageSize, "pageToken", pageToken)

	page, err := c.source.ListUsers(ctx, pageSize, pageToken)
	if err != nil {
		return nil, apperr.New(apperr.AuthServiceError, op, err).WithReason(Reason(err))
	}
	if page == nil {
		page = &users.Page{}
	}
	if len(page.Users) > pageSize {
		clio.Debugw("source returned more users than requested", "requested", pageSize, "returned", len(page.Users))
		page.Users = page.Users[:pageSize]
	}

	return page, nil
}

// Initializer creates the Client on first use and returns the same Client
// on every later call.
type Initializer struct {
	mu      sync.Mutex
	factory Factory
	opts    Options
	client  *Client
}

// NewInitializer returns an Initializer that builds sources with factory.
func NewInitializer(factory Factory, opts Options) *Initializer {
	return &Initializer{factory: factory, opts: opts}
}

// Initialize loads the credential at credentialPath and builds the Client.
// The credential is read on every call; only the first successful call
// builds a Client, later calls return that same Client.
// A failed call leaves the Initializer as it was.
func (i *Initializer) Initialize(ctx context.Context, credentialPath string) (*Client, error) {
	const op = "admin.Initialize"

	i.mu.Lock()
	defer i.mu.Unlock()

	cred, err := credential.Load(ctx, credentialPath)
	if err != nil {
		return nil, err
	}

	opts := i.opts
	if opts.ProjectID == "" {
		opts.ProjectID = cred.ProjectID
	}

	if i.client != nil {
		clio.Debug("admin client already initialized, reusing it")
		return i.client, nil
	}

	src, err := i.factory(ctx, cred, opts)
	if err != nil {
		if apperr.KindOf(err) != apperr.UnclassifiedError {
			return nil, err
		}
		return nil, apperr.New(apperr.UnclassifiedError, op, fmt.Errorf("failed to create admin client: %w", err))
	}

	i.client = &Client{source: src, cred: cred, opts: opts}
	clio.Debugw("admin client initialized", "project", opts.ProjectID, "emulator", opts.EmulatorHost)

	return i.client, nil
}

// Client returns the initialized Client, or nil.
func (i *Initializer) Client() *Client {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.client
}

// Initialized reports whether a Client exists.
func (i *Initializer) Initialized() bool {
	return i.Client() != nil
}
