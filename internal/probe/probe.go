// Package probe runs the user listing check end to end: initialize the
// admin client, list one page of users, print them, and report any failure.
//
// Run never returns an error. Every failure is classified, written to the
// error stream, and recorded on the Result; the closing banner is always
// printed.
package probe

import (
	"context"
	"fmt"
	"io"

	"github.com/common-fate/clio"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/blackwell-systems/firebase-admin-check/internal/admin"
	"github.com/blackwell-systems/firebase-admin-check/internal/apperr"
	"github.com/blackwell-systems/firebase-admin-check/internal/snapshot"
	"github.com/blackwell-systems/firebase-admin-check/internal/users"
)

// Banners framing every run, whatever its outcome.
const (
	StartBanner = "--- Firebase Admin SDK user listing started ---"
	EndBanner   = "--- Firebase Admin SDK user listing finished ---"

	// DefaultPageSize is used when Options.PageSize is zero.
	DefaultPageSize = 10
)

// State tracks how far a run got.
type State int

const (
	Uninitialized State = iota
	Initialized
	Done
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Done:
		return "done"
	default:
		return "uninitialized"
	}
}

// Options control a single run.
type Options struct {
	CredentialsFile string
	PageSize        int
	// PageToken starts listing at a continuation cursor instead of the first page.
	PageToken string
	Format    users.Format
	// ExportPath, when set, receives a snapshot of the listed page.
	ExportPath string
}

// Result is the outcome of Run.
type Result struct {
	// State is Done after every run; Reached is the last state before that.
	State   State
	Reached State
	Page    *users.Page
	Err     *apperr.Error
}

// Tool lists users through an Initializer and prints them.
type Tool struct {
	initializer *admin.Initializer
	stdout      io.Writer
	stderr      io.Writer
}

// New returns a Tool writing results to stdout and failures to stderr.
func New(initializer *admin.Initializer, stdout, stderr io.Writer) *Tool {
	return &Tool{initializer: initializer, stdout: stdout, stderr: stderr}
}

// Run executes the listing. It always prints both banners.
func (t *Tool) Run(ctx context.Context, opts Options) (res *Result) {
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}

	// json and yaml keep stdout machine readable
	progress := t.stdout
	if opts.Format == users.FormatJSON || opts.Format == users.FormatYAML {
		progress = t.stderr
	}

	cyan := color.New(color.FgCyan)
	cyan.Fprintln(progress, StartBanner)

	res = &Result{State: Uninitialized}

	defer func() {
		if r := recover(); r != nil {
			res.Err = apperr.New(apperr.UnclassifiedError, "probe.Run", errors.Errorf("panic: %v", r))
			apperr.Report(t.stderr, res.Err)
		}
		res.Reached = res.State
		res.State = Done
		cyan.Fprintln(progress, EndBanner)
	}()

	if err := t.run(ctx, opts, progress, res); err != nil {
		res.Err = apperr.Classify(err)
		clio.Debugw("user listing failed", "kind", res.Err.Kind.String(), "state", res.State.String())
		apperr.Report(t.stderr, res.Err)
	}

	return res
}

// Abort reports err, which stopped a run before it could start, between the
// two banners. The Result ends Done without having left Uninitialized.
func Abort(stdout, stderr io.Writer, op string, err error) *Result {
	cyan := color.New(color.FgCyan)
	cyan.Fprintln(stdout, StartBanner)

	res := &Result{
		State:   Done,
		Reached: Uninitialized,
		Err:     apperr.New(apperr.UnclassifiedError, op, err),
	}
	apperr.Report(stderr, res.Err)

	cyan.Fprintln(stdout, EndBanner)
	return res
}

func (t *Tool) run(ctx context.Context, opts Options, progress io.Writer, res *Result) error {
	client, err := t.initializer.Initialize(ctx, opts.CredentialsFile)
	if err != nil {
		return err
	}
	res.State = Initialized

	color.New(color.FgGreen).Fprintln(progress, "Firebase Admin SDK initialized.")
	fmt.Fprintf(progress, "--- Fetching up to %d users ---\n", opts.PageSize)

	page, err := client.ListPage(ctx, opts.PageSize, opts.PageToken)
	if err != nil {
		return err
	}
	res.Page = page

	if err := users.Write(t.stdout, page, opts.Format); err != nil {
		return apperr.New(apperr.UnclassifiedError, "users.Write", err)
	}
	fmt.Fprintf(progress, "--- Listed %d users ---\n", page.Len())

	if page.NextPageToken != "" {
		clio.Debugw("more users available", "nextPageToken", page.NextPageToken)
	}

	if opts.ExportPath != "" {
		snap := snapshot.New(client.ProjectID(), opts.PageSize, page)
		if err := snapshot.Save(snap, opts.ExportPath); err != nil {
			return apperr.New(apperr.UnclassifiedError, "snapshot.Save", err)
		}
		fmt.Fprintf(progress, "Snapshot written to %s\n", opts.ExportPath)
	}

	return nil
}
