// Package apperr defines the failure kinds reported by fbadmin.
//
// Every failure that reaches the top of a command is an *Error tagged with
// one Kind. The cause is wrapped with a stack trace so Report can print the
// trace alongside the kind-specific message.
package apperr

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Kind enumerates the recognized failure categories.
type Kind int

const (
	UnclassifiedError Kind = iota
	CredentialNotFound
	CredentialReadError
	AuthServiceError
)

func (k Kind) String() string {
	switch k {
	case CredentialNotFound:
		return "CredentialNotFound"
	case CredentialReadError:
		return "CredentialReadError"
	case AuthServiceError:
		return "AuthServiceError"
	default:
		return "UnclassifiedError"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "credential.Load".
	Op string
	// Path is set for credential failures.
	Path string
	// Reason is a short label for service failures, e.g. "permission-denied".
	Reason string
	Err    error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New returns an *Error of the given kind. The cause gets a stack trace
// attached unless it already carries one.
func New(kind Kind, op string, err error) *Error {
	if err == nil {
		err = errors.New(kind.String())
	} else if _, ok := err.(stackTracer); !ok {
		err = errors.WithStack(err)
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// WithPath records the credential path involved in the failure.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithReason records a short service failure label.
func (e *Error) WithReason(reason string) *Error {
	e.Reason = reason
	return e
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if msg == "" {
		return e.Err.Error()
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is the message of the underlying cause.
func (e *Error) Detail() string {
	return errors.Cause(e.Err).Error()
}

// Classify returns err as an *Error, tagging unknown errors as
// UnclassifiedError. It returns nil for a nil error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(UnclassifiedError, "", err)
}

// KindOf reports the Kind of err. Errors not produced by this package are
// UnclassifiedError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnclassifiedError
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Report writes the kind-specific message for err followed by its stack trace.
func Report(w io.Writer, err error) {
	e := Classify(err)
	if e == nil {
		return
	}

	red := color.New(color.FgRed)
	switch e.Kind {
	case CredentialNotFound:
		red.Fprintf(w, "Error: service account file not found at path: %s\n", e.Path)
		fmt.Fprintln(w, "Check the path and place the file in the expected location.")
	case CredentialReadError:
		red.Fprintln(w, "Error: I/O failure while initializing the Firebase Admin SDK.")
	case AuthServiceError:
		red.Fprintln(w, "Error: Firebase Authentication operation failed.")
		fmt.Fprintf(w, "Detail: %s\n", e.Detail())
	default:
		red.Fprintf(w, "Error: unexpected runtime error: %s\n", e.Detail())
	}

	fmt.Fprintf(w, "%+v\n", e.Err)
}
