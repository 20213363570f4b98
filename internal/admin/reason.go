package admin

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"github.com/pkg/errors"
)

// Reason labels for service failures.
const (
	ReasonPermissionDenied = "permission-denied"
	ReasonUnauthenticated  = "unauthenticated"
	ReasonConfigNotFound   = "configuration-not-found"
	ReasonTenantNotFound   = "tenant-not-found"
	ReasonNotFound         = "not-found"
	ReasonUnavailable      = "unavailable"
	ReasonQuotaExceeded    = "quota-exceeded"
	ReasonInvalidArgument  = "invalid-argument"
	ReasonDeadline         = "deadline-exceeded"
	ReasonCancelled        = "cancelled"
	ReasonUnknown          = "unknown"
)

// Reason maps an SDK error to a short label.
func Reason(err error) string {
	switch {
	case errors.Is(err, context.Canceled) || errorutils.IsCancelled(err):
		return ReasonCancelled
	case errors.Is(err, context.DeadlineExceeded) || errorutils.IsDeadlineExceeded(err):
		return ReasonDeadline
	case errorutils.IsPermissionDenied(err):
		return ReasonPermissionDenied
	case errorutils.IsUnauthenticated(err):
		return ReasonUnauthenticated
	case auth.IsConfigurationNotFound(err):
		return ReasonConfigNotFound
	case auth.IsTenantNotFound(err):
		return ReasonTenantNotFound
	case errorutils.IsNotFound(err):
		return ReasonNotFound
	case errorutils.IsUnavailable(err):
		return ReasonUnavailable
	case errorutils.IsResourceExhausted(err):
		return ReasonQuotaExceeded
	case errorutils.IsInvalidArgument(err):
		return ReasonInvalidArgument
	default:
		return ReasonUnknown
	}
}
