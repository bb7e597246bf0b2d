// Package wifi abstracts the platform capability of listing nearby
// wireless networks.
package wifi

import (
	"context"
	"errors"
)

// ErrPermissionDenied means the platform refused the scan. Retrying cannot
// succeed without user action, so callers treat it as a skip, not a failure.
var ErrPermissionDenied = errors.New("wifi: permission denied")

// ErrUnavailable means no usable wifi capability exists on this host.
var ErrUnavailable = errors.New("wifi: capability unavailable")

// Scanner enumerates nearby wireless networks.
type Scanner interface {
	// Enabled reports whether the wifi radio is switched on.
	Enabled(ctx context.Context) (bool, error)
	// VisibleNetworks returns the SSIDs currently visible, in scan order.
	// It may return ErrPermissionDenied or ErrUnavailable.
	VisibleNetworks(ctx context.Context) ([]string, error)
}
