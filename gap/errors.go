package gap

import "errors"

// Sentinel errors for the kinds of failure spec.md §7 distinguishes as
// "surfaced to the caller" rather than recovered node-locally.
var (
	ErrInstanceInvalid = errors.New("gap: instance invalid")
	ErrBackendFailure  = errors.New("gap: lp/mip backend failure")
)
