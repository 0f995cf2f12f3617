package models

import "errors"

// Error taxonomy shared by the scheduling engine, the stores, and the
// HTTP layer. Callers classify failures with errors.Is.
var (
	// ErrValidation marks bad caller input: a missing website scope, a
	// non-positive cadence, a backward status transition. Raised
	// synchronously, never silently defaulted.
	ErrValidation = errors.New("validation failed")

	// ErrStoreUnavailable marks a backend that is unreachable or
	// rejected the operation. Recoverable; scoped to one operation.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrConflict marks two commits racing to the same publication
	// slot. The losing caller may recompute and retry.
	ErrConflict = errors.New("scheduling conflict")
)
