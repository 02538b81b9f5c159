// internal/app/workflow/errors.go
package workflow

import "errors"

// Sentinel errors for the adoption/publication workflow. Call sites wrap
// these with fmt.Errorf("%w: detail") so handlers can classify with
// errors.Is while still surfacing a specific message.
var (
	// ErrValidation means the caller's input is self-contradictory or
	// missing a required field. Not retryable; the caller must fix input.
	ErrValidation = errors.New("invalid request")

	// ErrNotAMember means the user holds no membership in the club or
	// node the operation targets.
	ErrNotAMember = errors.New("you are not a member of this club or node")

	// ErrNotFound means a referenced content item, club, or node does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the user is a member but their role or the
	// item's ownership does not permit the operation.
	ErrUnauthorized = errors.New("you are not authorized to perform this action")

	// ErrTransaction means the atomic adopt operation failed to commit.
	// Safe to retry whole: nothing was persisted.
	ErrTransaction = errors.New("transaction failed")

	// ErrUpstream means a dependent service (file storage) failed. The
	// underlying cause is logged, never shown to the caller.
	ErrUpstream = errors.New("upstream service failed")
)
