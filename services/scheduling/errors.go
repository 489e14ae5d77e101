package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContractor means the contractor id resolves to no record.
	ErrInvalidContractor = errors.New("invalid contractor id")
	// ErrNotAcceptingWork means the contractor's work-availability flag is unset.
	ErrNotAcceptingWork = errors.New("contractor is not looking for work")
)

// IncompleteProfileError means the contractor has no scheduling configuration
// for the requested duration, independent of any other duration's state.
type IncompleteProfileError struct {
	Duration int
}

func (e IncompleteProfileError) Error() string {
	return fmt.Sprintf("contractor has not completed their profile for %d minutes", e.Duration)
}
