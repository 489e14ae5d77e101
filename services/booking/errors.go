package booking

import "errors"

// ErrStoreNotReady means the scheduler store did not reflect the written
// booking state on read-back, so the booking call was never issued.
var ErrStoreNotReady = errors.New("scheduler store has not observed the booking state")
