package session

import (
	"errors"
	"fmt"

	"contactpsi/internal/domain"
)

var (
	// ErrUnauthorized is returned when the caller's key is not the one the
	// session expects for the operation.
	ErrUnauthorized = errors.New("caller is not a party to this session")
	// ErrInvalidKey is returned for an unset party key.
	ErrInvalidKey = errors.New("invalid party key")
	// ErrComputationFault matches every *FaultError.
	ErrComputationFault = errors.New("computation fault")
	// ErrTimeout is the cause of a fault when the cluster did not answer in
	// time.
	ErrTimeout = errors.New("timed out waiting for the cluster")
	// ErrOutputMismatch is the cause of a fault when a signed output does not
	// belong to the job that was submitted.
	ErrOutputMismatch = errors.New("output does not match job")
)

// FaultError reports a session step abandoned because the cluster failed
// it, did not answer, or produced an output that did not verify.
type FaultError struct {
	Op        domain.Op
	SessionID domain.SessionID
	Err       error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("computation fault in %s for session %s: %v", e.Op, e.SessionID, e.Err)
}

// Unwrap lets errors.Is match both ErrComputationFault and the cause.
func (e *FaultError) Unwrap() []error { return []error{ErrComputationFault, e.Err} }
