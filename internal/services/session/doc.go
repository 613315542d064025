// Package session drives the two-party discovery protocol.
//
// The Service owns the public progress of each session and is the only
// writer of session records. Every step takes the session's lock, submits
// one job to the cluster, waits for the signed completion, verifies it and
// persists the result before releasing the lock. A step that cannot be
// verified leaves the record exactly as it was.
//
// Public status moves forward only:
//
//	awaiting_initiator -> awaiting_responder -> computing -> matched
//
// Whether a submission was accepted, and what matched, stays inside the
// sealed record and the sealed results.
package session
