package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, directories, and the lock
// manager return these (optionally wrapped) so services can translate them
// into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store or directory
// - ErrConflict: concurrent modification or duplicate append
// - ErrExpired: prescription or batch past its validity window
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: collaborator temporarily unavailable or timed out
// - ErrLockTimeout: per-key administration lock not acquired within the wait bound
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrLockTimeout  = errors.New("lock timeout")
)
