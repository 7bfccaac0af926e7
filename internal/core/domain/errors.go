package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown backend or policy.
	ErrUnsupportedType = errors.New("unsupported type")

	// Condition source errors. None of these is shown to the end user;
	// the affected slot simply stays false.

	// ErrSourceUnavailable indicates a sensor or battery reading is absent.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrPermissionDenied indicates directory access was refused.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMalformedSample indicates a source produced NaN or otherwise invalid data.
	ErrMalformedSample = errors.New("malformed sample")

	// Session errors.

	// ErrGateClosed indicates login was attempted while a condition is unmet.
	ErrGateClosed = errors.New("gate closed")

	// ErrSessionFinished indicates the session already reached the success state.
	ErrSessionFinished = errors.New("session finished")

	// ErrSessionNotStarted indicates an operation needs Start first.
	ErrSessionNotStarted = errors.New("session not started")
)
