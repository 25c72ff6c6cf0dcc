package gatepass

import "errors"

// Gate pass domain errors. Verification outcomes are terminal for the
// attempt.
var (
	ErrPassNotFound    = errors.New("gate pass does not exist")
	ErrPassAlreadyUsed = errors.New("gate pass has already been used")
	ErrPassExpired     = errors.New("gate pass has expired")
	ErrPassRevoked     = errors.New("gate pass has been revoked")

	// ErrCodeCollision means a freshly generated code already exists.
	// Retryable with a new code; never overwrite.
	ErrCodeCollision = errors.New("generated pass code already exists")

	// ErrReturnBeforeExit rejects recording a return with no prior exit.
	ErrReturnBeforeExit = errors.New("cannot record a return before an exit")

	ErrPassNotActive = errors.New("gate pass is not active")
)
