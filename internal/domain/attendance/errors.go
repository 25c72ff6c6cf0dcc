package attendance

import "errors"

// Attendance domain errors. Each is a definitive answer about the
// legality of the requested checkpoint; none is retried internally.
var (
	// ErrMaxActionsReached means all four checkpoints are recorded.
	// Terminal for the day.
	ErrMaxActionsReached = errors.New("all attendance actions for today are already recorded")

	// ErrDuplicateTimestamp means the candidate timestamp collides with
	// an already-recorded one. Recoverable: the kiosk should prompt a
	// re-scan.
	ErrDuplicateTimestamp = errors.New("an attendance action was already recorded at this time")

	// ErrSequenceViolation means the candidate precedes the checkpoint
	// it must follow. Indicates clock skew or tampering.
	ErrSequenceViolation = errors.New("attendance action is earlier than the previous checkpoint")

	// ErrMinimumDurationNotMet means a session or break duration floor
	// was violated. Recoverable by waiting.
	ErrMinimumDurationNotMet = errors.New("minimum duration between checkpoints not met")

	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrCheckpointNotSet is returned by the admin reset when the
	// requested checkpoint has no recorded timestamp.
	ErrCheckpointNotSet = errors.New("checkpoint has no recorded timestamp")
)
