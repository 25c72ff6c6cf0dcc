package roster

import "errors"

var (
	ErrRosterNotFound = errors.New("no roster assigned to this employee")
)
