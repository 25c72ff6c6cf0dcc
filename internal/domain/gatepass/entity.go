package gatepass

import (
	"time"
)

// Validity controls how long a pass lives and whether verification
// consumes it.
type Validity string

const (
	ValiditySingle Validity = "single"
	ValidityDay    Validity = "day"
	ValidityWeek   Validity = "week"
	ValidityMonth  Validity = "month"
)

// Kind is the direction a pass authorizes.
type Kind string

const (
	KindEntry Kind = "entry"
	KindExit  Kind = "exit"
	KindBoth  Kind = "both"
)

// Status transitions are monotone: active is the only state with
// outgoing transitions (to used, expired or revoked).
type Status string

const (
	StatusActive  Status = "active"
	StatusUsed    Status = "used"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// Pass is a time-limited authorization code for exiting/re-entering the
// facility outside normal flow. Passes are never physically deleted by
// normal flow, only status-transitioned.
type Pass struct {
	ID         string
	EmployeeID string
	PassCode   string
	Validity   Validity
	Kind       Kind
	Status     Status
	ExpiresAt  time.Time
	UsedAt     *time.Time
	ExitTime   *time.Time
	ReturnTime *time.Time
	UseCount   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overdue reports whether the pass has outlived its expiry, regardless
// of stored status.
func (p Pass) Overdue(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
