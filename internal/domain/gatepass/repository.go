package gatepass

import (
	"context"
	"time"
)

// TransitionFields are the columns written alongside a status
// transition.
type TransitionFields struct {
	UsedAt       *time.Time
	ExitTime     *time.Time
	ReturnTime   *time.Time
	IncrementUse bool
}

// PassRepository defines data access for gate passes. The three match
// strategies are pushed down as indexed lookups rather than a full
// table fetch per scan.
type PassRepository interface {
	// Create inserts a new pass. A duplicate code surfaces as
	// ErrCodeCollision so the caller can regenerate, never overwrite.
	Create(ctx context.Context, pass Pass) (Pass, error)

	GetByID(ctx context.Context, id string) (Pass, error)

	// FindByExactCode matches the stored code case-insensitively.
	FindByExactCode(ctx context.Context, code string) ([]Pass, error)

	// FindByNormalizedCode matches with separators and whitespace
	// stripped from both sides.
	FindByNormalizedCode(ctx context.Context, normalized string) ([]Pass, error)

	// FindBySuffix matches any stored code whose last six characters
	// equal the input's last six.
	FindBySuffix(ctx context.Context, suffix string) ([]Pass, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Pass, error)

	// ConditionalTransition moves a pass from expectedStatus to
	// newStatus and writes fields, in one conditional update. Returns
	// database.ErrConflict when the pass is no longer in expectedStatus.
	ConditionalTransition(ctx context.Context, passID string, expectedStatus Status, newStatus Status, fields TransitionFields) (Pass, error)

	// ExpireOverdue flips every active pass whose expiry has elapsed to
	// expired. Batch half of the lazy+batch expiry correction.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
