package gatepass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/gatepass"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

// suffixMatchMinLength is the shortest partial input the suffix
// strategy accepts.
const suffixMatchMinLength = 6

type GatePassServiceImpl struct {
	gatepass.PassRepository
	codes *CodeService
	clk   clock.Clock
}

func NewGatePassService(passRepo gatepass.PassRepository, codes *CodeService, clk clock.Clock) gatepass.GatePassService {
	return &GatePassServiceImpl{
		PassRepository: passRepo,
		codes:          codes,
		clk:            clk,
	}
}

// Create implements gatepass.GatePassService.
func (s *GatePassServiceImpl) Create(ctx context.Context, req gatepass.CreatePassRequest) (gatepass.PassResponse, error) {
	if err := req.Validate(); err != nil {
		return gatepass.PassResponse{}, err
	}

	validity := gatepass.Validity(req.Validity)
	pass := gatepass.Pass{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		PassCode:   s.codes.GenerateCode(),
		Validity:   validity,
		Kind:       gatepass.Kind(req.Kind),
		Status:     gatepass.StatusActive,
		ExpiresAt:  s.codes.ComputeExpiry(validity),
	}

	created, err := s.PassRepository.Create(ctx, pass)
	if errors.Is(err, gatepass.ErrCodeCollision) {
		// One retry with a fresh code; double randomness makes a second
		// collision vanishingly unlikely.
		slog.Warn("Pass code collision, regenerating", "employee_id", req.EmployeeID)
		pass.PassCode = s.codes.GenerateCode()
		created, err = s.PassRepository.Create(ctx, pass)
	}
	if err != nil {
		return gatepass.PassResponse{}, fmt.Errorf("failed to create gate pass: %w", err)
	}

	slog.Info("Gate pass created", "pass_id", created.ID, "employee_id", created.EmployeeID, "validity", created.Validity)
	return mapPassToResponse(created), nil
}

// Verify implements gatepass.GatePassService.
func (s *GatePassServiceImpl) Verify(ctx context.Context, req gatepass.VerifyRequest) (gatepass.VerifyResponse, error) {
	if err := req.Validate(); err != nil {
		return gatepass.VerifyResponse{}, err
	}

	pass, err := s.match(ctx, req.Code)
	if err != nil {
		return gatepass.VerifyResponse{}, err
	}

	now := s.clk.Now()

	// Wall-clock expiry wins over the stored status: an overdue active
	// pass is rewritten to expired before any further check.
	if pass.Status == gatepass.StatusActive && pass.Overdue(now) {
		if _, err := s.PassRepository.ConditionalTransition(ctx, pass.ID, gatepass.StatusActive, gatepass.StatusExpired, gatepass.TransitionFields{}); err != nil && !errors.Is(err, database.ErrConflict) {
			return gatepass.VerifyResponse{}, fmt.Errorf("failed to expire overdue pass: %w", err)
		}
		return gatepass.VerifyResponse{}, gatepass.ErrPassExpired
	}

	switch pass.Status {
	case gatepass.StatusUsed:
		return gatepass.VerifyResponse{}, gatepass.ErrPassAlreadyUsed
	case gatepass.StatusExpired:
		return gatepass.VerifyResponse{}, gatepass.ErrPassExpired
	case gatepass.StatusRevoked:
		return gatepass.VerifyResponse{}, gatepass.ErrPassRevoked
	}

	// Verification is the only path that consumes a single-use pass;
	// the transition is conditional so two concurrent scans cannot both
	// observe active and both commit used.
	newStatus := gatepass.StatusActive
	fields := gatepass.TransitionFields{IncrementUse: true}
	if pass.Validity == gatepass.ValiditySingle {
		newStatus = gatepass.StatusUsed
		fields.UsedAt = &now
	}

	updated, err := s.PassRepository.ConditionalTransition(ctx, pass.ID, gatepass.StatusActive, newStatus, fields)
	if errors.Is(err, database.ErrConflict) {
		// Single re-fetch: report what the winning write left behind.
		return gatepass.VerifyResponse{}, s.conflictOutcome(ctx, pass.ID)
	}
	if err != nil {
		return gatepass.VerifyResponse{}, fmt.Errorf("failed to transition pass: %w", err)
	}

	slog.Info("Gate pass verified", "pass_id", updated.ID, "validity", updated.Validity, "status", updated.Status)
	resp := mapPassToResponse(updated)
	return gatepass.VerifyResponse{
		Verified: true,
		Message:  "gate pass verified",
		Pass:     &resp,
	}, nil
}

// conflictOutcome maps the status a concurrent writer committed onto
// the corresponding rejection.
func (s *GatePassServiceImpl) conflictOutcome(ctx context.Context, passID string) error {
	current, err := s.PassRepository.GetByID(ctx, passID)
	if err != nil {
		return fmt.Errorf("failed to re-fetch pass after conflict: %w", err)
	}
	switch current.Status {
	case gatepass.StatusUsed:
		return gatepass.ErrPassAlreadyUsed
	case gatepass.StatusExpired:
		return gatepass.ErrPassExpired
	case gatepass.StatusRevoked:
		return gatepass.ErrPassRevoked
	default:
		return database.ErrConflict
	}
}

// match applies the layered strategies in order until one yields a
// unique candidate.
func (s *GatePassServiceImpl) match(ctx context.Context, raw string) (gatepass.Pass, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return gatepass.Pass{}, gatepass.ErrPassNotFound
	}

	// 1. Exact, case-insensitive.
	candidates, err := s.PassRepository.FindByExactCode(ctx, input)
	if err != nil {
		return gatepass.Pass{}, fmt.Errorf("exact code lookup failed: %w", err)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	// 2. Separators and whitespace stripped from both sides.
	normalized := NormalizeCode(input)
	candidates, err = s.PassRepository.FindByNormalizedCode(ctx, normalized)
	if err != nil {
		return gatepass.Pass{}, fmt.Errorf("normalized code lookup failed: %w", err)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	// 3. Partial manual entry: last six characters.
	if len(normalized) >= suffixMatchMinLength {
		suffix := normalized[len(normalized)-suffixMatchMinLength:]
		candidates, err = s.PassRepository.FindBySuffix(ctx, suffix)
		if err != nil {
			return gatepass.Pass{}, fmt.Errorf("suffix code lookup failed: %w", err)
		}
		if len(candidates) == 1 {
			return candidates[0], nil
		}
	}

	return gatepass.Pass{}, gatepass.ErrPassNotFound
}

// NormalizeCode strips separators and whitespace and upper-cases, the
// comparable form used by the second and third match strategies.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r == '-' || r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RecordUsage implements gatepass.GatePassService.
func (s *GatePassServiceImpl) RecordUsage(ctx context.Context, passID string, req gatepass.RecordUsageRequest) (gatepass.PassResponse, error) {
	if err := req.Validate(); err != nil {
		return gatepass.PassResponse{}, err
	}

	pass, err := s.PassRepository.GetByID(ctx, passID)
	if err != nil {
		return gatepass.PassResponse{}, err
	}

	now := s.clk.Now()
	if pass.Status == gatepass.StatusActive && pass.Overdue(now) {
		if _, err := s.PassRepository.ConditionalTransition(ctx, pass.ID, gatepass.StatusActive, gatepass.StatusExpired, gatepass.TransitionFields{}); err != nil && !errors.Is(err, database.ErrConflict) {
			return gatepass.PassResponse{}, fmt.Errorf("failed to expire overdue pass: %w", err)
		}
		return gatepass.PassResponse{}, gatepass.ErrPassExpired
	}
	if pass.Status != gatepass.StatusActive {
		return gatepass.PassResponse{}, statusError(pass.Status)
	}

	fields := gatepass.TransitionFields{IncrementUse: true}
	switch req.Kind {
	case "exit":
		fields.ExitTime = &now
	case "return":
		if pass.ExitTime == nil {
			return gatepass.PassResponse{}, gatepass.ErrReturnBeforeExit
		}
		fields.ReturnTime = &now
	}

	updated, err := s.PassRepository.ConditionalTransition(ctx, pass.ID, gatepass.StatusActive, gatepass.StatusActive, fields)
	if errors.Is(err, database.ErrConflict) {
		return gatepass.PassResponse{}, s.conflictOutcome(ctx, pass.ID)
	}
	if err != nil {
		return gatepass.PassResponse{}, fmt.Errorf("failed to record usage: %w", err)
	}

	return mapPassToResponse(updated), nil
}

// Revoke implements gatepass.GatePassService.
func (s *GatePassServiceImpl) Revoke(ctx context.Context, passID string) (gatepass.PassResponse, error) {
	pass, err := s.PassRepository.GetByID(ctx, passID)
	if err != nil {
		return gatepass.PassResponse{}, err
	}
	if pass.Status != gatepass.StatusActive {
		return gatepass.PassResponse{}, statusError(pass.Status)
	}

	updated, err := s.PassRepository.ConditionalTransition(ctx, passID, gatepass.StatusActive, gatepass.StatusRevoked, gatepass.TransitionFields{})
	if errors.Is(err, database.ErrConflict) {
		return gatepass.PassResponse{}, s.conflictOutcome(ctx, passID)
	}
	if err != nil {
		return gatepass.PassResponse{}, fmt.Errorf("failed to revoke pass: %w", err)
	}

	slog.Info("Gate pass revoked", "pass_id", passID)
	return mapPassToResponse(updated), nil
}

// ListByEmployee implements gatepass.GatePassService.
func (s *GatePassServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]gatepass.PassResponse, error) {
	passes, err := s.PassRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list passes: %w", err)
	}

	now := s.clk.Now()
	responses := make([]gatepass.PassResponse, 0, len(passes))
	for _, p := range passes {
		// Display-level lazy correction; the batch sweep repairs storage.
		if p.Status == gatepass.StatusActive && p.Overdue(now) {
			p.Status = gatepass.StatusExpired
		}
		responses = append(responses, mapPassToResponse(p))
	}
	return responses, nil
}

func statusError(status gatepass.Status) error {
	switch status {
	case gatepass.StatusUsed:
		return gatepass.ErrPassAlreadyUsed
	case gatepass.StatusExpired:
		return gatepass.ErrPassExpired
	case gatepass.StatusRevoked:
		return gatepass.ErrPassRevoked
	default:
		return gatepass.ErrPassNotActive
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func mapPassToResponse(p gatepass.Pass) gatepass.PassResponse {
	return gatepass.PassResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		PassCode:   p.PassCode,
		Validity:   string(p.Validity),
		Kind:       string(p.Kind),
		Status:     string(p.Status),
		ExpiresAt:  p.ExpiresAt.Format(time.RFC3339),
		UsedAt:     timePtrToString(p.UsedAt),
		ExitTime:   timePtrToString(p.ExitTime),
		ReturnTime: timePtrToString(p.ReturnTime),
		UseCount:   p.UseCount,
	}
}
