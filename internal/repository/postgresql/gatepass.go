package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/gatepass"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

type gatePassRepository struct {
	db *database.DB
}

func NewGatePassRepository(db *database.DB) gatepass.PassRepository {
	return &gatePassRepository{db: db}
}

const passColumns = `
	id, employee_id, pass_code, validity, kind, status,
	expires_at, used_at, exit_time, return_time, use_count,
	created_at, updated_at
`

func scanPass(row pgx.Row) (gatepass.Pass, error) {
	var p gatepass.Pass
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PassCode, &p.Validity, &p.Kind, &p.Status,
		&p.ExpiresAt, &p.UsedAt, &p.ExitTime, &p.ReturnTime, &p.UseCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func collectPasses(rows pgx.Rows) ([]gatepass.Pass, error) {
	defer rows.Close()

	var passes []gatepass.Pass
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gate pass: %w", err)
		}
		passes = append(passes, p)
	}
	return passes, rows.Err()
}

// Create implements gatepass.PassRepository.
func (g *gatePassRepository) Create(ctx context.Context, pass gatepass.Pass) (gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		INSERT INTO gate_passes (
			id, employee_id, pass_code, validity, kind, status, expires_at, use_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, 0
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		pass.ID,
		pass.EmployeeID,
		pass.PassCode,
		pass.Validity,
		pass.Kind,
		pass.Status,
		pass.ExpiresAt,
	).Scan(&pass.CreatedAt, &pass.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return gatepass.Pass{}, gatepass.ErrCodeCollision
		}
		return gatepass.Pass{}, fmt.Errorf("failed to create gate pass: %w", err)
	}

	return pass, nil
}

// GetByID implements gatepass.PassRepository.
func (g *gatePassRepository) GetByID(ctx context.Context, id string) (gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`SELECT %s FROM gate_passes WHERE id = $1`, passColumns)

	p, err := scanPass(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gatepass.Pass{}, gatepass.ErrPassNotFound
		}
		return gatepass.Pass{}, fmt.Errorf("failed to get gate pass: %w", err)
	}

	return p, nil
}

// FindByExactCode implements gatepass.PassRepository.
func (g *gatePassRepository) FindByExactCode(ctx context.Context, code string) ([]gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`SELECT %s FROM gate_passes WHERE UPPER(pass_code) = UPPER($1)`, passColumns)

	rows, err := q.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find passes by exact code: %w", err)
	}
	return collectPasses(rows)
}

// FindByNormalizedCode implements gatepass.PassRepository.
func (g *gatePassRepository) FindByNormalizedCode(ctx context.Context, normalized string) ([]gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`
		SELECT %s FROM gate_passes
		WHERE REPLACE(REPLACE(UPPER(pass_code), '-', ''), ' ', '') = $1
	`, passColumns)

	rows, err := q.Query(ctx, query, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to find passes by normalized code: %w", err)
	}
	return collectPasses(rows)
}

// FindBySuffix implements gatepass.PassRepository.
func (g *gatePassRepository) FindBySuffix(ctx context.Context, suffix string) ([]gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`
		SELECT %s FROM gate_passes
		WHERE RIGHT(REPLACE(REPLACE(UPPER(pass_code), '-', ''), ' ', ''), 6) = $1
	`, passColumns)

	rows, err := q.Query(ctx, query, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to find passes by suffix: %w", err)
	}
	return collectPasses(rows)
}

// ListByEmployee implements gatepass.PassRepository.
func (g *gatePassRepository) ListByEmployee(ctx context.Context, employeeID string) ([]gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`
		SELECT %s FROM gate_passes
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`, passColumns)

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gate passes: %w", err)
	}
	return collectPasses(rows)
}

// ConditionalTransition implements gatepass.PassRepository. The UPDATE
// is keyed on the expected status: the compare-and-set that keeps two
// concurrent scans from both consuming a single-use pass.
func (g *gatePassRepository) ConditionalTransition(ctx context.Context, passID string, expectedStatus gatepass.Status, newStatus gatepass.Status, fields gatepass.TransitionFields) (gatepass.Pass, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`
		UPDATE gate_passes
		SET status = $1,
			used_at = COALESCE($2, used_at),
			exit_time = COALESCE($3, exit_time),
			return_time = COALESCE($4, return_time),
			use_count = use_count + $5,
			updated_at = NOW()
		WHERE id = $6
		  AND status = $7
		RETURNING %s
	`, passColumns)

	increment := 0
	if fields.IncrementUse {
		increment = 1
	}

	p, err := scanPass(q.QueryRow(ctx, query,
		newStatus,
		fields.UsedAt,
		fields.ExitTime,
		fields.ReturnTime,
		increment,
		passID,
		expectedStatus,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gatepass.Pass{}, database.ErrConflict
		}
		return gatepass.Pass{}, fmt.Errorf("failed to transition gate pass: %w", err)
	}

	return p, nil
}

// ExpireOverdue implements gatepass.PassRepository.
func (g *gatePassRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, g.db)

	tag, err := q.Exec(ctx, `
		UPDATE gate_passes
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active'
		  AND expires_at < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue passes: %w", err)
	}

	return tag.RowsAffected(), nil
}
