package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

// Create implements leave.LeaveQuotaRepository. The unique index on
// (employee_id, leave_type_id, year) rejects duplicate assignments.
func (r *leaveQuotaRepositoryImpl) Create(ctx context.Context, quota leave.LeaveQuota) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_quotas (
			id, employee_id, leave_type_id, year, total_days, used_days,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	quota.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		quota.ID, quota.EmployeeID, quota.LeaveTypeID, quota.Year,
		quota.TotalDays, quota.UsedDays,
	).Scan(&quota.CreatedAt, &quota.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.LeaveQuota{}, leave.ErrQuotaExists
		}
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

// GetByID implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days,
		       created_at, updated_at
		FROM leave_quotas
		WHERE id = $1
	`

	var quota leave.LeaveQuota
	err := q.QueryRow(ctx, query, id).Scan(
		&quota.ID, &quota.EmployeeID, &quota.LeaveTypeID, &quota.Year,
		&quota.TotalDays, &quota.UsedDays,
		&quota.CreatedAt, &quota.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveQuota{}, leave.ErrQuotaNotFound
		}
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

// Get implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) Get(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	return r.get(ctx, employeeID, leaveTypeID, year, false)
}

// GetForUpdate implements leave.LeaveQuotaRepository. Inside a
// transaction the row stays locked until commit, serializing racing
// approvals on the same quota.
func (r *leaveQuotaRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	return r.get(ctx, employeeID, leaveTypeID, year, true)
}

func (r *leaveQuotaRepositoryImpl) get(ctx context.Context, employeeID, leaveTypeID string, year int, forUpdate bool) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days,
		       created_at, updated_at
		FROM leave_quotas
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var quota leave.LeaveQuota
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&quota.ID, &quota.EmployeeID, &quota.LeaveTypeID, &quota.Year,
		&quota.TotalDays, &quota.UsedDays,
		&quota.CreatedAt, &quota.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveQuota{}, leave.ErrNoQuotaAssigned
		}
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

// ListByEmployee implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lq.id, lq.employee_id, lq.leave_type_id, lq.year,
		       lq.total_days, lq.used_days, lq.created_at, lq.updated_at,
		       lt.name AS leave_type_name
		FROM leave_quotas lq
		JOIN leave_types lt ON lq.leave_type_id = lt.id
		WHERE lq.employee_id = $1 AND lq.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotas := make([]leave.LeaveQuota, 0)
	for rows.Next() {
		var quota leave.LeaveQuota
		if err := rows.Scan(
			&quota.ID, &quota.EmployeeID, &quota.LeaveTypeID, &quota.Year,
			&quota.TotalDays, &quota.UsedDays, &quota.CreatedAt, &quota.UpdatedAt,
			&quota.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		quotas = append(quotas, quota)
	}

	return quotas, rows.Err()
}

// List implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) List(ctx context.Context, year int) ([]leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lq.id, lq.employee_id, lq.leave_type_id, lq.year,
		       lq.total_days, lq.used_days, lq.created_at, lq.updated_at,
		       lt.name AS leave_type_name,
		       e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_quotas lq
		JOIN leave_types lt ON lq.leave_type_id = lt.id
		JOIN employees e ON lq.employee_id = e.id
		WHERE lq.year = $1
		ORDER BY employee_name, lt.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotas := make([]leave.LeaveQuota, 0)
	for rows.Next() {
		var quota leave.LeaveQuota
		if err := rows.Scan(
			&quota.ID, &quota.EmployeeID, &quota.LeaveTypeID, &quota.Year,
			&quota.TotalDays, &quota.UsedDays, &quota.CreatedAt, &quota.UpdatedAt,
			&quota.LeaveTypeName, &quota.EmployeeName,
		); err != nil {
			return nil, err
		}
		quotas = append(quotas, quota)
	}

	return quotas, rows.Err()
}

// UpdateTotalDays implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) UpdateTotalDays(ctx context.Context, id string, totalDays decimal.Decimal) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET total_days = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, employee_id, leave_type_id, year, total_days, used_days,
		          created_at, updated_at
	`

	var quota leave.LeaveQuota
	err := q.QueryRow(ctx, query, id, totalDays).Scan(
		&quota.ID, &quota.EmployeeID, &quota.LeaveTypeID, &quota.Year,
		&quota.TotalDays, &quota.UsedDays,
		&quota.CreatedAt, &quota.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveQuota{}, leave.ErrQuotaNotFound
		}
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

// UpdateUsedDays implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) UpdateUsedDays(ctx context.Context, id string, usedDays decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET used_days = $2, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id, usedDays)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrQuotaNotFound
	}
	return nil
}

// Delete implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_quotas
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrQuotaNotFound
	}
	return nil
}
