package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type timeRecordRepositoryImpl struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) attendance.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

// Create implements attendance.TimeRecordRepository. The unique index
// on (employee_id, work_date) is the arbiter when two check-ins race;
// the loser surfaces as ErrAlreadyCheckedIn.
func (r *timeRecordRepositoryImpl) Create(ctx context.Context, rec attendance.TimeRecord) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_records (
			id, employee_id, work_date, check_in_time, is_late,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	rec.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.WorkDate, rec.CheckInTime, rec.IsLate,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.TimeRecord{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.TimeRecord{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_date, check_in_time, check_out_time, is_late,
		       created_at, updated_at
		FROM time_records
		WHERE employee_id = $1 AND work_date = $2
	`

	var rec attendance.TimeRecord
	err := q.QueryRow(ctx, query, employeeID, workDate).Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInTime, &rec.CheckOutTime, &rec.IsLate,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.TimeRecord{}, err
	}
	return rec, nil
}

// SetCheckOut implements attendance.TimeRecordRepository. The NULL
// guard makes a second check-out lose instead of overwriting the first.
func (r *timeRecordRepositoryImpl) SetCheckOut(ctx context.Context, id string, checkOut time.Time) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_records
		SET check_out_time = $2, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING id, employee_id, work_date, check_in_time, check_out_time, is_late,
		          created_at, updated_at
	`

	var rec attendance.TimeRecord
	err := q.QueryRow(ctx, query, id, checkOut).Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInTime, &rec.CheckOutTime, &rec.IsLate,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeRecord{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.TimeRecord{}, err
	}
	return rec, nil
}

// List implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tr.id, tr.employee_id, tr.work_date, tr.check_in_time, tr.check_out_time, tr.is_late,
		       tr.created_at, tr.updated_at,
		       e.first_name || ' ' || e.last_name AS employee_name
		FROM time_records tr
		JOIN employees e ON tr.employee_id = e.id
		WHERE ($1 = '' OR tr.employee_id = $1)
		  AND ($2::date IS NULL OR tr.work_date >= $2)
		  AND ($3::date IS NULL OR tr.work_date <= $3)
		ORDER BY tr.work_date DESC, e.first_name
	`

	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.TimeRecord, 0)
	for rows.Next() {
		var rec attendance.TimeRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInTime, &rec.CheckOutTime, &rec.IsLate,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// LateSummary implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) LateSummary(ctx context.Context, start, end time.Time, minLateCount int) ([]attendance.LateSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tr.employee_id,
		       e.first_name || ' ' || e.last_name AS employee_name,
		       COUNT(*) AS late_count
		FROM time_records tr
		JOIN employees e ON tr.employee_id = e.id
		WHERE tr.is_late = TRUE
		  AND tr.work_date BETWEEN $1 AND $2
		GROUP BY tr.employee_id, employee_name
		HAVING COUNT(*) >= $3
		ORDER BY late_count DESC, employee_name
	`

	rows, err := q.Query(ctx, query, start, end, minLateCount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make([]attendance.LateSummaryRow, 0)
	for rows.Next() {
		var row attendance.LateSummaryRow
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.LateCount); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}

	return summary, rows.Err()
}
