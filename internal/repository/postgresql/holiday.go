package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) policy.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements policy.HolidayRepository. holiday_date carries a
// unique index so the same date cannot be registered twice.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h policy.Holiday) (policy.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, holiday_date, holiday_name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	h.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, h.ID, h.Date, h.Name).Scan(&h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return policy.Holiday{}, policy.ErrHolidayExists
		}
		return policy.Holiday{}, err
	}
	return h, nil
}

// List implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]policy.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, holiday_name, created_at
		FROM holidays
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]policy.Holiday, 0)
	for rows.Next() {
		var h policy.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// ExistsOnDate implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays WHERE holiday_date = $1
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM holidays
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return policy.ErrHolidayNotFound
	}
	return nil
}
