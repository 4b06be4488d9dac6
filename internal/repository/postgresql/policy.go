package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// Get implements policy.PolicyRepository. The table holds a single row
// keyed by a fixed id.
func (r *policyRepositoryImpl) Get(ctx context.Context) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT start_time, end_time, break_start_time, break_end_time,
		       grace_minutes, working_days, timezone, updated_at
		FROM attendance_policy
		WHERE id = 1
	`

	var p policy.AttendancePolicy
	var startTime, endTime, breakStart, breakEnd string
	err := q.QueryRow(ctx, query).Scan(
		&startTime, &endTime, &breakStart, &breakEnd,
		&p.GraceMinutes, &p.WorkingDays, &p.Timezone, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotConfigured
		}
		return policy.AttendancePolicy{}, err
	}

	if p.StartTime, err = policy.ParseTimeOfDay(startTime); err != nil {
		return policy.AttendancePolicy{}, err
	}
	if p.EndTime, err = policy.ParseTimeOfDay(endTime); err != nil {
		return policy.AttendancePolicy{}, err
	}
	if p.BreakStartTime, err = policy.ParseTimeOfDay(breakStart); err != nil {
		return policy.AttendancePolicy{}, err
	}
	if p.BreakEndTime, err = policy.ParseTimeOfDay(breakEnd); err != nil {
		return policy.AttendancePolicy{}, err
	}

	return p, nil
}

// Save implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Save(ctx context.Context, p policy.AttendancePolicy) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_policy (
			id, start_time, end_time, break_start_time, break_end_time,
			grace_minutes, working_days, timezone, updated_at
		) VALUES (
			1, $1, $2, $3, $4, $5, $6, $7, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_start_time = EXCLUDED.break_start_time,
			break_end_time = EXCLUDED.break_end_time,
			grace_minutes = EXCLUDED.grace_minutes,
			working_days = EXCLUDED.working_days,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		p.StartTime.String(), p.EndTime.String(),
		p.BreakStartTime.String(), p.BreakEndTime.String(),
		p.GraceMinutes, p.WorkingDays, p.Timezone,
	)
	return err
}
