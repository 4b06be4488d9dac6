package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, start_date, end_date,
			start_duration, end_duration, total_days, reason, attachment_url,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	req.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.StartDuration, req.EndDuration, req.TotalDays, req.Reason, req.AttachmentURL,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
		       lr.start_duration, lr.end_duration, lr.total_days, lr.reason, lr.attachment_url,
		       lr.status, lr.approved_by, lr.approval_date, lr.created_at, lr.updated_at,
		       lt.name AS leave_type_name,
		       e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.StartDuration, &req.EndDuration, &req.TotalDays, &req.Reason, &req.AttachmentURL,
		&req.Status, &req.ApprovedBy, &req.ApprovalDate, &req.CreatedAt, &req.UpdatedAt,
		&req.LeaveTypeName, &req.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
		       lr.start_duration, lr.end_duration, lr.total_days, lr.reason, lr.attachment_url,
		       lr.status, lr.approved_by, lr.approval_date, lr.created_at, lr.updated_at,
		       lt.name AS leave_type_name,
		       e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE ($1 = '' OR lr.employee_id = $1)
		  AND ($2 = '' OR lr.status = $2)
		  AND ($3 = 0 OR EXTRACT(YEAR FROM lr.start_date) = $3)
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, filter.EmployeeID, string(filter.Status), filter.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
			&req.StartDuration, &req.EndDuration, &req.TotalDays, &req.Reason, &req.AttachmentURL,
			&req.Status, &req.ApprovedBy, &req.ApprovalDate, &req.CreatedAt, &req.UpdatedAt,
			&req.LeaveTypeName, &req.EmployeeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// TransitionStatus implements leave.LeaveRequestRepository. The WHERE
// status guard plus RowsAffected is what makes concurrent decisions on
// the same request safe: exactly one transition wins.
func (r *leaveRequestRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to leave.LeaveRequestStatus, approvedBy *string, approvalDate *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $3,
		    approved_by = COALESCE($4, approved_by),
		    approval_date = COALESCE($5, approval_date),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	commandTag, err := q.Exec(ctx, query, id, from, to, approvedBy, approvalDate)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotPending
	}
	return nil
}

// FindApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, start_date, end_date,
		       start_duration, end_duration, total_days, reason, attachment_url,
		       status, approved_by, approval_date, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $2 AND end_date >= $2
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
			&req.StartDuration, &req.EndDuration, &req.TotalDays, &req.Reason, &req.AttachmentURL,
			&req.Status, &req.ApprovedBy, &req.ApprovalDate, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// HasActiveOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3 AND end_date >= $2
			  AND id <> $4
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
