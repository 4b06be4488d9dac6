package leave

import (
	"context"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
)

type leaveTypeServiceImpl struct {
	typeRepo leave.LeaveTypeRepository
}

func NewLeaveTypeService(typeRepo leave.LeaveTypeRepository) leave.LeaveTypeService {
	return &leaveTypeServiceImpl{typeRepo: typeRepo}
}

// Create implements leave.LeaveTypeService.
func (s *leaveTypeServiceImpl) Create(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}
	return s.typeRepo.Create(ctx, leave.LeaveType{
		Name:   req.Name,
		IsPaid: *req.IsPaid,
	})
}

// Update implements leave.LeaveTypeService.
func (s *leaveTypeServiceImpl) Update(ctx context.Context, id string, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	lt, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveType{}, err
	}
	if req.Name != "" {
		lt.Name = req.Name
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}

	return s.typeRepo.Update(ctx, lt)
}

// Delete implements leave.LeaveTypeService.
func (s *leaveTypeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.typeRepo.Delete(ctx, id)
}

// List implements leave.LeaveTypeService.
func (s *leaveTypeServiceImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	return s.typeRepo.List(ctx)
}
