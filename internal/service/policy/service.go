package policy

import (
	"context"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/validator"
)

type policyServiceImpl struct {
	policyRepo   policy.PolicyRepository
	holidayRepo  policy.HolidayRepository
	auditService audit.AuditService
}

func NewPolicyService(
	policyRepo policy.PolicyRepository,
	holidayRepo policy.HolidayRepository,
	auditService audit.AuditService,
) policy.PolicyService {
	return &policyServiceImpl{
		policyRepo:   policyRepo,
		holidayRepo:  holidayRepo,
		auditService: auditService,
	}
}

// Get implements policy.PolicyService.
func (s *policyServiceImpl) Get(ctx context.Context) (policy.AttendancePolicy, error) {
	return s.policyRepo.Get(ctx)
}

// Update implements policy.PolicyService.
func (s *policyServiceImpl) Update(ctx context.Context, actorID string, req policy.UpdatePolicyRequest) (policy.AttendancePolicy, error) {
	if err := req.Validate(); err != nil {
		return policy.AttendancePolicy{}, err
	}

	p, err := req.ToPolicy()
	if err != nil {
		return policy.AttendancePolicy{}, err
	}
	if err := s.policyRepo.Save(ctx, p); err != nil {
		return policy.AttendancePolicy{}, err
	}

	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    actorID,
		Action:     audit.ActionPolicyUpdated,
		EntityType: "attendance_policy",
		EntityID:   "1",
		Detail: map[string]any{
			"start_time":    p.StartTime.String(),
			"end_time":      p.EndTime.String(),
			"grace_minutes": p.GraceMinutes,
			"timezone":      p.Timezone,
		},
	})

	return s.policyRepo.Get(ctx)
}

// CreateHoliday implements policy.PolicyService.
func (s *policyServiceImpl) CreateHoliday(ctx context.Context, actorID string, req policy.CreateHolidayRequest) (policy.Holiday, error) {
	if err := req.Validate(); err != nil {
		return policy.Holiday{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	h, err := s.holidayRepo.Create(ctx, policy.Holiday{
		Date: date,
		Name: req.Name,
	})
	if err != nil {
		return policy.Holiday{}, err
	}

	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    actorID,
		Action:     audit.ActionHolidayCreated,
		EntityType: "holiday",
		EntityID:   h.ID,
		Detail: map[string]any{
			"holiday_date": req.Date,
			"holiday_name": req.Name,
		},
	})

	return h, nil
}

// ListHolidays implements policy.PolicyService.
func (s *policyServiceImpl) ListHolidays(ctx context.Context) ([]policy.Holiday, error) {
	return s.holidayRepo.List(ctx)
}

// DeleteHoliday implements policy.PolicyService.
func (s *policyServiceImpl) DeleteHoliday(ctx context.Context, actorID, id string) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    actorID,
		Action:     audit.ActionHolidayDeleted,
		EntityType: "holiday",
		EntityID:   id,
	})

	return nil
}
