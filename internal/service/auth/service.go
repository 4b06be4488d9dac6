package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/auth"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
	logger       *slog.Logger
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service, logger *slog.Logger) auth.AuthService {
	return &authServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login implements auth.AuthService. Unknown email and wrong password
// collapse into the same error so the endpoint does not leak which
// accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	e, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !e.IsActive {
		return auth.LoginResponse{}, employee.ErrEmployeeInactive
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(e.ID, e.Email, e.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.logger.InfoContext(ctx, "employee logged in", "employee_id", e.ID)

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		EmployeeID:  e.ID,
		FullName:    e.FullName(),
		Role:        string(e.Role),
	}, nil
}
