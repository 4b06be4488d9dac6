package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/auth"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
)

// identityFromRequest extracts the authenticated employee and role from
// the verified JWT claims.
func identityFromRequest(r *http.Request) (string, employee.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", auth.ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	return employeeID, employee.Role(role), nil
}
