package auth

import "context"

// AuthService verifies credentials and issues access tokens. The rest
// of the application trusts the employee_id and role claims carried by
// the token; no other component performs credential checks.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
