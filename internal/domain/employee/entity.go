package employee

import "time"

type Role string

const (
	RoleWorker Role = "worker"
	RoleHR     Role = "hr"
)

// Employee entity
type Employee struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	JoiningDate  time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
