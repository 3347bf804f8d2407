package user

import "time"

type Role string

const (
	RoleBoss     Role = "boss"     // Workplace owner - manages staff, schedules, payroll
	RoleEmployee Role = "employee" // Part-time worker
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBoss checks if the user can manage workplaces
func (u *User) IsBoss() bool {
	return u.Role == RoleBoss
}
