package user

type Role string

const (
	RoleAdmin Role = "ADMIN" // Manages staff, geofences, schedules and payroll
	RoleUser  Role = "USER"  // Worker submitting attendance
)

// Identity is the verified caller handed to the engine by the auth boundary.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin checks if the caller has administrative access
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
