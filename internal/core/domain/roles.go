package domain

// Role is the closed set of account roles. Roles travel inside JWT claims
// and on the users table as their string value.
type Role string

const (
	RoleStudent         Role = "STUDENT"
	RoleTeacher         Role = "TEACHER"
	RoleAdmin           Role = "ADMIN"
	RoleLibrarian       Role = "LIBRARIAN"
	RoleManagement      Role = "MANAGEMENT"
	RoleClubCoordinator Role = "CLUB_COORDINATOR"
)

// ParseRole returns the Role for a string value, or false if unknown.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleLibrarian, RoleManagement, RoleClubCoordinator:
		return Role(s), true
	}
	return "", false
}

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}

// In reports whether r is one of the given roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
