package domain

// Identity is the resolved caller attached to a request after
// authentication: the user, its role and its role-profile linkage.
// Ownership checks in the services run against this, never against raw
// request input.
type Identity struct {
	UserID    uint
	Email     string
	Role      Role
	StudentID *uint
	TeacherID *uint
}

// IsStudent reports whether the caller has a student profile
func (i *Identity) IsStudent() bool {
	return i.Role == RoleStudent && i.StudentID != nil
}

// OwnsStudent reports whether the caller is the student with the given id
func (i *Identity) OwnsStudent(studentID uint) bool {
	return i.StudentID != nil && *i.StudentID == studentID
}

// CanAccessStudent reports whether the caller may read data belonging to
// the given student: staff roles or the student itself.
func (i *Identity) CanAccessStudent(studentID uint) bool {
	if i.Role.In(RoleAdmin, RoleManagement, RoleTeacher, RoleLibrarian) {
		return true
	}
	return i.OwnsStudent(studentID)
}
