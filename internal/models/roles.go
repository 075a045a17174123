package models

const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleHod       = "hod"
	RolePrincipal = "principal"
	RoleAdmin     = "admin"
)

var staffRoles = map[string]struct{}{
	RoleTeacher:   {},
	RoleHod:       {},
	RolePrincipal: {},
	RoleAdmin:     {},
}

func IsValidStaffRole(role string) bool {
	_, ok := staffRoles[role]
	return ok
}
