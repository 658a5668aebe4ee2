package workflow

// Role identifies the actor class attempting a transition. SYSTEM covers
// transitions driven by background jobs rather than a human user.
type Role string

const (
	RoleFarmer        Role = "FARMER"
	RoleDTAMReviewer  Role = "DTAM_REVIEWER"
	RoleDTAMInspector Role = "DTAM_INSPECTOR"
	RoleDTAMAdmin     Role = "DTAM_ADMIN"
	RoleSystem        Role = "SYSTEM"
)

var validRoles = map[Role]bool{
	RoleFarmer:        true,
	RoleDTAMReviewer:  true,
	RoleDTAMInspector: true,
	RoleDTAMAdmin:     true,
	RoleSystem:        true,
}

// ParseRole converts a raw string into a Role. Unknown strings fail the
// conversion; permission checks treat them as deny.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, validRoles[role]
}

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
