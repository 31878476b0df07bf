package domain

// Capability is an access level required by an operation.
type Capability int

const (
	CapabilityAuthenticated Capability = iota
	CapabilityStaff
	CapabilityAdmin
)

// Allows reports whether role grants capability. Admin implies staff, and
// staff implies authenticated.
func Allows(role Role, capability Capability) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleStaff:
		return capability <= CapabilityStaff
	}
	return false
}
