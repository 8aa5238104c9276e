package booking

// ===============================
// Actor Roles
// ===============================

type ActorRole string

const (
	RolePatient      ActorRole = "patient"
	RoleDoctor       ActorRole = "doctor"
	RoleReceptionist ActorRole = "receptionist"
	RoleAdmin        ActorRole = "admin"
)

// Actor identifies who is performing an operation. Every mutation takes
// it as an explicit argument; nothing is read from request-scoped globals.
type Actor struct {
	ID   string
	Role ActorRole
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleReceptionist || a.Role == RoleAdmin
}

func IsValidRole(r ActorRole) bool {
	switch r {
	case RolePatient, RoleDoctor, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}
