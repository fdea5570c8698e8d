package auth

// Role is resolved once, at authentication time. There is no role table:
// the single configured administrator email decides who is privileged.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// Principal is the authenticated identity attached to a request.
// It carries no session state; every request builds a fresh one from
// the presented Basic credentials.
type Principal struct {
	ID    uint64
	Email string
	Role  Role
}

// IsAdmin reports whether the principal holds the administrator role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdministrator
}
