package auth

import "errors"

var (
	// ErrNotAuthenticated: no valid credential was presented at all.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrNotAuthorized: the credential is valid but the operation is
	// forbidden for this target. Never conflated with the error above.
	ErrNotAuthorized = errors.New("operation not permitted")
)

// Operation names a gated action on a user record.
type Operation string

const (
	OpCreate              Operation = "create"
	OpRead                Operation = "read"
	OpList                Operation = "list"
	OpUpdateProfile       Operation = "update_profile"
	OpChangePassword      Operation = "change_password"
	OpDelete              Operation = "delete"
	OpAdminChangePassword Operation = "admin_change_password"
)

// Authorize applies the access rule table. First match wins:
//
//	create                -> always, no principal needed
//	read                  -> self or administrator
//	list                  -> any authenticated principal (unscoped)
//	update_profile        -> self only
//	change_password       -> self only (possession of the current
//	                         password is already proven by Authenticate)
//	delete                -> self only, administrators get no override
//	admin_change_password -> administrator only
func Authorize(p *Principal, op Operation, targetID uint64) error {
	if op == OpCreate {
		return nil
	}
	if p == nil {
		return ErrNotAuthenticated
	}

	switch op {
	case OpRead:
		if p.ID == targetID || p.IsAdmin() {
			return nil
		}
	case OpList:
		return nil
	case OpUpdateProfile, OpChangePassword, OpDelete:
		if p.ID == targetID {
			return nil
		}
	case OpAdminChangePassword:
		if p.IsAdmin() {
			return nil
		}
	}
	return ErrNotAuthorized
}
