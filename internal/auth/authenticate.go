package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"usermgmt/model"
	"usermgmt/utils"
)

// ErrInvalidCredentials covers both "no such email" and "wrong password".
// The two cases must stay indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserFinder is the single store operation authentication needs.
// *dao.UserDAO satisfies it.
type UserFinder interface {
	FindByEmail(email string) (*model.User, error)
}

// dummyHash is compared against when the email is unknown, so a miss
// costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("usermgmt.dummy.credential"), utils.PasswordCost)

// Authenticator verifies presented credentials against the user store
// and resolves the role flag from the configured administrator email.
type Authenticator struct {
	users      UserFinder
	adminEmail string
}

func NewAuthenticator(users UserFinder, adminEmail string) *Authenticator {
	return &Authenticator{users: users, adminEmail: adminEmail}
}

// Authenticate looks the user up by email and verifies the password.
// Both failure paths return ErrInvalidCredentials and run a bcrypt
// comparison, keeping the failure constant-shape.
func (a *Authenticator) Authenticate(email, password string) (*Principal, error) {
	user, err := a.users.FindByEmail(email)
	if err != nil || user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	role := RoleStandard
	if a.adminEmail != "" && user.Email == a.adminEmail {
		role = RoleAdministrator
	}
	return &Principal{ID: user.ID, Email: user.Email, Role: role}, nil
}
