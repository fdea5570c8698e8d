package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the fixed bcrypt work factor. It is a build-time
// constant rather than configuration so callers cannot weaken it.
const PasswordCost = bcrypt.DefaultCost

// HashPassword derives a salted bcrypt hash from a plaintext password.
// The salt is generated per call and embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash verifies a plaintext password against a stored hash
// using bcrypt's constant-time comparison.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
