package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone_ru", IsPhoneRU))
	require.NoError(t, v.RegisterValidation("userpass", IsUserPassword))
	return v
}

func TestIsPhoneRU(t *testing.T) {
	v := newValidate(t)

	valid := []string{
		"+7 916 123-45-67",
		"89161234567",
		"8 (495) 123-45-67",
		"916 123 45 67",
	}
	for _, phone := range valid {
		assert.NoError(t, v.Var(phone, "phone_ru"), phone)
	}

	invalid := []string{
		"12345",
		"abc",
		"+1 202 555 0100",
		"+7 216 123-45-67",
	}
	for _, phone := range invalid {
		assert.Error(t, v.Var(phone, "phone_ru"), phone)
	}
}

func TestIsUserPassword(t *testing.T) {
	v := newValidate(t)

	valid := []string{"Passw0rd", "a1234567", "longEnough9"}
	for _, pw := range valid {
		assert.NoError(t, v.Var(pw, "userpass"), pw)
	}

	// under 8 chars, digits only, letters only, empty
	invalid := []string{"short1", "12345678", "abcdefgh", ""}
	for _, pw := range invalid {
		assert.Error(t, v.Var(pw, "userpass"), pw)
	}
}
