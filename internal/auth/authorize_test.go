package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeRuleTable(t *testing.T) {
	self := &Principal{ID: 1, Email: "a@x.com", Role: RoleStandard}
	other := &Principal{ID: 2, Email: "b@x.com", Role: RoleStandard}
	admin := &Principal{ID: 3, Email: "admin@example.com", Role: RoleAdministrator}

	tests := []struct {
		name     string
		p        *Principal
		op       Operation
		targetID uint64
		want     error
	}{
		{"create needs no principal", nil, OpCreate, 0, nil},
		{"create with principal", self, OpCreate, 0, nil},

		{"read own", self, OpRead, 1, nil},
		{"read other denied", other, OpRead, 1, ErrNotAuthorized},
		{"read other as admin", admin, OpRead, 1, nil},
		{"read unauthenticated", nil, OpRead, 1, ErrNotAuthenticated},

		{"list any authenticated", other, OpList, 0, nil},
		{"list unauthenticated", nil, OpList, 0, ErrNotAuthenticated},

		{"update own", self, OpUpdateProfile, 1, nil},
		{"update other denied", other, OpUpdateProfile, 1, ErrNotAuthorized},
		{"update other denied even for admin", admin, OpUpdateProfile, 1, ErrNotAuthorized},

		{"change own password", self, OpChangePassword, 1, nil},
		{"change other password denied", other, OpChangePassword, 1, ErrNotAuthorized},

		{"delete own", self, OpDelete, 1, nil},
		{"delete other denied", other, OpDelete, 1, ErrNotAuthorized},
		{"delete other denied even for admin", admin, OpDelete, 1, ErrNotAuthorized},

		{"admin password reset", admin, OpAdminChangePassword, 1, nil},
		{"admin password reset by standard user", other, OpAdminChangePassword, 1, ErrNotAuthorized},
		{"admin password reset unauthenticated", nil, OpAdminChangePassword, 1, ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.p, tt.op, tt.targetID)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDenyReasonsAreDistinct(t *testing.T) {
	// "no credential" and "wrong target" must stay separate error kinds.
	assert.NotErrorIs(t, ErrNotAuthenticated, ErrNotAuthorized)
	assert.NotErrorIs(t, ErrNotAuthorized, ErrNotAuthenticated)
}
