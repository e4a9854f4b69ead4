package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rohisku_backend/internals/constants"
)

func TestCanMarkAttendance(t *testing.T) {
	picID := uint(7)

	admin := &UserModel{ID: 1, Role: constants.RoleAdmin}
	pembina := &UserModel{ID: 2, Role: constants.RolePembina}
	ketua := &UserModel{ID: 3, Role: constants.RoleKetua}
	representative := &UserModel{ID: 7, Role: constants.RoleMember}
	member := &UserModel{ID: 4, Role: constants.RoleMember}

	assert.True(t, CanMarkAttendance(admin, &picID))
	assert.True(t, CanMarkAttendance(admin, nil))
	assert.True(t, CanMarkAttendance(pembina, &picID))

	// Ketua tidak otomatis boleh; harus representatif PIC sesi
	assert.False(t, CanMarkAttendance(ketua, &picID))

	assert.True(t, CanMarkAttendance(representative, &picID))
	assert.False(t, CanMarkAttendance(representative, nil))
	assert.False(t, CanMarkAttendance(member, &picID))
	assert.False(t, CanMarkAttendance(nil, &picID))
}

func TestSetDefaultValues(t *testing.T) {
	u := &UserModel{Role: "nonsense"}
	u.SetDefaultValues()
	assert.Equal(t, constants.RoleMember, u.Role)

	u = &UserModel{Role: constants.RoleKetua}
	u.SetDefaultValues()
	assert.Equal(t, constants.RoleKetua, u.Role)
}
