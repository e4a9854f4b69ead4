package model

import "rohisku_backend/internals/constants"

// CanMarkAttendance memutuskan apakah actor boleh mengisi absensi reguler
// untuk sesi dengan PIC target tertentu.
// Admin dan pembina selalu boleh; selain itu hanya representatif PIC sesi
// (actor.ID == pic_id sesi). Ketua TIDAK otomatis boleh.
func CanMarkAttendance(actor *UserModel, targetPicID *uint) bool {
	if actor == nil {
		return false
	}
	if actor.Role == constants.RoleAdmin || actor.Role == constants.RolePembina {
		return true
	}
	if targetPicID != nil && actor.ID == *targetPicID {
		return true
	}
	return false
}
