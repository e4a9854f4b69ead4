package dto

// MarkAttendanceRequest dipakai untuk absensi reguler maupun inti;
// attendance_type diisi oleh controller, bukan dari klien.
type MarkAttendanceRequest struct {
	SessionID uint   `json:"session_id" validate:"required"`
	UserID    uint   `json:"user_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent excused late"`
}
