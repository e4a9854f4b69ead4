package constants

import "fmt"

// Role yang dikenal sistem
const (
	RoleAdmin   = "admin"
	RoleKetua   = "ketua"
	RolePembina = "pembina"
	RoleMember  = "member"
)

// Template pesan error role
const (
	ErrOnlyAdministrativeCanAccess = "❌ Hanya admin, ketua, atau pembina yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess         = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdministrative(feature string) string {
	return fmt.Sprintf(ErrOnlyAdministrativeCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleKetua,
		RolePembina,
		RoleMember,
	}

	// Role tingkat pengurus ("core"): boleh mengelola member, sesi, notulensi, piket
	AdministrativeRoles = []string{
		RoleAdmin,
		RoleKetua,
		RolePembina,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// Capability adalah aksi yang bisa digerbangi per role. Satu tabel terpusat
// supaya tidak ada pengecekan string role yang tercecer di tiap handler.
type Capability string

const (
	CapManageMembers     Capability = "manage_members"
	CapManageSessions    Capability = "manage_sessions"
	CapManageNotulensi   Capability = "manage_notulensi"
	CapManagePiket       Capability = "manage_piket"
	CapViewReminderLogs  Capability = "view_reminder_logs"
	CapMarkCoreAttendance Capability = "mark_core_attendance"
	CapExportAttendance  Capability = "export_attendance"
	CapTestReminder      Capability = "test_reminder"
)

var roleCapabilities = map[string]map[Capability]bool{
	RoleAdmin: {
		CapManageMembers:      true,
		CapManageSessions:     true,
		CapManageNotulensi:    true,
		CapManagePiket:        true,
		CapViewReminderLogs:   true,
		CapMarkCoreAttendance: true,
		CapExportAttendance:   true,
		CapTestReminder:       true,
	},
	RoleKetua: {
		CapManageMembers:      true,
		CapManageSessions:     true,
		CapManageNotulensi:    true,
		CapManagePiket:        true,
		CapViewReminderLogs:   true,
		CapMarkCoreAttendance: true,
		CapExportAttendance:   true,
	},
	RolePembina: {
		CapManageMembers:      true,
		CapManageSessions:     true,
		CapManageNotulensi:    true,
		CapManagePiket:        true,
		CapViewReminderLogs:   true,
		CapMarkCoreAttendance: true,
		CapExportAttendance:   true,
	},
	RoleMember: {},
}

// HasCapability mengecek tabel kapabilitas. Role tak dikenal = tanpa akses.
func HasCapability(role string, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// IsAdministrative: role tingkat pengurus (admin/ketua/pembina).
func IsAdministrative(role string) bool {
	for _, r := range AdministrativeRoles {
		if role == r {
			return true
		}
	}
	return false
}

// IsCoreUser: user "inti" — boleh tercatat di absensi core.
// Definisinya sama dengan role pengurus.
func IsCoreUser(role string) bool {
	return IsAdministrative(role)
}

// ValidRole memastikan role termasuk yang dikenal sistem.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}
