// file: internals/helpers/db.go
package helper

import "strings"

// IsUniqueViolation: deteksi pelanggaran unique constraint dari pesan error
// driver. Postgres memakai "duplicate key value violates unique constraint",
// SQLite "UNIQUE constraint failed".
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}
