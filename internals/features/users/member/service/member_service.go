package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rohisku_backend/internals/constants"
	picModel "rohisku_backend/internals/features/pics/model"
	"rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
)

// Kredensial default anggota baru; pemiliknya dipaksa ganti saat login pertama.
const DefaultPassword = "rohisnew"

// countAdminsLocked menghitung admin di dalam transaksi sambil mengunci
// baris-barisnya, supaya dua demosi paralel tidak sama-sama membaca hitungan
// lama lalu meninggalkan nol admin. FOR UPDATE tidak boleh dipakai bersama
// agregat, jadi barisnya di-Pluck dulu. SQLite tidak mengenal FOR UPDATE dan
// menserialisasi penulis, jadi kunci hanya dipasang di Postgres.
func countAdminsLocked(tx *gorm.DB) (int64, error) {
	q := tx.Model(&model.UserModel{}).Where("role = ?", constants.RoleAdmin)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// HashDefaultPassword menghasilkan hash bcrypt kredensial default.
func HashDefaultPassword() (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

/* ==========================
   CREATE
========================== */

func CreateMember(db *gorm.DB, name, email, className, role string) (*model.UserModel, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Name and email are required")
	}

	hash, err := HashDefaultPassword()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := model.UserModel{
		Name:               name,
		Email:              email,
		Password:           hash,
		Role:               role,
		MustChangePassword: true,
	}
	if cn := strings.TrimSpace(className); cn != "" {
		user.ClassName = &cn
	}
	user.SetDefaultValues()

	if err := db.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "A user with that email already exists")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create member")
	}
	return &user, nil
}

/* ==========================
   BULK IMPORT
========================== */

// ImportRows memproses baris `name,email[,class][,role]`.
// Email duplikat dilaporkan per baris, batch jalan terus.
func ImportRows(db *gorm.DB, rows [][]string) (added int, errs []string) {
	hash, err := HashDefaultPassword()
	if err != nil {
		return 0, []string{"Password hashing failed"}
	}

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		email := strings.ToLower(strings.TrimSpace(row[1]))
		if name == "" || email == "" {
			continue
		}

		var className *string
		if len(row) > 2 {
			if cn := strings.TrimSpace(row[2]); cn != "" {
				className = &cn
			}
		}
		role := constants.RoleMember
		if len(row) > 3 {
			if r := strings.TrimSpace(row[3]); r != "" {
				role = r
			}
		}

		var count int64
		if err := db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
			errs = append(errs, fmt.Sprintf("User with email %s already exists", email))
			continue
		}

		user := model.UserModel{
			Name:               name,
			Email:              email,
			Password:           hash,
			Role:               role,
			ClassName:          className,
			MustChangePassword: true,
		}
		user.SetDefaultValues()
		if err := db.Create(&user).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				errs = append(errs, fmt.Sprintf("User with email %s already exists", email))
			} else {
				errs = append(errs, fmt.Sprintf("Failed to add %s", email))
			}
			continue
		}
		added++
	}
	return added, errs
}

// ParseBulkText memecah teks multi-baris `name,email[,class][,role]` jadi rows.
func ParseBulkText(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, parts)
	}
	return rows
}

/* ==========================
   DELETE (last-admin guard)
========================== */

// DeleteMember menghapus satu user. Tidak boleh hapus diri sendiri,
// dan admin terakhir tidak boleh hilang — dihitung ulang di dalam transaksi.
func DeleteMember(db *gorm.DB, actorID, userID uint) error {
	if actorID == userID {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot delete your own account")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var user model.UserModel
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load member")
		}

		if user.Role == constants.RoleAdmin {
			admins, err := countAdminsLocked(tx)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to count admins")
			}
			if admins <= 1 {
				return fiber.NewError(fiber.StatusConflict, "Cannot remove the last admin")
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete member")
		}
		return nil
	})
}

// BatchDelete menghapus beberapa user sekaligus dengan guard yang sama.
func BatchDelete(db *gorm.DB, actorID uint, ids []uint) (deleted int, failed []string, err error) {
	if len(ids) == 0 {
		return 0, nil, fiber.NewError(fiber.StatusBadRequest, "No member IDs provided")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var users []model.UserModel
		if err := tx.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load members")
		}

		removingAdmins := int64(0)
		for _, u := range users {
			if u.ID == actorID {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot delete your own account")
			}
			if u.Role == constants.RoleAdmin {
				removingAdmins++
			}
		}

		admins, err := countAdminsLocked(tx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count admins")
		}
		if admins-removingAdmins < 1 {
			return fiber.NewError(fiber.StatusConflict, "Cannot remove the last admin")
		}

		for _, u := range users {
			if err := tx.Delete(&u).Error; err != nil {
				failed = append(failed, u.Email)
				continue
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return deleted, failed, nil
}

/* ==========================
   ROLE CHANGE (last-admin guard)
========================== */

func ChangeRole(db *gorm.DB, userID uint, newRole string) (*model.UserModel, error) {
	if !constants.ValidRole(newRole) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Role is invalid")
	}

	var user model.UserModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load member")
		}

		if user.Role == constants.RoleAdmin && newRole != constants.RoleAdmin {
			admins, err := countAdminsLocked(tx)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to count admins")
			}
			if admins <= 1 {
				return fiber.NewError(fiber.StatusConflict, "Cannot remove the last admin's role")
			}
		}

		if err := tx.Model(&user).Update("role", newRole).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update role")
		}
		user.Role = newRole
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

/* ==========================
   PIC ASSIGNMENT & PERMISSION
========================== */

func AssignPic(db *gorm.DB, userID uint, picID *uint) (*model.UserModel, string, error) {
	var user model.UserModel
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to load member")
	}

	var message string
	if picID != nil {
		var pic picModel.PicModel
		if err := db.First(&pic, *picID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", fiber.NewError(fiber.StatusNotFound, "Invalid PIC")
			}
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to load PIC")
		}
		user.PicID = picID
		message = fmt.Sprintf("%s assigned to %s", user.Name, pic.Name)
	} else {
		user.PicID = nil
		message = fmt.Sprintf("PIC assignment removed from %s", user.Name)
	}

	if err := db.Model(&user).Select("pic_id").Updates(map[string]interface{}{"pic_id": user.PicID}).Error; err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to update PIC assignment")
	}
	return &user, message, nil
}

// ToggleAttendancePermission: bool eksplisit bila dikirim, selain itu flip.
func ToggleAttendancePermission(db *gorm.DB, userID uint, explicit *bool) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load member")
	}

	next := !user.CanMarkAttendance
	if explicit != nil {
		next = *explicit
	}
	if err := db.Model(&user).Update("can_mark_attendance", next).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update permission")
	}
	user.CanMarkAttendance = next
	return &user, nil
}
