package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rohisku_backend/internals/constants"
	picModel "rohisku_backend/internals/features/pics/model"
	"rohisku_backend/internals/features/users/member/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.UserModel{}, &picModel.PicModel{}))
	return db
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func seed(t *testing.T, db *gorm.DB, email, role string) *model.UserModel {
	t.Helper()
	u := model.UserModel{Email: email, Password: "x", Name: email, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestCreateMember(t *testing.T) {
	db := openTestDB(t)

	u, err := CreateMember(db, " Ani ", " ANI@Rohis.sch.id ", "XI IPA 2", "")
	require.NoError(t, err)
	assert.Equal(t, "Ani", u.Name)
	assert.Equal(t, "ani@rohis.sch.id", u.Email)
	assert.Equal(t, constants.RoleMember, u.Role)
	assert.True(t, u.MustChangePassword)
	require.NotNil(t, u.ClassName)

	// Email sama → 409
	_, err = CreateMember(db, "Ani Kedua", "ani@rohis.sch.id", "", "")
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	_, err = CreateMember(db, "", "", "", "")
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
}

func TestImportRowsSkipsDuplicates(t *testing.T) {
	db := openTestDB(t)
	seed(t, db, "ada@rohis.sch.id", constants.RoleMember)

	rows := [][]string{
		{"Ani", "ani@rohis.sch.id"},
		{"Budi", "budi@rohis.sch.id", "XI IPA 1"},
		{"Cici", "cici@rohis.sch.id", "XII IPS 2", "ketua"},
		{"Duplikat", "ada@rohis.sch.id"},
		{"Evi", "evi@rohis.sch.id"},
	}
	added, errs := ImportRows(db, rows)
	assert.Equal(t, 4, added)
	require.Len(t, errs, 1)
	assert.Equal(t, "User with email ada@rohis.sch.id already exists", errs[0])

	var cici model.UserModel
	require.NoError(t, db.Where("email = ?", "cici@rohis.sch.id").First(&cici).Error)
	assert.Equal(t, constants.RoleKetua, cici.Role)
}

func TestParseBulkText(t *testing.T) {
	rows := ParseBulkText("Ani, ani@rohis.sch.id\n\n Budi , budi@rohis.sch.id , XI IPA 1 \n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Ani", "ani@rohis.sch.id"}, rows[0])
	assert.Equal(t, []string{"Budi", "budi@rohis.sch.id", "XI IPA 1"}, rows[1])
}

func TestDeleteMemberGuards(t *testing.T) {
	db := openTestDB(t)
	admin := seed(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	member := seed(t, db, "ani@rohis.sch.id", constants.RoleMember)

	// Hapus diri sendiri → 400
	err := DeleteMember(db, admin.ID, admin.ID)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))

	// Admin terakhir → 409, jumlah user tidak berubah
	err = DeleteMember(db, member.ID, admin.ID)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	var count int64
	db.Model(&model.UserModel{}).Count(&count)
	assert.EqualValues(t, 2, count)

	require.NoError(t, DeleteMember(db, admin.ID, member.ID))
	db.Model(&model.UserModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteMemberAllowsAdminWhenAnotherRemains(t *testing.T) {
	db := openTestDB(t)
	admin1 := seed(t, db, "admin1@rohis.sch.id", constants.RoleAdmin)
	admin2 := seed(t, db, "admin2@rohis.sch.id", constants.RoleAdmin)

	require.NoError(t, DeleteMember(db, admin1.ID, admin2.ID))
}

func TestBatchDeleteLastAdminGuard(t *testing.T) {
	db := openTestDB(t)
	admin1 := seed(t, db, "admin1@rohis.sch.id", constants.RoleAdmin)
	admin2 := seed(t, db, "admin2@rohis.sch.id", constants.RoleAdmin)
	member := seed(t, db, "ani@rohis.sch.id", constants.RoleMember)

	// Menghapus semua admin sekaligus → 409, tidak ada yang terhapus
	_, _, err := BatchDelete(db, member.ID, []uint{admin1.ID, admin2.ID})
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	var count int64
	db.Model(&model.UserModel{}).Count(&count)
	assert.EqualValues(t, 3, count)

	deleted, failed, err := BatchDelete(db, admin1.ID, []uint{admin2.ID, member.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Empty(t, failed)
}

func TestChangeRoleGuards(t *testing.T) {
	db := openTestDB(t)
	admin := seed(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	member := seed(t, db, "ani@rohis.sch.id", constants.RoleMember)

	_, err := ChangeRole(db, member.ID, "bos")
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))

	// Admin terakhir turun jabatan → 409
	_, err = ChangeRole(db, admin.ID, constants.RoleMember)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	updated, err := ChangeRole(db, member.ID, constants.RoleKetua)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleKetua, updated.Role)

	// Setelah ada admin kedua, admin pertama boleh turun
	_, err = ChangeRole(db, member.ID, constants.RoleAdmin)
	require.NoError(t, err)
	_, err = ChangeRole(db, admin.ID, constants.RolePembina)
	require.NoError(t, err)
}

func TestAssignPic(t *testing.T) {
	db := openTestDB(t)
	member := seed(t, db, "ani@rohis.sch.id", constants.RoleMember)

	pic := picModel.PicModel{Name: "Dakwah"}
	require.NoError(t, db.Create(&pic).Error)

	updated, message, err := AssignPic(db, member.ID, &pic.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.PicID)
	assert.Contains(t, message, "Dakwah")

	unknown := uint(999)
	_, _, err = AssignPic(db, member.ID, &unknown)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))

	updated, message, err = AssignPic(db, member.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.PicID)
	assert.Contains(t, message, "removed")
}

func TestToggleAttendancePermission(t *testing.T) {
	db := openTestDB(t)
	member := seed(t, db, "ani@rohis.sch.id", constants.RoleMember)

	u, err := ToggleAttendancePermission(db, member.ID, nil)
	require.NoError(t, err)
	assert.True(t, u.CanMarkAttendance)

	u, err = ToggleAttendancePermission(db, member.ID, nil)
	require.NoError(t, err)
	assert.False(t, u.CanMarkAttendance)

	explicit := true
	u, err = ToggleAttendancePermission(db, member.ID, &explicit)
	require.NoError(t, err)
	assert.True(t, u.CanMarkAttendance)
}
