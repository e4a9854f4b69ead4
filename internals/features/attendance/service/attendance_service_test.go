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
	"rohisku_backend/internals/features/attendance/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
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

	require.NoError(t, db.AutoMigrate(
		&memberModel.UserModel{},
		&sessionModel.SessionModel{},
		&model.AttendanceModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *memberModel.UserModel {
	t.Helper()
	u := memberModel.UserModel{Email: email, Password: "x", Name: email, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedSession(t *testing.T, db *gorm.DB, name string, locked bool, picID *uint) *sessionModel.SessionModel {
	t.Helper()
	s := sessionModel.SessionModel{Name: name, Date: "2026-03-10", SessionType: sessionModel.SessionTypeAll, IsLocked: locked, PicID: picID}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestMarkRecordsAttendance(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	target := seedUser(t, db, "ani@rohis.sch.id", constants.RoleMember)
	session := seedSession(t, db, "Kajian Jumat", false, nil)

	att, err := Mark(db, admin, session.ID, target.ID, model.StatusPresent, model.TypeRegular)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPresent, att.Status)
	assert.Equal(t, model.TypeRegular, att.AttendanceType)
	assert.False(t, att.Timestamp.IsZero())
}

func TestMarkDuplicateIsConflict(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	target := seedUser(t, db, "budi@rohis.sch.id", constants.RoleMember)
	session := seedSession(t, db, "Kajian Jumat", false, nil)

	_, err := Mark(db, admin, session.ID, target.ID, model.StatusPresent, model.TypeRegular)
	require.NoError(t, err)

	_, err = Mark(db, admin, session.ID, target.ID, model.StatusAbsent, model.TypeRegular)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	var count int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMarkRegularAndCoreAreSeparate(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	target := seedUser(t, db, "ketua@rohis.sch.id", constants.RoleKetua)
	session := seedSession(t, db, "Rapat Inti", false, nil)

	_, err := Mark(db, admin, session.ID, target.ID, model.StatusPresent, model.TypeRegular)
	require.NoError(t, err)
	_, err = Mark(db, admin, session.ID, target.ID, model.StatusPresent, model.TypeCore)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestMarkLockedSessionForbiddenForEveryone(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	target := seedUser(t, db, "cici@rohis.sch.id", constants.RoleMember)
	session := seedSession(t, db, "Kajian Terkunci", true, nil)

	_, err := Mark(db, admin, session.ID, target.ID, model.StatusPresent, model.TypeRegular)
	assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))

	var count int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestMarkSessionNotFound(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	target := seedUser(t, db, "dodi@rohis.sch.id", constants.RoleMember)

	_, err := Mark(db, admin, 999, target.ID, model.StatusPresent, model.TypeRegular)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestMarkInvalidInput(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	target := seedUser(t, db, "evi@rohis.sch.id", constants.RoleMember)
	session := seedSession(t, db, "Kajian", false, nil)

	_, err := Mark(db, admin, session.ID, target.ID, "vanished", model.TypeRegular)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))

	_, err = Mark(db, admin, session.ID, target.ID, model.StatusPresent, "weird")
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))

	_, err = Mark(db, admin, 0, target.ID, model.StatusPresent, model.TypeRegular)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
}

func TestMarkRegularPolicy(t *testing.T) {
	db := openTestDB(t)
	ketua := seedUser(t, db, "ketua@rohis.sch.id", constants.RoleKetua)
	member := seedUser(t, db, "member@rohis.sch.id", constants.RoleMember)
	target := seedUser(t, db, "fafa@rohis.sch.id", constants.RoleMember)

	picID := member.ID
	session := seedSession(t, db, "Mentoring", false, &picID)

	// Ketua bukan representatif PIC sesi → ditolak
	_, err := Mark(db, ketua, session.ID, target.ID, model.StatusPresent, model.TypeRegular)
	assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))

	// Representatif PIC sesi boleh walau role member
	_, err = Mark(db, member, session.ID, target.ID, model.StatusPresent, model.TypeRegular)
	require.NoError(t, err)
}

func TestMarkCoreRequiresCoreUsers(t *testing.T) {
	db := openTestDB(t)
	pembina := seedUser(t, db, "pembina@rohis.sch.id", constants.RolePembina)
	member := seedUser(t, db, "gani@rohis.sch.id", constants.RoleMember)
	ketua := seedUser(t, db, "ketua@rohis.sch.id", constants.RoleKetua)
	session := seedSession(t, db, "Rapat Inti", false, nil)

	// Target bukan pengurus inti → 400
	_, err := Mark(db, pembina, session.ID, member.ID, model.StatusPresent, model.TypeCore)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))

	// Actor bukan pengurus inti → 403
	_, err = Mark(db, member, session.ID, ketua.ID, model.StatusPresent, model.TypeCore)
	assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))

	_, err = Mark(db, pembina, session.ID, ketua.ID, model.StatusPresent, model.TypeCore)
	require.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	records := []model.AttendanceModel{
		{Status: model.StatusPresent},
		{Status: model.StatusPresent},
		{Status: model.StatusAbsent},
		{Status: model.StatusExcused},
		{Status: model.StatusLate},
	}
	s := Summarize(records)
	assert.Equal(t, Summary{Present: 2, Absent: 1, Excused: 1, Late: 1, Total: 5}, s)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestHistoryFiltersByUser(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@rohis.sch.id", constants.RoleAdmin)
	a := seedUser(t, db, "a@rohis.sch.id", constants.RoleMember)
	b := seedUser(t, db, "b@rohis.sch.id", constants.RoleMember)
	session := seedSession(t, db, "Kajian", false, nil)

	_, err := Mark(db, admin, session.ID, a.ID, model.StatusPresent, model.TypeRegular)
	require.NoError(t, err)
	_, err = Mark(db, admin, session.ID, b.ID, model.StatusAbsent, model.TypeRegular)
	require.NoError(t, err)

	records, err := History(db, a.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, a.ID, records[0].UserID)
}
