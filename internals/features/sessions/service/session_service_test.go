package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	attendanceModel "rohisku_backend/internals/features/attendance/model"
	notulensiModel "rohisku_backend/internals/features/notulensi/model"
	picModel "rohisku_backend/internals/features/pics/model"
	"rohisku_backend/internals/features/sessions/model"
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
		&picModel.PicModel{},
		&model.SessionModel{},
		&model.SessionPicModel{},
		&attendanceModel.AttendanceModel{},
		&notulensiModel.NotulensiModel{},
	))
	return db
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateSessionDefaultsType(t *testing.T) {
	db := openTestDB(t)

	s, err := CreateSession(db, "Kajian Jumat", "2026-03-13", "", "membahas adab menuntut ilmu")
	require.NoError(t, err)
	assert.Equal(t, model.SessionTypeAll, s.SessionType)
	assert.False(t, s.IsLocked)
	require.NotNil(t, s.Description)
}

func TestLockSessionIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	s, err := CreateSession(db, "Kajian", "2026-03-13", model.SessionTypeAll, "")
	require.NoError(t, err)

	locked, err := LockSession(db, s.ID)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	// Kunci lagi: tetap sukses, tetap terkunci
	locked, err = LockSession(db, s.ID)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	_, err = LockSession(db, 999)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestDeleteSessionCascades(t *testing.T) {
	db := openTestDB(t)
	s, err := CreateSession(db, "Kajian Besar", "2026-03-20", model.SessionTypeAll, "")
	require.NoError(t, err)

	pic := picModel.PicModel{Name: "Dakwah"}
	require.NoError(t, db.Create(&pic).Error)
	require.NoError(t, AssignPics(db, s.ID, []uint{pic.ID}))

	for _, uid := range []uint{11, 12, 13} {
		require.NoError(t, db.Create(&attendanceModel.AttendanceModel{
			SessionID: s.ID, UserID: uid, Status: attendanceModel.StatusPresent,
			AttendanceType: attendanceModel.TypeRegular,
		}).Error)
	}
	require.NoError(t, db.Create(&notulensiModel.NotulensiModel{
		SessionID: s.ID, Content: "<p>Hasil rapat</p>",
	}).Error)

	name, err := DeleteSession(db, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kajian Besar", name)

	var sessions, pics, attendances, notes int64
	db.Model(&model.SessionModel{}).Count(&sessions)
	db.Model(&model.SessionPicModel{}).Count(&pics)
	db.Model(&attendanceModel.AttendanceModel{}).Count(&attendances)
	db.Model(&notulensiModel.NotulensiModel{}).Count(&notes)
	assert.EqualValues(t, 0, sessions)
	assert.EqualValues(t, 0, pics)
	assert.EqualValues(t, 0, attendances)
	assert.EqualValues(t, 0, notes)

	_, err = DeleteSession(db, s.ID)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestAssignPicsReplacesAndSkipsUnknown(t *testing.T) {
	db := openTestDB(t)
	s, err := CreateSession(db, "Mentoring", "2026-04-01", model.SessionTypeAll, "")
	require.NoError(t, err)

	a := picModel.PicModel{Name: "Akhwat"}
	b := picModel.PicModel{Name: "Ikhwan"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	require.NoError(t, AssignPics(db, s.ID, []uint{a.ID}))

	// Replace-all: id tak dikenal dan 0 dilewati tanpa error
	require.NoError(t, AssignPics(db, s.ID, []uint{b.ID, 999, 0}))

	pics, err := AssignedPics(db, s.ID)
	require.NoError(t, err)
	require.Len(t, pics, 1)
	assert.Equal(t, "Ikhwan", pics[0].Name)
}

func TestRemovePic(t *testing.T) {
	db := openTestDB(t)
	s, err := CreateSession(db, "Mentoring", "2026-04-01", model.SessionTypeAll, "")
	require.NoError(t, err)

	pic := picModel.PicModel{Name: "Humas"}
	require.NoError(t, db.Create(&pic).Error)
	require.NoError(t, AssignPics(db, s.ID, []uint{pic.ID}))

	name, err := RemovePic(db, s.ID, pic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Humas", name)

	_, err = RemovePic(db, s.ID, pic.ID)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}
