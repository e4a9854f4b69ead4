package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rohisku_backend/internals/features/notulensi/model"
	sessionModel "rohisku_backend/internals/features/sessions/model"
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

	require.NoError(t, db.AutoMigrate(&sessionModel.SessionModel{}, &model.NotulensiModel{}))
	return db
}

func seedSession(t *testing.T, db *gorm.DB) *sessionModel.SessionModel {
	t.Helper()
	s := sessionModel.SessionModel{Name: "Rapat", Date: "2026-03-13", SessionType: sessionModel.SessionTypeAll}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestIsEmptyContent(t *testing.T) {
	assert.True(t, IsEmptyContent(""))
	assert.True(t, IsEmptyContent("   "))
	assert.True(t, IsEmptyContent("<p><br></p>"))
	assert.True(t, IsEmptyContent("<p></p>"))
	assert.False(t, IsEmptyContent("<p>Hasil rapat</p>"))
}

func TestSaveRejectsEmptyContent(t *testing.T) {
	db := openTestDB(t)
	s := seedSession(t, db)

	for _, content := range []string{"", "<p><br></p>", "<p></p>"} {
		_, _, err := Save(db, s.ID, content)
		assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
	}

	var count int64
	db.Model(&model.NotulensiModel{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSaveUpsertsPerSession(t *testing.T) {
	db := openTestDB(t)
	s := seedSession(t, db)

	note, created, err := Save(db, s.ID, "<p>Versi pertama</p>")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, note.UpdatedAt)
	firstCreatedAt := note.CreatedAt

	note, created, err = Save(db, s.ID, "<p>Versi kedua</p>")
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, note.UpdatedAt)
	assert.Equal(t, "<p>Versi kedua</p>", note.Content)
	assert.Equal(t, firstCreatedAt.Unix(), note.CreatedAt.Unix())

	var count int64
	db.Model(&model.NotulensiModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSaveUnknownSession(t *testing.T) {
	db := openTestDB(t)
	_, _, err := Save(db, 999, "<p>Isi</p>")
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestDeleteNotulensi(t *testing.T) {
	db := openTestDB(t)
	s := seedSession(t, db)

	note, _, err := Save(db, s.ID, "<p>Isi rapat</p>")
	require.NoError(t, err)

	require.NoError(t, Delete(db, note.ID))

	err = Delete(db, note.ID)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestBySession(t *testing.T) {
	db := openTestDB(t)
	s := seedSession(t, db)

	note, err := BySession(db, s.ID)
	require.NoError(t, err)
	assert.Nil(t, note)

	_, _, err = Save(db, s.ID, "<p>Isi</p>")
	require.NoError(t, err)

	note, err = BySession(db, s.ID)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, s.ID, note.SessionID)
}
