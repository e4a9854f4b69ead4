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
	"rohisku_backend/internals/features/pics/model"
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
		&model.PicModel{},
		&sessionModel.SessionModel{},
		&sessionModel.SessionPicModel{},
	))
	return db
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreatePic(t *testing.T) {
	db := openTestDB(t)

	pic, err := CreatePic(db, " Dakwah ", "koordinator kajian")
	require.NoError(t, err)
	assert.Equal(t, "Dakwah", pic.Name)
	require.NotNil(t, pic.Description)

	_, err = CreatePic(db, "Dakwah", "")
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	_, err = CreatePic(db, "   ", "")
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
}

func TestDeletePicDetachesMembersAndAssignments(t *testing.T) {
	db := openTestDB(t)

	pic, err := CreatePic(db, "Humas", "")
	require.NoError(t, err)

	member := memberModel.UserModel{
		Email: "ani@rohis.sch.id", Password: "x", Name: "Ani",
		Role: constants.RoleMember, PicID: &pic.ID, CanMarkAttendance: true,
	}
	require.NoError(t, db.Create(&member).Error)

	session := sessionModel.SessionModel{Name: "Kajian", Date: "2026-03-13", SessionType: sessionModel.SessionTypeAll}
	require.NoError(t, db.Create(&session).Error)
	require.NoError(t, db.Create(&sessionModel.SessionPicModel{SessionID: session.ID, PicID: pic.ID}).Error)

	deleted, err := DeletePic(db, pic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Humas", deleted.Name)

	var got memberModel.UserModel
	require.NoError(t, db.First(&got, member.ID).Error)
	assert.Nil(t, got.PicID)
	assert.False(t, got.CanMarkAttendance)

	var assignments int64
	db.Model(&sessionModel.SessionPicModel{}).Count(&assignments)
	assert.EqualValues(t, 0, assignments)

	_, err = DeletePic(db, pic.ID)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}
