package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
	authMw "rohisku_backend/internals/middlewares/auth"
)

const maxProfilePictureSize = 5 * 1024 * 1024 // 5 MB

// Ekstensi upload yang diterima; blob tersimpan selalu WebP hasil normalisasi.
var allowedPictureExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// POST /api/profile/picture — upload foto profil (multipart "pfp")
func (pc *ProfileController) UploadPicture(c *fiber.Ctx) error {
	actor := authMw.CurrentUser(c)
	if actor == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	fh, err := c.FormFile("pfp")
	if err != nil || fh == nil || fh.Filename == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file provided")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedPictureExt[ext]; !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file type. Allowed: png, jpg, jpeg, webp")
	}
	if fh.Size > maxProfilePictureSize {
		return helper.JsonError(c, fiber.StatusBadRequest, "File too large (max 5 MB)")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read file")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read file")
	}

	// Normalisasi ke WebP (max 512px) supaya blob di DB tetap kecil
	data, err := helper.NormalizeProfileImage(raw, fh.Filename)
	if err != nil {
		log.Println("[ERROR] Decode pfp:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or corrupt image file")
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	filename := base + ".webp"
	if err := pc.DB.Model(&model.UserModel{}).
		Where("id = ?", actor.ID).
		Updates(map[string]interface{}{
			"profile_picture_data": data,
			"profile_picture_name": filename,
		}).Error; err != nil {
		log.Println("[ERROR] Upload pfp:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save picture")
	}

	return helper.JsonUpdated(c, "Profile picture updated", fiber.Map{
		"url": fmt.Sprintf("/api/profile/picture/%d", actor.ID),
	})
}

// GET /api/profile/picture/:user_id — stream foto profil
func (pc *ProfileController) ServePicture(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var user model.UserModel
	if err := pc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load member")
	}

	if len(user.ProfilePictureData) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No profile picture")
	}

	mime := "image/png"
	if user.ProfilePictureName != nil {
		if m, ok := allowedPictureExt[strings.ToLower(filepath.Ext(*user.ProfilePictureName))]; ok {
			mime = m
		}
	}
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(user.ProfilePictureData)
}
