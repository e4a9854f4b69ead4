package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rohisku_backend/internals/configs"
	tokenModel "rohisku_backend/internals/features/users/auth/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
	authMw "rohisku_backend/internals/middlewares/auth"
)

const accessTTLDefault = 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var user memberModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Println("[ERROR] Login query:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		log.Println("[ERROR] issueAccessToken:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(accessTTLDefault),
		Path:     "/",
	})

	log.Printf("[SUCCESS] Login: %s (%s)", user.Email, user.Role)
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"token":                token,
		"user":                 user,
		"must_change_password": user.MustChangePassword,
	})
}

func issueAccessToken(user *memberModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTLDefault).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tokenString := helper.GetRawAccessToken(c)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Login required")
	}

	// exp dari claim dipakai sebagai umur entri blacklist
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, _, _ = parser.ParseUnverified(tokenString, claims)

	entry := tokenModel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: authMw.TokenExpiry(claims),
	}
	if err := db.Create(&entry).Error; err != nil {
		// Token yang sama di-blacklist dua kali bukan masalah
		if !helper.IsUniqueViolation(err) {
			log.Println("[ERROR] Blacklist insert:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
	})
	return helper.JsonOK(c, "Logged out", nil)
}

/* ==========================
   ME
========================== */

func Me(c *fiber.Ctx) error {
	user := authMw.CurrentUser(c)
	if user == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "User profile fetched successfully", user)
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		OldPassword     string `json:"old_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	user := authMw.CurrentUser(c)
	if user == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Incorrect current password")
	}
	if input.NewPassword != input.ConfirmPassword {
		return helper.JsonError(c, fiber.StatusBadRequest, "New passwords do not match")
	}
	if len(input.NewPassword) < 6 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := db.Model(&memberModel.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"password":             string(newHash),
			"must_change_password": false,
		}).Error; err != nil {
		log.Println("[ERROR] Update password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password updated successfully", nil)
}
