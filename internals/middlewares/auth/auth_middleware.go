// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"rohisku_backend/internals/configs"
	tokenModel "rohisku_backend/internals/features/users/auth/model"
	memberModel "rohisku_backend/internals/features/users/member/model"
	helper "rohisku_backend/internals/helpers"
)

// Locals keys yang dipakai downstream
const (
	LocUserID      = "user_id"
	LocUserRole    = "user_role"
	LocCurrentUser = "current_user"
)

// AuthMiddleware memverifikasi JWT (cookie access_token atau Bearer),
// mengecek blacklist, lalu memuat user dan menyimpannya di Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Login required")
		}
		helper.SetRawAccessToken(c, tokenString)

		// Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			var existing tokenModel.TokenBlacklist
			if err := db.Where("token = ?", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		var user memberModel.UserModel
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] Gagal memuat user:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals(LocUserID, user.ID)
		c.Locals(LocUserRole, user.Role)
		c.Locals(LocCurrentUser, &user)

		return c.Next()
	}
}

// CurrentUser mengambil user yang sudah dimuat middleware. nil kalau tidak ada.
func CurrentUser(c *fiber.Ctx) *memberModel.UserModel {
	u, _ := c.Locals(LocCurrentUser).(*memberModel.UserModel)
	return u
}

func extractUserID(claims jwt.MapClaims) (uint, error) {
	switch v := claims["sub"].(type) {
	case float64:
		if v <= 0 {
			return 0, errors.New("invalid sub claim")
		}
		return uint(v), nil
	default:
		return 0, errors.New("missing sub claim")
	}
}

// TokenExpiry membaca exp claim untuk kebutuhan blacklist saat logout.
func TokenExpiry(claims jwt.MapClaims) time.Time {
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(24 * time.Hour)
}
