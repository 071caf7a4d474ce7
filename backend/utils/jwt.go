package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"learnsphere/backend/config"
	"learnsphere/backend/models"
)

// GenerateJWTToken issues a signed bearer token for the user. The subject is
// the user's email; expiry is issuance time plus the configured TTL.
func GenerateJWTToken(user *models.User, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"role":    user.Role,
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Duration(cfg.TokenTTLMin) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractSubjectFromToken verifies the Authorization bearer token and returns
// its subject email. Any signature, expiry, or missing-subject problem comes
// back as a fiber 401 error.
func ExtractSubjectFromToken(c *fiber.Ctx, cfg *config.Config) (string, error) {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Token has no subject")
	}

	return subject, nil
}

// ResolveTokenUser validates the request's bearer token and loads the user it
// names. A valid token whose subject no longer matches a stored user is still
// an auth failure, not a 404.
func ResolveTokenUser(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (*models.User, error) {
	email, err := ExtractSubjectFromToken(c, cfg)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
	}

	return &user, nil
}
