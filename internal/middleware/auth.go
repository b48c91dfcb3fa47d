package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/karadenizdev/taskman-backend/internal/config"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/owner"
	"github.com/karadenizdev/taskman-backend/internal/services"
)

// JWTProtected rejects requests whose bearer token is missing or fails the
// signature check. Signature validity alone is not enough to reach a
// handler; RequireUser still has to find the token in the live set.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "please authenticate",
			})
		},
	})
}

// RequireUser resolves the signed token to a user record, enforcing
// membership in the user's active-token set, and binds the user plus the raw
// token onto the request. This is the only path by which a handler acquires
// an identity.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "please authenticate",
			})
		}

		user, err := auth.VerifyToken(token.Raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "please authenticate",
			})
		}

		owner.Bind(c, user, token.Raw)
		return c.Next()
	}
}
