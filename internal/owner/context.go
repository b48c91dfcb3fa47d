package owner

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karadenizdev/taskman-backend/internal/models"
)

const (
	userKey  = "currentUser"
	tokenKey = "currentToken"
)

// Bind stores the resolved user and the raw bearer token on the request.
// Only the auth middleware calls this; handlers read the pair back with
// CurrentUser and CurrentToken.
func Bind(c *fiber.Ctx, user *models.User, rawToken string) {
	c.Locals(userKey, user)
	c.Locals(tokenKey, rawToken)
}

// CurrentUser returns the authenticated user bound by the auth middleware,
// or nil on unprotected routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(userKey).(*models.User); ok {
		return u
	}
	return nil
}

// CurrentToken returns the raw bearer token for the request. Handlers need
// it to revoke the single session it represents.
func CurrentToken(c *fiber.Ctx) string {
	if t, ok := c.Locals(tokenKey).(string); ok {
		return t
	}
	return ""
}
