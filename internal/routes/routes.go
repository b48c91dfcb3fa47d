package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/karadenizdev/taskman-backend/internal/config"
	"github.com/karadenizdev/taskman-backend/internal/handlers"
	"github.com/karadenizdev/taskman-backend/internal/middleware"
	"github.com/karadenizdev/taskman-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Signup/login rate limit: 20 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// Every protected route goes through the signature gate and then the
	// token-set membership gate; handlers never resolve identity themselves.
	jwtGuard := middleware.JWTProtected(cfg)
	loadUser := middleware.RequireUser(authService)

	// Users
	app.Post("/users", authLimiter, userHandler.Signup)
	app.Post("/users/login", authLimiter, userHandler.Login)
	app.Post("/users/logout", jwtGuard, loadUser, userHandler.Logout)
	app.Post("/users/logoutAll", jwtGuard, loadUser, userHandler.LogoutAll)
	app.Get("/users/me", jwtGuard, loadUser, userHandler.Me)
	app.Patch("/users/me", jwtGuard, loadUser, userHandler.UpdateMe)
	app.Delete("/users/me", jwtGuard, loadUser, userHandler.DeleteMe)

	// Avatars
	app.Post("/users/me/avatar", jwtGuard, loadUser, userHandler.UploadAvatar)
	app.Delete("/users/me/avatar", jwtGuard, loadUser, userHandler.DeleteAvatar)
	app.Get("/users/:id/avatar", userHandler.GetAvatar)

	// Tasks
	app.Post("/tasks", jwtGuard, loadUser, taskHandler.Create)
	app.Get("/tasks", jwtGuard, loadUser, taskHandler.List)
	app.Get("/tasks/:id", jwtGuard, loadUser, taskHandler.Get)
	app.Patch("/tasks/:id", jwtGuard, loadUser, taskHandler.Update)
	app.Delete("/tasks/:id", jwtGuard, loadUser, taskHandler.Delete)
}
