package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/owner"
	"github.com/karadenizdev/taskman-backend/internal/services"
)

type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	resp, err := h.authService.Signup(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Logout revokes only the session token the request was made with; other
// devices stay signed in.
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if err := h.authService.RevokeToken(user.ID, owner.CurrentToken(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

// LogoutAll revokes every session token the user holds.
func (h *UserHandler) LogoutAll(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if err := h.authService.RevokeAll(user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(owner.CurrentUser(c))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if err := h.userService.UpdateProfile(user, c.Body()); err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if err := h.userService.DeleteSelf(user); err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return apperror.NewPayload("avatar file is required")
	}
	if file.Size > services.MaxAvatarBytes {
		return apperror.NewPayload("image must be smaller than 1MB")
	}

	src, err := file.Open()
	if err != nil {
		return apperror.NewPayload("unable to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return apperror.NewPayload("unable to read uploaded file")
	}

	user := owner.CurrentUser(c)
	if err := h.userService.SetAvatar(user, file.Filename, data); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *UserHandler) DeleteAvatar(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if err := h.userService.DeleteAvatar(user); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetAvatar is public: anyone holding a user id can fetch the stored PNG.
func (h *UserHandler) GetAvatar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.NewNotFound()
	}

	avatar, err := h.userService.GetAvatar(id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(avatar)
}
