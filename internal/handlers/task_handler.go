package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/owner"
	"github.com/karadenizdev/taskman-backend/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)

	task, err := h.taskService.Create(user.ID, c.Body())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// List handles GET /tasks?completed=&sortBy=field:asc|desc&limit=&skip=.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)

	q, err := services.ParseListQuery(
		c.Query("completed"),
		c.Query("sortBy"),
		c.Query("limit"),
		c.Query("skip"),
	)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(user.ID, q)
	if err != nil {
		return err
	}

	return c.JSON(tasks)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.NewNotFound()
	}

	task, err := h.taskService.Get(user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.NewNotFound()
	}

	task, err := h.taskService.Update(user.ID, id, c.Body())
	if err != nil {
		return err
	}

	return c.JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.NewNotFound()
	}

	task, err := h.taskService.Delete(user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(task)
}
