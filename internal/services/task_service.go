package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/models"
	"github.com/karadenizdev/taskman-backend/internal/owner"
	"gorm.io/gorm"
)

const (
	defaultTaskLimit = 50
	maxTaskLimit     = 100
)

// sortableColumns maps the declared sort keys to their columns. Sort input
// is interpolated into ORDER BY, so anything outside this map is rejected.
var sortableColumns = map[string]string{
	"description": "description",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// TaskService is the owner-scoped task store. Every query is composed with
// the caller's identity; a task id belonging to someone else behaves exactly
// like an id that does not exist.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// Create stores a new task owned by the caller. The body is strict-decoded
// against the {description, completed} allow-list.
func (s *TaskService) Create(userID uuid.UUID, body []byte) (*models.Task, error) {
	var req dto.CreateTaskRequest
	if err := dto.DecodeStrict(body, &req); err != nil {
		return nil, apperror.NewValidation("invalid task fields")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperror.NewValidation("description is required")
	}

	task := models.Task{
		ID:          uuid.New(),
		Description: description,
		OwnerID:     userID,
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.db.Create(&task).Error; err != nil {
		// The owner row can disappear between token verification and the
		// insert when the account is deleted concurrently. The foreign key
		// rejects the insert; treat it like any other vanished owner.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.NewNotFound()
		}
		return nil, apperror.NewInternal(fmt.Errorf("failed to create task: %w", err))
	}
	return &task, nil
}

// List returns the caller's tasks, optionally filtered by completed state,
// sorted by a declared field, and paginated with limit/skip.
func (s *TaskService) List(userID uuid.UUID, q dto.ListTasksQuery) ([]models.Task, error) {
	query := s.db.Scopes(owner.ForOwner(userID))

	if q.Completed != nil {
		query = query.Where("completed = ?", *q.Completed)
	}

	if q.SortBy != "" {
		column, ok := sortableColumns[q.SortBy]
		if !ok {
			return nil, apperror.NewValidation("cannot sort by " + q.SortBy)
		}
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		query = query.Order(column + " " + direction)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultTaskLimit
	}
	if limit > maxTaskLimit {
		limit = maxTaskLimit
	}

	tasks := make([]models.Task, 0)
	if err := query.Limit(limit).Offset(q.Skip).Find(&tasks).Error; err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to list tasks: %w", err))
	}
	return tasks, nil
}

// Get returns a task only when it exists and the caller owns it.
func (s *TaskService) Get(userID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.Scopes(owner.ForOwner(userID)).First(&task, "id = ?", taskID).Error; err != nil {
		return nil, apperror.NewNotFound()
	}
	return &task, nil
}

// Update patches a task under the same allow-list as Create. Unknown fields
// are rejected before storage is touched; a missing or not-owned id is a
// not-found.
func (s *TaskService) Update(userID, taskID uuid.UUID, body []byte) (*models.Task, error) {
	var req dto.UpdateTaskRequest
	if err := dto.DecodeStrict(body, &req); err != nil {
		return nil, apperror.NewValidation("invalid updates")
	}

	task, err := s.Get(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, apperror.NewValidation("description is required")
		}
		task.Description = description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to update task: %w", err))
	}
	return task, nil
}

// Delete removes a task the caller owns and returns it.
func (s *TaskService) Delete(userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.Get(userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(task).Error; err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to delete task: %w", err))
	}
	return task, nil
}

// ParseListQuery validates the raw GET /tasks query parameters.
func ParseListQuery(completed, sortBy, limit, skip string) (dto.ListTasksQuery, error) {
	var q dto.ListTasksQuery

	if completed != "" {
		value, err := strconv.ParseBool(completed)
		if err != nil {
			return q, apperror.NewValidation("completed must be true or false")
		}
		q.Completed = &value
	}

	if sortBy != "" {
		field, direction, found := strings.Cut(sortBy, ":")
		if _, ok := sortableColumns[field]; !ok {
			return q, apperror.NewValidation("cannot sort by " + field)
		}
		q.SortBy = field
		if found {
			switch direction {
			case "asc":
			case "desc":
				q.SortDesc = true
			default:
				return q, apperror.NewValidation("sort direction must be asc or desc")
			}
		}
	}

	if limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil || value < 0 {
			return q, apperror.NewValidation("limit must be a non-negative number")
		}
		q.Limit = value
	}

	if skip != "" {
		value, err := strconv.Atoi(skip)
		if err != nil || value < 0 {
			return q, apperror.NewValidation("skip must be a non-negative number")
		}
		q.Skip = value
	}

	return q, nil
}
