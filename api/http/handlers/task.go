package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

// currentUserID extracts the authenticated user's id set by the JWT middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, _ := c.Locals("userId").(string)
	return uuid.Parse(userIDStr)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create creates a task owned by the authenticated user.
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task payload"
// @Security BearerAuth
// @Success 201 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return presenter.Error(c, http.StatusBadRequest, "title is required")
	}
	t, err := h.uc.Create(c.Context(), uid, req.Title, req.Description)
	if err != nil {
		var verr task.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create task")
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// GetByID returns one of the caller's tasks.
// @Summary Get task by ID
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} task.Task
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	t, err := h.uc.GetByID(c.Context(), uid, id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get task")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// List returns the caller's tasks, optionally filtered.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Param   status query string false "filter by status (OPEN, IN_PROGRESS, DONE)"
// @Param   search query string false "case-insensitive substring over title/description"
// @Security BearerAuth
// @Success 200 {array} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	var f task.Filter
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		st, err := task.ParseStatus(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		f.Status = &st
	}
	f.Search = strings.TrimSpace(c.Query("search"))
	limit, offset := parseLimitOffset(c, 50)
	ts, err := h.uc.List(c.Context(), uid, f, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list tasks")
	}
	if ts == nil {
		ts = []task.Task{}
	}
	return presenter.JSON(c, http.StatusOK, ts)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a task to a new status.
// @Summary Update task status
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Param   input body updateStatusRequest true "new status"
// @Security BearerAuth
// @Success 200 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	st, err := task.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	t, err := h.uc.UpdateStatus(c.Context(), uid, id, st)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update task")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// Delete removes one of the caller's tasks.
// @Summary Delete task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete task")
	}
	return c.SendStatus(http.StatusNoContent)
}
