package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tasktracker/internal/service"
)

// TaskHandler handles task endpoints for the authenticated user.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest represents the user-editable fields of a task. Domain rules
// (title length and charset, priority enum, due date bounds) are checked by
// the task validator so failures come back as one collected list; the tag
// only rejects structurally impossible input.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	Duration    int    `json:"duration" validate:"gte=0"`
}

func (r TaskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Status:      r.Status,
		Duration:    r.Duration,
	}
}

// List godoc
// @Summary List the authenticated user's tasks
// @Description Tasks are ordered newest first and annotated with days_left until the due date.
// @Tags tasks
// @Produce json
// @Success 200 {array} service.TaskView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task fields"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary Update an owned task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body TaskRequest true "Task fields"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Update(c.Request().Context(), taskID, userID, req.toInput())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// Toggle godoc
// @Summary Toggle completion of an owned task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleCompleted(c.Request().Context(), taskID, userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete an owned task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), taskID, userID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "task deleted",
	})
}

func taskIDParam(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
