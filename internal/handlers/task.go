package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/crewzy/workforce-api/internal/errors"
	"github.com/crewzy/workforce-api/internal/middleware"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/services"
)

// TaskHandler coordinates task lifecycle HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	suggestions *services.TaskSuggestionService
}

// NewTaskHandler creates a new TaskHandler. The suggestion service may be nil
// when no OpenAI key is configured.
func NewTaskHandler(taskService *services.TaskService, suggestions *services.TaskSuggestionService) *TaskHandler {
	return &TaskHandler{taskService: taskService, suggestions: suggestions}
}

// Create handles POST /task/assign: task intake. The route name is historical;
// the created task has status "new" and no assignee.
func (h *TaskHandler) Create(c *gin.Context) {
	type CreateTaskRequest struct {
		Name         string             `json:"name"`
		ContactNo    string             `json:"contactNo"`
		FullAddress  string             `json:"fullAddress"`
		Task         string             `json:"task"`
		ExpectedDate string             `json:"expectedDate"`
		Pincode      string             `json:"pincode"`
		ELoc         string             `json:"eLoc"`
		Coordinates  models.Coordinates `json:"coordinates"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var expectedDate *time.Time
	if req.ExpectedDate != "" {
		parsed, err := parseDate(req.ExpectedDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid expectedDate")
			return
		}
		expectedDate = &parsed
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Name:         req.Name,
		ContactNo:    req.ContactNo,
		FullAddress:  req.FullAddress,
		Details:      req.Task,
		ExpectedDate: expectedDate,
		Pincode:      req.Pincode,
		ELoc:         req.ELoc,
		Coordinates:  req.Coordinates,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully and ready for assignment",
		"task":    task,
	})
}

// List handles GET /task: role-scoped task listing, newest first.
func (h *TaskHandler) List(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.List(caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Get handles GET /task/:id under the caller's visibility.
func (h *TaskHandler) Get(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := taskID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(caller, id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateStatus handles PUT /task/:id/status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := taskID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateStatusRequest struct {
		Status      *models.TaskStatus `json:"status"`
		RevisitDate string             `json:"revisitDate"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateStatusInput{Status: req.Status}
	if req.RevisitDate != "" {
		parsed, err := parseDate(req.RevisitDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid revisitDate")
			return
		}
		input.RevisitDate = &parsed
	}

	task, err := h.taskService.UpdateStatus(caller, id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// Assign handles PUT /task/:id/assignee: admin binds a task to an employee.
func (h *TaskHandler) Assign(c *gin.Context) {
	id, err := taskID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type AssignRequest struct {
		AssigneeID uint `json:"assigneeId"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AssigneeID == 0 {
		apierrors.BadRequest(c, "assigneeId is required")
		return
	}

	task, err := h.taskService.Assign(id, req.AssigneeID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task assigned successfully",
		"task":    task,
	})
}

// Delete handles DELETE /task/:id: admin-only hard delete.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := taskID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Generate handles POST /task/generate: AI task suggestions from free text.
func (h *TaskHandler) Generate(c *gin.Context) {
	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.suggestions == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	tasks, err := h.suggestions.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate task suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func currentCaller(c *gin.Context) (services.Caller, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return services.Caller{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{ID: id, Role: role}, true
}

func taskID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate accepts RFC3339 timestamps or plain dates like "2025-12-01".
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func respondTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, "Missing required fields", validationErr.Missing)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequestWithDetails(c, err.Error(), models.TaskStatuses)
	case errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrAssigneeNotEmployee),
		errors.Is(err, models.ErrInvalidCoordinates):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
