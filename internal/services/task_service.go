package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
)

var (
	// ErrTaskNotFound covers both a missing task and a task outside the
	// caller's visibility; the two cases are indistinguishable on purpose.
	ErrTaskNotFound       = errors.New("task not found or access denied")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrAssigneeNotFound   = errors.New("assignee not found")
	ErrAssigneeNotEmployee = errors.New("assignee must be an employee")
)

// Caller identifies the authenticated user invoking an operation.
type Caller struct {
	ID   uint
	Role models.Role
}

// TaskService handles the task lifecycle.
type TaskService struct {
	tasks repository.TaskRepository
	users repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// visibilityFor is the single policy consulted by every read: admins see
// everything (with the assignee joined in), employees only their own tasks.
func visibilityFor(caller Caller) repository.TaskFilter {
	if caller.Role == models.RoleAdmin {
		return repository.TaskFilter{PreloadAssignee: true}
	}
	id := caller.ID
	return repository.TaskFilter{AssigneeID: &id}
}

// CreateTaskInput represents task intake. Despite the /task/assign route name
// this does not bind an assignee; that is a separate Assign call.
type CreateTaskInput struct {
	Name         string
	ContactNo    string
	FullAddress  string
	Details      string
	ExpectedDate *time.Time
	Pincode      string
	ELoc         string
	Coordinates  models.Coordinates
}

// Create records a new task with status "new" and no assignee.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.ContactNo) == "" {
		missing = append(missing, "contactNo")
	}
	if strings.TrimSpace(input.FullAddress) == "" {
		missing = append(missing, "fullAddress")
	}
	if strings.TrimSpace(input.Details) == "" {
		missing = append(missing, "task")
	}
	if input.ExpectedDate == nil || input.ExpectedDate.IsZero() {
		missing = append(missing, "expectedDate")
	}
	if len(missing) > 0 {
		return nil, newValidationError(missing...)
	}

	if err := input.Coordinates.Validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:         strings.TrimSpace(input.Name),
		ContactNo:    strings.TrimSpace(input.ContactNo),
		FullAddress:  strings.TrimSpace(input.FullAddress),
		Details:      strings.TrimSpace(input.Details),
		ExpectedDate: *input.ExpectedDate,
		Status:       models.TaskStatusNew,
		Pincode:      strings.TrimSpace(input.Pincode),
		ELoc:         strings.TrimSpace(input.ELoc),
	}
	if len(input.Coordinates) == 2 {
		task.Coordinates = input.Coordinates
	}

	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// List returns the tasks visible to the caller, newest-created first.
func (s *TaskService) List(caller Caller) ([]models.Task, error) {
	tasks, err := s.tasks.List(visibilityFor(caller))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task if the caller can see it.
func (s *TaskService) Get(caller Caller, id uint) (*models.Task, error) {
	task, err := s.tasks.FindOne(id, visibilityFor(caller))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateStatusInput carries the optional status/revisitDate pair. Status
// transitions are unconstrained beyond enum membership.
type UpdateStatusInput struct {
	Status      *models.TaskStatus
	RevisitDate *time.Time
}

// UpdateStatus updates whichever of status/revisitDate was supplied, under the
// caller's visibility.
func (s *TaskService) UpdateStatus(caller Caller, id uint, input UpdateStatusInput) (*models.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.tasks.FindOne(id, visibilityFor(caller))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.RevisitDate != nil {
		task.RevisitDate = input.RevisitDate
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Assign binds a task to an employee and moves it to "assigned". This is the
// assignment-proper step the intake endpoint never performed.
func (s *TaskService) Assign(id uint, assigneeID uint) (*models.Task, error) {
	task, err := s.tasks.FindOne(id, repository.TaskFilter{})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignee, err := s.users.FindByID(assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	if assignee.Role != models.RoleEmployee {
		return nil, ErrAssigneeNotEmployee
	}

	task.AssigneeID = &assignee.ID
	task.Status = models.TaskStatusAssigned

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return task, nil
}

// Delete hard-deletes a task. No recovery.
func (s *TaskService) Delete(id uint) error {
	if err := s.tasks.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
