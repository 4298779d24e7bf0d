package repository

import (
	"github.com/crewzy/workforce-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint) (*models.User, error)

	// FindByEmail finds a user by email (emails are stored lowercased)
	FindByEmail(email string) (*models.User, error)
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error
}

// TaskFilter is the visibility predicate applied uniformly to task reads.
// A nil AssigneeID means unrestricted (admin) visibility.
type TaskFilter struct {
	AssigneeID      *uint
	PreloadAssignee bool
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOne finds a task by ID within the given visibility filter
	FindOne(id uint, filter TaskFilter) (*models.Task, error)

	// List retrieves tasks within the given visibility filter, newest first
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete hard-deletes a task; returns gorm.ErrRecordNotFound if absent
	Delete(id uint) error
}
