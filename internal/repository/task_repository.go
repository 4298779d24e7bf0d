package repository

import (
	"github.com/crewzy/workforce-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindOne finds a task by ID within the visibility filter. A task outside the
// filter is reported exactly like a missing one.
func (r *GormTaskRepository) FindOne(id uint, filter TaskFilter) (*models.Task, error) {
	var task models.Task
	query := r.scoped(filter)
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks within the visibility filter, newest-created first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	query := r.scoped(filter).Order("created_at DESC")
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task. Associations are never written through
// the task; the assignee is only ever referenced by ID.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete hard-deletes a task
func (r *GormTaskRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTaskRepository) scoped(filter TaskFilter) *gorm.DB {
	query := r.db.Model(&models.Task{})
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.PreloadAssignee {
		query = query.Preload("Assignee", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "role")
		})
	}
	return query
}
