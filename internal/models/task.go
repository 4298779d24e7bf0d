package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusRevisit    TaskStatus = "revisit"
)

// TaskStatuses lists every legal status value. Transitions are deliberately
// unconstrained: any status may follow any other, only membership is checked.
var TaskStatuses = []TaskStatus{
	TaskStatusNew,
	TaskStatusAssigned,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusRevisit,
}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task is a location-tagged field visit. Name and ContactNo describe the
// customer being visited, not the assignee. AssigneeID stays nil until an
// admin binds the task to an employee.
type Task struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	ContactNo   string      `gorm:"type:varchar(50);not null" json:"contactNo"`
	FullAddress string      `gorm:"type:text;not null" json:"fullAddress"`
	Pincode     string      `gorm:"type:varchar(20)" json:"pincode,omitempty"`
	ELoc        string      `gorm:"type:varchar(50)" json:"eLoc,omitempty"`
	Coordinates Coordinates `gorm:"type:text" json:"coordinates,omitempty"`
	Details     string      `gorm:"column:task;type:text;not null" json:"task"`
	AssigneeID  *uint       `gorm:"index" json:"assigneeId"`
	Status      TaskStatus  `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	ExpectedDate time.Time  `gorm:"not null" json:"expectedDate"`
	RevisitDate  *time.Time `json:"revisitDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Relations
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (t *Task) BeforeSave(tx *gorm.DB) error {
	return t.Coordinates.Validate()
}
