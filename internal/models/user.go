package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type WorkType string

const (
	WorkTypeOffice WorkType = "office"
	WorkTypeHybrid WorkType = "hybrid"
)

func (w WorkType) Valid() bool {
	return w == "" || w == WorkTypeOffice || w == WorkTypeHybrid
}

// User is an admin or employee account. Email is stored lowercased, which makes
// the unique index case-insensitive in practice.
type User struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Name         string      `gorm:"type:varchar(255);not null" json:"name"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role        `gorm:"type:varchar(20);not null" json:"role"`
	Organization string      `gorm:"type:varchar(255);not null" json:"organization"`
	SubRole      string      `gorm:"type:varchar(255)" json:"subRole,omitempty"`
	WorkType     WorkType    `gorm:"type:varchar(20)" json:"workType,omitempty"`
	FullAddress  string      `gorm:"type:text" json:"fullAddress,omitempty"`
	Pincode      string      `gorm:"type:varchar(20)" json:"pincode,omitempty"`
	ELoc         string      `gorm:"type:varchar(50)" json:"eLoc,omitempty"`
	Coordinates  Coordinates `gorm:"type:text" json:"coordinates,omitempty"`
	Skills       StringList  `gorm:"type:text" json:"skills"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.Coordinates.Validate()
}
