package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is created once at organization registration. There is no update or
// delete path, and company names are not unique.
type Company struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	Name          string      `gorm:"type:varchar(255);not null" json:"name"`
	IndustryType  string      `gorm:"type:varchar(255);not null" json:"industryType"`
	BusinessEmail StringList  `gorm:"type:text;not null" json:"businessEmail"`
	ContactNos    StringList  `gorm:"type:text;not null" json:"contactNos"`
	CompanySize   string      `gorm:"type:varchar(50);not null" json:"companySize"`
	FullAddress   string      `gorm:"type:text;not null" json:"fullAddress"`
	WorkForceType StringList  `gorm:"type:text" json:"workForceType"`
	Pincode       string      `gorm:"type:varchar(20)" json:"pincode,omitempty"`
	ELoc          string      `gorm:"type:varchar(50)" json:"eLoc,omitempty"`
	Coordinates   Coordinates `gorm:"type:text" json:"coordinates,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (c *Company) BeforeSave(tx *gorm.DB) error {
	return c.Coordinates.Validate()
}
