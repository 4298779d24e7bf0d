package dto

import (
	"github.com/crewzy/workforce-api/internal/models"
)

// UserDTO is the curated user shape returned by the auth endpoints.
type UserDTO struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.Role     `json:"role"`
	Organization string          `json:"organization"`
	SubRole      string          `json:"subRole,omitempty"`
	WorkType     models.WorkType `json:"workType,omitempty"`
	Skills       []string        `json:"skills,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Organization: user.Organization,
		SubRole:      user.SubRole,
		WorkType:     user.WorkType,
		Skills:       user.Skills,
	}
}
