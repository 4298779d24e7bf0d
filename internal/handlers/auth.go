package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crewzy/workforce-api/internal/dto"
	apierrors "github.com/crewzy/workforce-api/internal/errors"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new user and returns a signed token.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name         string             `json:"name"`
		Email        string             `json:"email"`
		Password     string             `json:"password"`
		Role         models.Role        `json:"role"`
		Organization string             `json:"organization"`
		SubRole      string             `json:"subRole"`
		WorkType     models.WorkType    `json:"workType"`
		FullAddress  string             `json:"fullAddress"`
		Pincode      string             `json:"pincode"`
		ELoc         string             `json:"eLoc"`
		Coordinates  models.Coordinates `json:"coordinates"`
		Skills       []string           `json:"skills"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.authService.Signup(services.SignupInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Organization: req.Organization,
		SubRole:      req.SubRole,
		WorkType:     req.WorkType,
		FullAddress:  req.FullAddress,
		Pincode:      req.Pincode,
		ELoc:         req.ELoc,
		Coordinates:  req.Coordinates,
		Skills:       req.Skills,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"token":   token,
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates a user and returns a fresh token plus the advisory
// redirect hint.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, redirectPath, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        token,
		"user":         dto.ToUserDTO(*user),
		"redirectPath": redirectPath,
	})
}

func respondAuthError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, "Missing required fields", validationErr.Missing)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.DuplicateEmail(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidWorkType),
		errors.Is(err, models.ErrInvalidCoordinates):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
