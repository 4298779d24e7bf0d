package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/crewzy/workforce-api/internal/errors"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/services"
)

// CompanyHandler coordinates organization registration.
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Register handles POST /company/register.
func (h *CompanyHandler) Register(c *gin.Context) {
	type RegisterCompanyRequest struct {
		Name          string             `json:"name"`
		IndustryType  string             `json:"industryType"`
		BusinessEmail []string           `json:"businessEmail"`
		ContactNos    []string           `json:"contactNos"`
		CompanySize   string             `json:"companySize"`
		FullAddress   string             `json:"fullAddress"`
		WorkForceType []string           `json:"workForceType"`
		Pincode       string             `json:"pincode"`
		ELoc          string             `json:"eLoc"`
		Coordinates   models.Coordinates `json:"coordinates"`
	}

	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.Register(services.RegisterCompanyInput{
		Name:          req.Name,
		IndustryType:  req.IndustryType,
		BusinessEmail: req.BusinessEmail,
		ContactNos:    req.ContactNos,
		CompanySize:   req.CompanySize,
		FullAddress:   req.FullAddress,
		WorkForceType: req.WorkForceType,
		Pincode:       req.Pincode,
		ELoc:          req.ELoc,
		Coordinates:   req.Coordinates,
	})
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			apierrors.BadRequestWithDetails(c, "Missing required fields", validationErr.Missing)
		case errors.Is(err, models.ErrInvalidCoordinates):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company registered successfully",
		"company": company,
	})
}
