package services

import (
	"fmt"
	"strings"

	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
)

// CompanyService handles organization registration.
type CompanyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companies repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// RegisterCompanyInput represents the organization registration payload.
type RegisterCompanyInput struct {
	Name          string
	IndustryType  string
	BusinessEmail []string
	ContactNos    []string
	CompanySize   string
	FullAddress   string
	WorkForceType []string
	Pincode       string
	ELoc          string
	Coordinates   models.Coordinates
}

// Register creates a company record. Both scalar required fields and the
// contact lists must be non-empty; empty lists are rejected rather than
// carrying forward the original required-on-array gap.
func (s *CompanyService) Register(input RegisterCompanyInput) (*models.Company, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.IndustryType) == "" {
		missing = append(missing, "industryType")
	}
	if len(input.BusinessEmail) == 0 {
		missing = append(missing, "businessEmail")
	}
	if len(input.ContactNos) == 0 {
		missing = append(missing, "contactNos")
	}
	if strings.TrimSpace(input.CompanySize) == "" {
		missing = append(missing, "companySize")
	}
	if strings.TrimSpace(input.FullAddress) == "" {
		missing = append(missing, "fullAddress")
	}
	if len(missing) > 0 {
		return nil, newValidationError(missing...)
	}

	if err := input.Coordinates.Validate(); err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:          strings.TrimSpace(input.Name),
		IndustryType:  strings.TrimSpace(input.IndustryType),
		BusinessEmail: models.StringList(input.BusinessEmail),
		ContactNos:    models.StringList(input.ContactNos),
		CompanySize:   strings.TrimSpace(input.CompanySize),
		FullAddress:   strings.TrimSpace(input.FullAddress),
		WorkForceType: models.StringList(input.WorkForceType),
		Pincode:       input.Pincode,
		ELoc:          input.ELoc,
	}
	if len(input.Coordinates) == 2 {
		company.Coordinates = input.Coordinates
	}

	if err := s.companies.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}
