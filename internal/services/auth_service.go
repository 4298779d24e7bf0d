package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/crewzy/workforce-api/internal/auth"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so the response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be admin or employee")
	ErrInvalidWorkType    = errors.New("workType must be office or hybrid")
)

// Redirect hints computed at login. Advisory only, never an authorization
// decision.
const (
	RedirectAdmin    = "/admin-dashboard"
	RedirectOffice   = "/office"
	RedirectHybrid   = "/hybrid"
	RedirectEmployee = "/employee-dashboard"
	RedirectDefault  = "/dashboard"
)

// AuthService handles signup and login.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// SignupInput represents the information required to create a new user.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	Role         models.Role
	Organization string
	SubRole      string
	WorkType     models.WorkType
	FullAddress  string
	Pincode      string
	ELoc         string
	Coordinates  models.Coordinates
	Skills       []string
}

// Signup validates the input, persists the user and issues a token.
func (s *AuthService) Signup(input SignupInput) (*models.User, string, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if input.Role == "" {
		missing = append(missing, "role")
	}
	if strings.TrimSpace(input.Organization) == "" {
		missing = append(missing, "organization")
	}
	if len(missing) > 0 {
		return nil, "", newValidationError(missing...)
	}

	if !input.Role.Valid() {
		return nil, "", ErrInvalidRole
	}
	if !input.WorkType.Valid() {
		return nil, "", ErrInvalidWorkType
	}
	if err := input.Coordinates.Validate(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Organization: strings.TrimSpace(input.Organization),
		SubRole:      input.SubRole,
		WorkType:     input.WorkType,
		Skills:       models.StringList(input.Skills),
	}

	// Location fields are only recorded for employees; admins register without
	// a tracked work location.
	if input.Role == models.RoleEmployee {
		user.FullAddress = input.FullAddress
		user.Pincode = input.Pincode
		user.ELoc = input.ELoc
		if len(input.Coordinates) == 2 {
			user.Coordinates = input.Coordinates
		}
	}

	if err := s.users.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials, issues a fresh token and computes the redirect
// hint for the client.
func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, "", "", newValidationError(missing...)
	}

	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, redirectPathFor(user), nil
}

func redirectPathFor(user *models.User) string {
	switch user.Role {
	case models.RoleAdmin:
		return RedirectAdmin
	case models.RoleEmployee:
		switch user.WorkType {
		case models.WorkTypeOffice:
			return RedirectOffice
		case models.WorkTypeHybrid:
			return RedirectHybrid
		default:
			return RedirectEmployee
		}
	default:
		return RedirectDefault
	}
}
