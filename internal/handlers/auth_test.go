package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crewzy/workforce-api/internal/auth"
	"github.com/crewzy/workforce-api/internal/database"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
	"github.com/crewzy/workforce-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewManager("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/v1/auth/signup", handler.Signup)
	r.POST("/api/v1/auth/login", handler.Login)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func (env authTestEnv) post(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/v1/auth/signup", map[string]any{
		"name":         "Asha Verma",
		"email":        "Asha@Example.com",
		"password":     "supersecret",
		"role":         "employee",
		"organization": "Acme",
		"workType":     "hybrid",
		"skills":       []string{"electrical"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response["token"])

	user := response["user"].(map[string]any)
	require.Equal(t, "asha@example.com", user["email"], "email should be stored lowercased")
	require.Equal(t, "employee", user["role"])

	// Password must be hashed, never stored or echoed verbatim
	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "asha@example.com").First(&stored).Error)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.NotContains(t, w.Body.String(), "supersecret")
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/v1/auth/signup", map[string]any{
		"email": "nobody@example.com",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	details := response["details"].([]any)
	require.ElementsMatch(t, []any{"name", "password", "role", "organization"}, details)
}

func TestAuthHandler_Signup_DuplicateEmailCaseInsensitive(t *testing.T) {
	env := setupAuthTestEnv(t)

	first := env.post(t, "/api/v1/auth/signup", map[string]any{
		"name":         "First",
		"email":        "Dup@Example.com",
		"password":     "supersecret",
		"role":         "admin",
		"organization": "Acme",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.post(t, "/api/v1/auth/signup", map[string]any{
		"name":         "Second",
		"email":        "dup@example.COM",
		"password":     "othersecret",
		"role":         "employee",
		"organization": "Acme",
	})
	require.Equal(t, http.StatusBadRequest, second.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response))
	require.Equal(t, "DUPLICATE_EMAIL", response["code"])
}

func TestAuthHandler_Signup_AdminLocationIgnored(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/v1/auth/signup", map[string]any{
		"name":         "Boss",
		"email":        "boss@example.com",
		"password":     "supersecret",
		"role":         "admin",
		"organization": "Acme",
		"fullAddress":  "1 Main St",
		"coordinates":  []float64{77.59, 12.97},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "boss@example.com").First(&stored).Error)
	require.Empty(t, stored.FullAddress)
	require.Empty(t, stored.Coordinates)
}

func TestAuthHandler_Login_RedirectPaths(t *testing.T) {
	env := setupAuthTestEnv(t)

	cases := []struct {
		name     string
		role     models.Role
		workType models.WorkType
		want     string
	}{
		{"admin", models.RoleAdmin, "", "/admin-dashboard"},
		{"office employee", models.RoleEmployee, models.WorkTypeOffice, "/office"},
		{"hybrid employee", models.RoleEmployee, models.WorkTypeHybrid, "/hybrid"},
		{"employee without work type", models.RoleEmployee, "", "/employee-dashboard"},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email := "user" + string(rune('a'+i)) + "@example.com"
			_, _, err := env.authService.Signup(services.SignupInput{
				Name:         "User",
				Email:        email,
				Password:     "supersecret",
				Role:         tc.role,
				Organization: "Acme",
				WorkType:     tc.workType,
			})
			require.NoError(t, err)

			w := env.post(t, "/api/v1/auth/login", map[string]any{
				"email":    email,
				"password": "supersecret",
			})

			require.Equal(t, http.StatusOK, w.Code)

			var response map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			require.Equal(t, tc.want, response["redirectPath"])
			require.NotEmpty(t, response["token"])
		})
	}
}

func TestAuthHandler_Login_NoCredentialLeak(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Signup(services.SignupInput{
		Name:         "Known",
		Email:        "known@example.com",
		Password:     "supersecret",
		Role:         models.RoleEmployee,
		Organization: "Acme",
	})
	require.NoError(t, err)

	unknownEmail := env.post(t, "/api/v1/auth/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	wrongPassword := env.post(t, "/api/v1/auth/login", map[string]any{
		"email":    "known@example.com",
		"password": "not-the-password",
	})

	require.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(unknownEmail.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &b))
	require.Equal(t, a["message"], b["message"],
		"error message must not reveal whether the email exists")
}
