package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crewzy/workforce-api/internal/database"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
	"github.com/crewzy/workforce-api/internal/services"
)

func setupCompanyTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Company{}))
	database.SetDB(db)

	handler := NewCompanyHandler(services.NewCompanyService(repository.NewCompanyRepository(db)))

	r := gin.New()
	r.POST("/api/v1/company/register", handler.Register)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db, r
}

func postCompany(t *testing.T, r *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/company/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCompanyRegister(t *testing.T) {
	db, r := setupCompanyTest(t)

	w := postCompany(t, r, map[string]any{
		"name":          "Crewzy Services",
		"industryType":  "Field Services",
		"businessEmail": []string{"ops@crewzy.example", "hr@crewzy.example"},
		"contactNos":    []string{"9876543210"},
		"companySize":   "51-200",
		"fullAddress":   "14 MG Road, Bengaluru",
		"workForceType": []string{"office", "hybrid"},
		"coordinates":   []float64{77.5946, 12.9716},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	company := response["company"].(map[string]any)
	require.Equal(t, "Crewzy Services", company["name"])

	var stored models.Company
	require.NoError(t, db.First(&stored).Error)
	require.Equal(t, models.StringList{"ops@crewzy.example", "hr@crewzy.example"}, stored.BusinessEmail)
	require.Len(t, stored.Coordinates, 2)
}

func TestCompanyRegister_OptionalLocationFields(t *testing.T) {
	db, r := setupCompanyTest(t)

	w := postCompany(t, r, map[string]any{
		"name":          "Minimal Co",
		"industryType":  "Retail",
		"businessEmail": []string{"hello@minimal.example"},
		"contactNos":    []string{"1234567890"},
		"companySize":   "1-10",
		"fullAddress":   "2 Side Street",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Company
	require.NoError(t, db.First(&stored).Error)
	require.Empty(t, stored.Pincode)
	require.Empty(t, stored.ELoc)
	require.Empty(t, stored.Coordinates)
}

func TestCompanyRegister_MissingScalarFields(t *testing.T) {
	_, r := setupCompanyTest(t)

	w := postCompany(t, r, map[string]any{
		"businessEmail": []string{"hello@x.example"},
		"contactNos":    []string{"1234567890"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	details := response["details"].([]any)
	require.ElementsMatch(t, []any{"name", "industryType", "companySize", "fullAddress"}, details)
}

func TestCompanyRegister_EmptyContactListsRejected(t *testing.T) {
	_, r := setupCompanyTest(t)

	w := postCompany(t, r, map[string]any{
		"name":          "No Contacts",
		"industryType":  "Retail",
		"businessEmail": []string{},
		"contactNos":    []string{},
		"companySize":   "1-10",
		"fullAddress":   "2 Side Street",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	details := response["details"].([]any)
	require.ElementsMatch(t, []any{"businessEmail", "contactNos"}, details)
}

func TestCompanyRegister_InvalidCoordinates(t *testing.T) {
	_, r := setupCompanyTest(t)

	w := postCompany(t, r, map[string]any{
		"name":          "Bad Coords",
		"industryType":  "Retail",
		"businessEmail": []string{"hello@x.example"},
		"contactNos":    []string{"1234567890"},
		"companySize":   "1-10",
		"fullAddress":   "2 Side Street",
		"coordinates":   []float64{77.5946},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}
