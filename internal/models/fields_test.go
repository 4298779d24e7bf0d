package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Company{}, &Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestCoordinates_Validate(t *testing.T) {
	require.NoError(t, Coordinates(nil).Validate())
	require.NoError(t, Coordinates{}.Validate())
	require.NoError(t, Coordinates{77.5946, 12.9716}.Validate())
	require.ErrorIs(t, Coordinates{77.5946}.Validate(), ErrInvalidCoordinates)
	require.ErrorIs(t, Coordinates{1, 2, 3}.Validate(), ErrInvalidCoordinates)
}

func TestCoordinates_RoundTripThroughDB(t *testing.T) {
	db := openModelTestDB(t)

	user := &User{
		Name:         "Located",
		Email:        "located@example.com",
		PasswordHash: "hash",
		Role:         RoleEmployee,
		Organization: "Acme",
		Coordinates:  Coordinates{77.5946, 12.9716},
		Skills:       StringList{"plumbing", "electrical"},
	}
	require.NoError(t, db.Create(user).Error)

	var stored User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, Coordinates{77.5946, 12.9716}, stored.Coordinates)
	require.Equal(t, StringList{"plumbing", "electrical"}, stored.Skills)
}

func TestCoordinates_EmptyStoredAsNull(t *testing.T) {
	db := openModelTestDB(t)

	user := &User{
		Name:         "Nowhere",
		Email:        "nowhere@example.com",
		PasswordHash: "hash",
		Role:         RoleAdmin,
		Organization: "Acme",
	}
	require.NoError(t, db.Create(user).Error)

	var stored User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Empty(t, stored.Coordinates)
}

func TestBeforeSave_RejectsMalformedCoordinates(t *testing.T) {
	db := openModelTestDB(t)

	user := &User{
		Name:         "Broken",
		Email:        "broken@example.com",
		PasswordHash: "hash",
		Role:         RoleEmployee,
		Organization: "Acme",
		Coordinates:  Coordinates{77.5946},
	}
	require.ErrorIs(t, db.Create(user).Error, ErrInvalidCoordinates)

	task := &Task{
		Name:         "Broken visit",
		ContactNo:    "9999999999",
		FullAddress:  "1 Main St",
		Details:      "Check wiring",
		Status:       TaskStatusNew,
		ExpectedDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Coordinates:  Coordinates{1, 2, 3},
	}
	require.ErrorIs(t, db.Create(task).Error, ErrInvalidCoordinates)

	company := &Company{
		Name:          "Broken Co",
		IndustryType:  "Retail",
		BusinessEmail: StringList{"x@example.com"},
		ContactNos:    StringList{"1234567890"},
		CompanySize:   "1-10",
		FullAddress:   "2 Side Street",
		Coordinates:   Coordinates{12.97},
	}
	require.ErrorIs(t, db.Create(company).Error, ErrInvalidCoordinates)
}

func TestTaskStatus_Valid(t *testing.T) {
	for _, status := range TaskStatuses {
		require.True(t, status.Valid(), string(status))
	}
	require.False(t, TaskStatus("paused").Valid())
	require.False(t, TaskStatus("").Valid())
}

func TestRoleAndWorkType_Valid(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleEmployee.Valid())
	require.False(t, Role("manager").Valid())

	require.True(t, WorkTypeOffice.Valid())
	require.True(t, WorkTypeHybrid.Valid())
	require.True(t, WorkType("").Valid(), "work type is optional")
	require.False(t, WorkType("remote").Valid())
}
