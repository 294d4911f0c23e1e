package testutil

import (
	"os"
	"testing"

	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// SetupTestDB creates an in-memory SQLite database with the full schema and
// installs it as the active database. Returns the handle for direct seeding.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Order{},
		&models.OrderService{},
		&models.OrderItem{},
		&models.Tracking{},
		&models.TrackingStep{},
		&models.Driver{},
		&models.SystemSettings{},
		&models.ServiceArea{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// CloseTestDB releases the underlying connection of an in-memory database
func CloseTestDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// SeedService inserts a laundry service into the catalog
func SeedService(t *testing.T, db *gorm.DB, name string, pricePerKg float64) models.Service {
	t.Helper()

	svc := models.Service{
		Name:               name,
		Description:        name + " service",
		PricePerKg:         pricePerKg,
		Icon:               "washing-machine",
		Available:          true,
		EstimatedTimeHours: 24,
	}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("Failed to seed service: %v", err)
	}
	return svc
}
