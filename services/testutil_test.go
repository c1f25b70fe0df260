package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solacecare/counseling_backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Serialize writes: in-memory sqlite cannot handle concurrent writers.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Service{}, &models.Coupon{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := models.User{
		FirstName: "Test",
		LastName:  role,
		Email:     role + "-" + uuid.NewString() + "@example.com",
		Password:  "hashed",
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestService(t *testing.T, db *gorm.DB, price float64) *models.Service {
	t.Helper()

	service := models.Service{
		Name:        "Talk to a Mentor",
		Description: "One on one guidance session",
		Duration:    45,
		Price:       price,
		Mode:        "video-meeting",
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return &service
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	t.Helper()

	// GORM replaces zero-valued fields with their `default` tag value on
	// insert (and writes it back to the struct), so IsActive=false would be
	// stored as true; remember the requested value and write the column
	// explicitly to keep the fixture faithful.
	isActive := coupon.IsActive
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("failed to create test coupon: %v", err)
	}
	if err := db.Model(&models.Coupon{}).Where("id = ?", coupon.ID).Update("is_active", isActive).Error; err != nil {
		t.Fatalf("failed to set coupon active flag: %v", err)
	}
	coupon.IsActive = isActive
	return &coupon
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }
func timePtr(tm time.Time) *time.Time {
	return &tm
}
