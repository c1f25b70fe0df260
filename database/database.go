package database

import (
	"fmt"
	"log"

	config "github.com/solacecare/counseling_backend/configs"
	"github.com/solacecare/counseling_backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Coupon{},
		&models.Session{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FirstName: config.Config("ADMIN_FIRST_NAME"),
		LastName:  config.Config("ADMIN_LAST_NAME"),
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

func SeedServices() {
	var count int64
	if err := DB.Model(&models.Service{}).Count(&count).Error; err != nil {
		log.Printf("🔥 Failed to check service catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	services := []models.Service{
		{
			Name:        "Buddy Sessions",
			Description: "For when you just need someone to listen without judgment.",
			Details:     "Our trained Buddies are empathetic listeners here to support you in a friendly, casual conversation. No advice, no fixing — just presence and compassion.",
			GreatFor:    "Venting, emotional release, light talk",
			Duration:    45,
			Price:       499,
			Mode:        "phone-call",
			Tags:        []string{"affordable", "chat", "call"},
		},
		{
			Name:        "Mentor Sessions",
			Description: "For guidance, clarity, and structured life support.",
			Details:     "Our Mentors help you navigate specific challenges — like stress, purpose, relationships, or goals — with personal development tools and practical insights.",
			GreatFor:    "Career confusion, life purpose, motivation",
			Duration:    45,
			Price:       999,
			Mode:        "video-meeting",
			Tags:        []string{"mid-range", "call", "video"},
		},
		{
			Name:        "Psychologist Sessions",
			Description: "For in-depth mental health support by professionals.",
			Details:     "Licensed psychologists and trained mental health experts to support deeper issues like anxiety, depression, trauma, grief, or emotional regulation.",
			GreatFor:    "Diagnosed or undiagnosed emotional/mental concerns",
			Duration:    45,
			Price:       1499,
			Mode:        "video-meeting",
			Tags:        []string{"premium", "video"},
		},
	}

	if err := DB.Create(&services).Error; err != nil {
		log.Printf("🔥 Failed to seed service catalog: %v", err)
		return
	}
	log.Println("✅ Service catalog seeded successfully")
}
