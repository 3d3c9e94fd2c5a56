package main

import (
	"log"
	"os"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Admin User...")
	seedAdmin(db)

	log.Println("Seeding Course Catalog...")
	seedCourses(db)

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)

	log.Println("Seeding completed!")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@e-shikshan.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Println("Warn: SEED_ADMIN_PASSWORD not set, using default. Change it.")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing admin password: %v", err)
	}
	hashStr := string(hash)

	admin := model.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Platform Admin",
		Role:         "admin",
		Status:       "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
	} else {
		log.Printf("Created admin user: %s", email)
	}
}

func seedCourses(db *gorm.DB) {
	var owner model.User
	if err := db.Where("role = ?", "admin").First(&owner).Error; err != nil {
		log.Println("Warn: no admin user found, skipping course seed")
		return
	}

	courses := []model.Course{
		{Title: "Introduction to Vedic Mathematics", Slug: "intro-vedic-mathematics", Description: "Mental calculation techniques for competitive exams", Price: 0, IsFree: true, IsPublished: true},
		{Title: "Class 10 Science Crash Course", Slug: "class-10-science-crash", Description: "Complete CBSE Class 10 science syllabus in 30 days", Price: 499, IsPublished: true},
		{Title: "Spoken English Foundation", Slug: "spoken-english-foundation", Description: "Daily conversation practice with recorded sessions", Price: 299, IsPublished: true},
	}

	for _, c := range courses {
		var existing model.Course
		if err := db.Where("slug = ?", c.Slug).First(&existing).Error; err == nil {
			log.Printf("Course '%s' already exists, skipping...", c.Slug)
			continue
		}

		c.OwnerId = owner.Id
		c.OwnerName = owner.FullName
		c.OwnerEmail = owner.Email
		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating course '%s': %v", c.Slug, err)
		} else {
			log.Printf("Created course: %s (%s)", c.Title, c.Slug)
		}
	}
}
