package main

import (
	"log"
	"os"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		// gen_random_uuid() lives in pgcrypto on PG < 13
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.EnrollmentAuditLog{},
		&model.NotificationType{},
		&model.Notification{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Constraints GORM tags can't express
	log.Println("Step 3: Applying check constraints...")

	postMigrationSQL := []string{
		// Enrollment state columns are closed sets; reject anything else at the DB
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_enrollments_payment_status') THEN
		     ALTER TABLE enrollments ADD CONSTRAINT chk_enrollments_payment_status
		       CHECK (payment_status IN ('free', 'pending', 'completed'));
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_enrollments_status') THEN
		     ALTER TABLE enrollments ADD CONSTRAINT chk_enrollments_status
		       CHECK (status IN ('active', 'suspended'));
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_enrollments_payment_method') THEN
		     ALTER TABLE enrollments ADD CONSTRAINT chk_enrollments_payment_method
		       CHECK (payment_method IN ('none', 'upi', 'admin_granted'));
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_courses_student_count') THEN
		     ALTER TABLE courses ADD CONSTRAINT chk_courses_student_count
		       CHECK (student_count >= 0);
		   END IF;
		 END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
