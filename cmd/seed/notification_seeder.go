package main

import (
	"log"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "ENROLLMENT_CREATED",
			DisplayName: "Enrollment Created",
			Template:    "You enrolled in \"{course_title}\"",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "PAYMENT_VERIFIED",
			DisplayName: "Payment Verified",
			Template:    "Payment confirmed for \"{course_title}\". Reference: {transaction_ref}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		// Admin access changes go to both parties (learner + course owner),
		// so the inbox copy names the student rather than saying "you".
		{
			Code:        "ACCESS_GRANTED",
			DisplayName: "Access Granted",
			Template:    "Access to \"{course_title}\" granted for {student_name}",
			TargetType:  "PARTIES",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "ACCESS_REVOKED",
			DisplayName: "Access Revoked",
			Template:    "Access to \"{course_title}\" for {student_name} was suspended. Reason: {reason}",
			TargetType:  "PARTIES",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "ACCESS_RESTORED",
			DisplayName: "Access Restored",
			Template:    "Access to \"{course_title}\" for {student_name} was restored",
			TargetType:  "PARTIES",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "ENROLLMENT_DELETED",
			DisplayName: "Enrollment Removed",
			Template:    "Enrollment of {student_name} in \"{course_title}\" was removed. Reason: {reason}",
			TargetType:  "PARTIES",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		// --- Administrative Notifications ---
		{
			Code:        "PAYMENT_SUBMITTED",
			DisplayName: "Payment Awaiting Review",
			Template:    "New payment reference submitted for \"{course_title}\" by {student_email}",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
	}

	for _, t := range types {
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Notification types seeded successfully.")
}
