// Bootstrap script to create the first admin account
// cmd/seed-admin/main.go
package main

import (
	"college-portal-api/config"
	"college-portal-api/models"
	"college-portal-api/utils"
	"flag"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "initial admin password")
	firstName := flag.String("first-name", "Portal", "admin first name")
	lastName := flag.String("last-name", "Admin", "admin last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: seed-admin -email admin@college.edu -password <password>")
	}
	if !utils.ValidateEmail(*email) {
		log.Fatalf("Invalid email address: %s", *email)
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing int64
	config.DB.Model(&models.User{}).
		Where("email = ? AND deleted_at IS NULL", *email).
		Count(&existing)
	if existing > 0 {
		log.Fatalf("A user with email %s already exists", *email)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  hashed,
		RoleID:    models.RoleAdmin,
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Admin user %s created (user_id=%d)", admin.Email, admin.UserID)
}
