package main

import (
	"log"
	"os"

	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Admin
	login := os.Getenv("ADMIN_LOGIN")
	if login == "" {
		login = "admin"
	}
	var user model.User
	if err := db.Unscoped().Where("login = ?", login).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", login, err)
	}

	// 4. Hash new password
	newPassword := os.Getenv("ADMIN_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", login)
}
