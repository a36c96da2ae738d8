// Seeds the first back-office admin account from ADMIN_EMAIL, ADMIN_PASSWORD
// and ADMIN_NAME. Idempotent: an existing account with the same email wins.
package main

import (
	"context"
	"log"
	"os"

	"quizadmin/internal/config"
	"quizadmin/internal/models"
	"quizadmin/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := os.Getenv("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}
	if adminName == "" {
		adminName = "Administrator"
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	adminRepo := repositories.NewAdminRepository(repositories.DB)
	if _, err := adminRepo.GetByEmail(context.Background(), adminEmail); err == nil {
		log.Println("Admin account already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.Admin{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Name:     adminName,
		Role:     "admin",
		Status:   "active",
	}
	if err := adminRepo.Create(context.Background(), &admin); err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	log.Println("Admin account created successfully")
}
