package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/model"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/repository"
)

const seedPassword = "123456"

// handleSeed populates the database with one doctor and one patient so the
// prototype can be exercised right after migrating. It is idempotent: if the
// doctor account already exists nothing is written.
func handleSeed() {
	db := connectDB()
	defer db.Close()

	ctx := context.Background()
	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	existing, err := userRepo.FindByEmail(ctx, "doctor@gmail.com")
	if err != nil {
		log.Fatalf("seed: failed to check existing data: %v", err)
	}
	if existing != nil {
		fmt.Println("Seed data already exists, aborting.")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: failed to hash password: %v", err)
	}

	doctorUserID, err := userRepo.Create(ctx, &model.User{
		CPF:          "111.111.111-11",
		Name:         "Dr. João Silva",
		Email:        "doctor@gmail.com",
		BirthDate:    "01/01/1980",
		Gender:       "M",
		Type:         model.UserTypeDoctor,
		PasswordHash: string(passwordHash),
		Status:       true,
	})
	if err != nil {
		log.Fatalf("seed: failed to create doctor user: %v", err)
	}

	speciality := "Ortopedia"
	doctorID, err := profileRepo.CreateDoctor(ctx, &model.Doctor{
		UserID:     doctorUserID,
		Clinic:     "Clínica Saúde Plena",
		Speciality: &speciality,
	})
	if err != nil {
		log.Fatalf("seed: failed to create doctor profile: %v", err)
	}

	patientUserID, err := userRepo.Create(ctx, &model.User{
		CPF:          "222.222.222-22",
		Name:         "Maria Oliveira",
		Email:        "patient@gmail.com",
		BirthDate:    "15/05/1992",
		Gender:       "F",
		Type:         model.UserTypePatient,
		PasswordHash: string(passwordHash),
		Status:       true,
	})
	if err != nil {
		log.Fatalf("seed: failed to create patient user: %v", err)
	}

	patientID, err := profileRepo.CreatePatient(ctx, &model.Patient{UserID: patientUserID})
	if err != nil {
		log.Fatalf("seed: failed to create patient profile: %v", err)
	}

	fmt.Printf("Seeded doctor with id %d and patient with id %d\n", doctorID, patientID)
}
