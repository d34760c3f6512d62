package model

import (
	"time"
)

const (
	UserTypeDoctor  = "doctor"
	UserTypePatient = "patient"
)

type User struct {
	ID           int64     `db:"id"`
	CPF          string    `db:"cpf"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	BirthDate    string    `db:"birth_date"`
	Gender       string    `db:"gender"`
	Type         string    `db:"type"`
	PasswordHash string    `db:"password_hash"`
	Status       bool      `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Doctor struct {
	ID         int64   `db:"id"`
	UserID     int64   `db:"user_id"`
	Clinic     string  `db:"clinic"`
	Speciality *string `db:"speciality"`
}

type Patient struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
}
