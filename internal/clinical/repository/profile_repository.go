package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/model"
)

// ProfileRepository covers the doctor and patient profile rows that hang off
// a user record.
type ProfileRepository interface {
	CreateDoctor(ctx context.Context, doctor *model.Doctor) (int64, error)
	CreatePatient(ctx context.Context, patient *model.Patient) (int64, error)
	FindDoctorByID(ctx context.Context, id int64) (*model.Doctor, error)
	FindPatientByID(ctx context.Context, id int64) (*model.Patient, error)
}

type postgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) CreateDoctor(ctx context.Context, doctor *model.Doctor) (int64, error) {
	query := `INSERT INTO doctors (user_id, clinic, speciality) VALUES ($1, $2, $3) RETURNING id`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query, doctor.UserID, doctor.Clinic, doctor.Speciality).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (r *postgresProfileRepository) CreatePatient(ctx context.Context, patient *model.Patient) (int64, error) {
	query := `INSERT INTO patients (user_id) VALUES ($1) RETURNING id`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query, patient.UserID).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (r *postgresProfileRepository) FindDoctorByID(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	query := `SELECT id, user_id, clinic, speciality FROM doctors WHERE id = $1`
	err := r.db.GetContext(ctx, &doctor, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &doctor, nil
}

func (r *postgresProfileRepository) FindPatientByID(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	query := `SELECT id, user_id FROM patients WHERE id = $1`
	err := r.db.GetContext(ctx, &patient, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &patient, nil
}
