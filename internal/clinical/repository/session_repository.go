package repository

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/model"
)

type SessionRepository interface {
	// CreateWithMovement inserts a session and its movement payload in one
	// transaction and returns both generated ids.
	CreateWithMovement(ctx context.Context, session *model.Session, movements json.RawMessage) (sessionID int64, movementID int64, err error)
}

type postgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) CreateWithMovement(ctx context.Context, session *model.Session, movements json.RawMessage) (int64, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	var sessionID int64
	sessionQuery := `INSERT INTO sessions (doctor_id, patient_id, date, vital_signs_avg) VALUES ($1, $2, $3, $4) RETURNING id`
	err = tx.QueryRowxContext(ctx, sessionQuery,
		session.DoctorID, session.PatientID, session.Date, session.VitalSignsAvg,
	).Scan(&sessionID)
	if err != nil {
		return 0, 0, err
	}

	var movementID int64
	movementQuery := `INSERT INTO movements (session_id, payload) VALUES ($1, $2) RETURNING id`
	err = tx.QueryRowxContext(ctx, movementQuery, sessionID, movements).Scan(&movementID)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}

	return sessionID, movementID, nil
}
