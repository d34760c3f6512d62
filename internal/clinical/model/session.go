package model

import (
	"encoding/json"
	"time"
)

type Session struct {
	ID            int64           `db:"id"`
	DoctorID      int64           `db:"doctor_id"`
	PatientID     int64           `db:"patient_id"`
	Date          time.Time       `db:"date"`
	VitalSignsAvg json.RawMessage `db:"vital_signs_avg"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Movement holds one opaque motion-capture payload tied to a session.
type Movement struct {
	ID        int64           `db:"id"`
	SessionID int64           `db:"session_id"`
	Payload   json.RawMessage `db:"payload"`
}
