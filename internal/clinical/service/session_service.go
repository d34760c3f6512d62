package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/events"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/model"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/repository"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrNotParticipant  = errors.New("user is not a participant of this session")
)

type CreateSessionInput struct {
	DoctorID      int64
	PatientID     int64
	Date          time.Time
	Movements     json.RawMessage
	VitalSignsAvg json.RawMessage
}

type SessionService interface {
	CreateSession(ctx context.Context, callerID int64, in CreateSessionInput) (sessionID int64, movementID int64, err error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	publisher   events.EventPublisher
}

func NewSessionService(sessionRepo repository.SessionRepository, profileRepo repository.ProfileRepository, pub events.EventPublisher) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		publisher:   pub,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, callerID int64, in CreateSessionInput) (int64, int64, error) {
	doctor, err := s.profileRepo.FindDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return 0, 0, err
	}
	if doctor == nil {
		return 0, 0, ErrDoctorNotFound
	}

	patient, err := s.profileRepo.FindPatientByID(ctx, in.PatientID)
	if err != nil {
		return 0, 0, err
	}
	if patient == nil {
		return 0, 0, ErrPatientNotFound
	}

	if callerID != doctor.UserID && callerID != patient.UserID {
		return 0, 0, ErrNotParticipant
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	session := &model.Session{
		DoctorID:      in.DoctorID,
		PatientID:     in.PatientID,
		Date:          date,
		VitalSignsAvg: in.VitalSignsAvg,
	}

	sessionID, movementID, err := s.sessionRepo.CreateWithMovement(ctx, session, in.Movements)
	if err != nil {
		return 0, 0, err
	}

	go s.publisher.PublishSessionCreated(&events.SessionCreatedEvent{
		SessionID:  sessionID,
		MovementID: movementID,
		DoctorID:   in.DoctorID,
		PatientID:  in.PatientID,
		Date:       date,
	})

	return sessionID, movementID, nil
}
