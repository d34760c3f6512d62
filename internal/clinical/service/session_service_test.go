package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/events"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/model"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/service"
)

type fakeProfileRepo struct {
	doctors  map[int64]*model.Doctor
	patients map[int64]*model.Patient
}

func (f *fakeProfileRepo) CreateDoctor(ctx context.Context, doctor *model.Doctor) (int64, error) {
	return 0, nil
}

func (f *fakeProfileRepo) CreatePatient(ctx context.Context, patient *model.Patient) (int64, error) {
	return 0, nil
}

func (f *fakeProfileRepo) FindDoctorByID(ctx context.Context, id int64) (*model.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeProfileRepo) FindPatientByID(ctx context.Context, id int64) (*model.Patient, error) {
	return f.patients[id], nil
}

type fakeSessionRepo struct {
	gotSession   *model.Session
	gotMovements json.RawMessage
}

func (f *fakeSessionRepo) CreateWithMovement(ctx context.Context, session *model.Session, movements json.RawMessage) (int64, int64, error) {
	f.gotSession = session
	f.gotMovements = movements
	return 10, 20, nil
}

type spyPublisher struct {
	published chan *events.SessionCreatedEvent
}

func (s *spyPublisher) PublishSessionCreated(event *events.SessionCreatedEvent) error {
	s.published <- event
	return nil
}

func newFixture() (*fakeProfileRepo, *fakeSessionRepo, *spyPublisher) {
	profiles := &fakeProfileRepo{
		doctors:  map[int64]*model.Doctor{1: {ID: 1, UserID: 100}},
		patients: map[int64]*model.Patient{2: {ID: 2, UserID: 200}},
	}
	return profiles, &fakeSessionRepo{}, &spyPublisher{published: make(chan *events.SessionCreatedEvent, 1)}
}

func TestSessionService_CreateSession_AsDoctor(t *testing.T) {
	profiles, sessions, publisher := newFixture()
	s := service.NewSessionService(sessions, profiles, publisher)

	in := service.CreateSessionInput{
		DoctorID:  1,
		PatientID: 2,
		Movements: json.RawMessage(`{"frames": [1, 2]}`),
	}

	sessionID, movementID, err := s.CreateSession(context.Background(), 100, in)
	require.NoError(t, err)
	require.Equal(t, int64(10), sessionID)
	require.Equal(t, int64(20), movementID)
	require.JSONEq(t, `{"frames": [1, 2]}`, string(sessions.gotMovements))
	require.False(t, sessions.gotSession.Date.IsZero())

	select {
	case event := <-publisher.published:
		require.Equal(t, int64(10), event.SessionID)
		require.Equal(t, int64(20), event.MovementID)
	case <-time.After(time.Second):
		t.Fatal("expected a session.created event")
	}
}

func TestSessionService_CreateSession_AsPatient(t *testing.T) {
	profiles, sessions, publisher := newFixture()
	s := service.NewSessionService(sessions, profiles, publisher)

	_, _, err := s.CreateSession(context.Background(), 200, service.CreateSessionInput{
		DoctorID:  1,
		PatientID: 2,
		Movements: json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	<-publisher.published
}

func TestSessionService_CreateSession_UnknownDoctor(t *testing.T) {
	profiles, sessions, publisher := newFixture()
	s := service.NewSessionService(sessions, profiles, publisher)

	_, _, err := s.CreateSession(context.Background(), 100, service.CreateSessionInput{
		DoctorID:  99,
		PatientID: 2,
		Movements: json.RawMessage(`{}`),
	})
	require.ErrorIs(t, err, service.ErrDoctorNotFound)
}

func TestSessionService_CreateSession_UnknownPatient(t *testing.T) {
	profiles, sessions, publisher := newFixture()
	s := service.NewSessionService(sessions, profiles, publisher)

	_, _, err := s.CreateSession(context.Background(), 100, service.CreateSessionInput{
		DoctorID:  1,
		PatientID: 99,
		Movements: json.RawMessage(`{}`),
	})
	require.ErrorIs(t, err, service.ErrPatientNotFound)
}

func TestSessionService_CreateSession_NotParticipant(t *testing.T) {
	profiles, sessions, publisher := newFixture()
	s := service.NewSessionService(sessions, profiles, publisher)

	_, _, err := s.CreateSession(context.Background(), 300, service.CreateSessionInput{
		DoctorID:  1,
		PatientID: 2,
		Movements: json.RawMessage(`{}`),
	})
	require.ErrorIs(t, err, service.ErrNotParticipant)
}
