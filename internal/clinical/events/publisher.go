package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// EventPublisher hands finished clinical work off to the cloud side. Delivery
// is best effort: callers fire it in the background and failures never bubble
// into the request that produced the event.
type EventPublisher interface {
	PublishSessionCreated(event *SessionCreatedEvent) error
}

type SessionCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	SessionID  int64     `json:"session_id"`
	MovementID int64     `json:"movement_id"`
	DoctorID   int64     `json:"doctor_id"`
	PatientID  int64     `json:"patient_id"`
	Date       time.Time `json:"date"`
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) PublishSessionCreated(event *SessionCreatedEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	event.EventType = "session.created"

	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "error", err)
		return err
	}

	subject := "session.created"
	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject, "session_id", event.SessionID)

	return nil
}

// NoopPublisher stands in when no broker is configured; sessions are still
// created, nothing leaves the process.
type NoopPublisher struct{}

func (NoopPublisher) PublishSessionCreated(*SessionCreatedEvent) error { return nil }
