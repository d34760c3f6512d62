package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type EventPublisher interface {
	PublishIngestCompleted(event *IngestCompletedEvent) error
}

type IngestCompletedEvent struct {
	EventID             uuid.UUID `json:"event_id"`
	EventType           string    `json:"event_type"`
	BairrosCriados      int       `json:"bairros_criados"`
	MedicoesProcessadas int       `json:"medicoes_processadas"`
	Erros               int       `json:"erros"`
	CompletedAt         time.Time `json:"completed_at"`
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

func (p *NatsPublisher) PublishIngestCompleted(event *IngestCompletedEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	event.EventType = "ingest.completed"
	if event.CompletedAt.IsZero() {
		event.CompletedAt = time.Now().UTC()
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "error", err)
		return err
	}

	subject := "ingest.completed"
	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject, "medicoes", event.MedicoesProcessadas)

	return nil
}

type NoopPublisher struct{}

func (NoopPublisher) PublishIngestCompleted(*IngestCompletedEvent) error { return nil }
