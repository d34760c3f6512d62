package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/events"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/repository"
)

// IngestResult is the body returned to the caller: partial failures ride in
// Erros next to the counts instead of failing the request.
type IngestResult struct {
	BairrosCriados      int           `json:"bairros_criados"`
	MedicoesProcessadas int           `json:"medicoes_processadas"`
	Erros               []IngestError `json:"erros"`
}

type IngestError struct {
	Bairro string `json:"bairro"`
	Indice *int   `json:"indice,omitempty"`
	Dia    string `json:"dia,omitempty"`
	Erro   string `json:"erro"`
}

type recordV1 struct {
	Timestamp       string          `json:"timestamp"`
	Clima           json.RawMessage `json:"clima"`
	QualidadeDoAr   json.RawMessage `json:"qualidade_do_ar"`
	QualidadeDaAgua json.RawMessage `json:"qualidade_da_agua"`
}

type dayRecordV2 struct {
	Clima           json.RawMessage `json:"clima"`
	QualidadeDoAr   json.RawMessage `json:"qualidade_do_ar"`
	QualidadeDaAgua json.RawMessage `json:"qualidade_da_agua"`
	Riscos          json.RawMessage `json:"riscos"`
}

type IngestService interface {
	// Ingest reconciles the v1 payload shape: neighborhood name -> list of
	// timestamped records.
	Ingest(ctx context.Context, bairros map[string]json.RawMessage) (*IngestResult, error)
	// IngestV2 reconciles the v2 shape: neighborhood name -> day key -> data.
	IngestV2(ctx context.Context, bairros map[string]json.RawMessage) (*IngestResult, error)
}

type ingestService struct {
	db            *sqlx.DB
	neighborhoods repository.NeighborhoodRepository
	measurements  repository.MeasurementRepository
	publisher     events.EventPublisher
}

func NewIngestService(db *sqlx.DB, neighborhoods repository.NeighborhoodRepository, measurements repository.MeasurementRepository, pub events.EventPublisher) IngestService {
	return &ingestService{
		db:            db,
		neighborhoods: neighborhoods,
		measurements:  measurements,
		publisher:     pub,
	}
}

// sortedNames fixes the processing order; map iteration order would otherwise
// make counts and error ordering nondeterministic.
func sortedNames(bairros map[string]json.RawMessage) []string {
	names := make([]string, 0, len(bairros))
	for name := range bairros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ingestService) Ingest(ctx context.Context, bairros map[string]json.RawMessage) (*IngestResult, error) {
	result := &IngestResult{Erros: []IngestError{}}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, name := range sortedNames(bairros) {
		var records []recordV1
		if err := json.Unmarshal(bairros[name], &records); err != nil {
			result.Erros = append(result.Erros, IngestError{
				Bairro: name,
				Erro:   "expected a list of records",
			})
			continue
		}

		neighborhoodID, created, err := s.neighborhoods.GetOrCreate(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if created {
			result.BairrosCriados++
		}

		for i, record := range records {
			ts, err := ParseTimestamp(record.Timestamp)
			if err != nil {
				idx := i
				result.Erros = append(result.Erros, IngestError{
					Bairro: name,
					Indice: &idx,
					Erro:   err.Error(),
				})
				continue
			}

			m := &model.Measurement{
				NeighborhoodID:  neighborhoodID,
				Timestamp:       ts,
				Clima:           record.Clima,
				QualidadeDoAr:   record.QualidadeDoAr,
				QualidadeDaAgua: record.QualidadeDaAgua,
			}
			if err := s.measurements.Upsert(ctx, tx, m); err != nil {
				return nil, err
			}
			result.MedicoesProcessadas++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.publishResult(result)

	return result, nil
}

func (s *ingestService) IngestV2(ctx context.Context, bairros map[string]json.RawMessage) (*IngestResult, error) {
	result := &IngestResult{Erros: []IngestError{}}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, name := range sortedNames(bairros) {
		var days map[string]dayRecordV2
		if err := json.Unmarshal(bairros[name], &days); err != nil {
			result.Erros = append(result.Erros, IngestError{
				Bairro: name,
				Erro:   "expected an object keyed by day",
			})
			continue
		}

		neighborhoodID, created, err := s.neighborhoods.GetOrCreate(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if created {
			result.BairrosCriados++
		}

		dayKeys := make([]string, 0, len(days))
		for day := range days {
			dayKeys = append(dayKeys, day)
		}
		sort.Strings(dayKeys)

		for _, day := range dayKeys {
			ts, err := ParseDay(day)
			if err != nil {
				result.Erros = append(result.Erros, IngestError{
					Bairro: name,
					Dia:    day,
					Erro:   err.Error(),
				})
				continue
			}

			data := days[day]
			m := &model.Measurement{
				NeighborhoodID:  neighborhoodID,
				Timestamp:       ts,
				Clima:           data.Clima,
				QualidadeDoAr:   data.QualidadeDoAr,
				QualidadeDaAgua: data.QualidadeDaAgua,
				Riscos:          data.Riscos,
			}
			if err := s.measurements.Upsert(ctx, tx, m); err != nil {
				return nil, err
			}
			result.MedicoesProcessadas++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.publishResult(result)

	return result, nil
}

func (s *ingestService) publishResult(result *IngestResult) {
	go s.publisher.PublishIngestCompleted(&events.IngestCompletedEvent{
		BairrosCriados:      result.BairrosCriados,
		MedicoesProcessadas: result.MedicoesProcessadas,
		Erros:               len(result.Erros),
	})
}
