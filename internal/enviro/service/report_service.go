package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/repository"
)

var (
	ErrNeighborhoodNotFound = errors.New("neighborhood not found")
	ErrInvalidStart         = errors.New("invalid start timestamp")
	ErrInvalidEnd           = errors.New("invalid end timestamp")
)

// defaultRiscos is what a day bucket reports when no risk payload was ever
// ingested for it: every category present, empty.
var defaultRiscos = json.RawMessage(`{"alagamentos": [], "deslizamentos": [], "queimadas": []}`)

// DayBucket condenses every measurement of one UTC calendar day; the latest
// timestamp of the day wins.
type DayBucket struct {
	Clima           json.RawMessage `json:"clima"`
	QualidadeDoAr   json.RawMessage `json:"qualidade_do_ar"`
	QualidadeDaAgua json.RawMessage `json:"qualidade_da_agua"`
	Riscos          json.RawMessage `json:"riscos"`
}

type ReportService interface {
	ListNeighborhoods(ctx context.Context) ([]model.Neighborhood, error)
	// ListMeasurements returns a neighborhood's measurements ordered by
	// timestamp ascending, optionally bounded by inclusive start/end given as
	// raw timestamp strings. An unknown neighborhood wins over unparsable
	// bounds: ErrNeighborhoodNotFound is reported before ErrInvalidStart or
	// ErrInvalidEnd.
	ListMeasurements(ctx context.Context, name, startRaw, endRaw string) ([]model.Measurement, error)
	// RiskReport maps neighborhood name -> day key -> bucket.
	RiskReport(ctx context.Context) (map[string]map[string]DayBucket, error)
}

type reportService struct {
	neighborhoods repository.NeighborhoodRepository
	measurements  repository.MeasurementRepository
}

func NewReportService(neighborhoods repository.NeighborhoodRepository, measurements repository.MeasurementRepository) ReportService {
	return &reportService{
		neighborhoods: neighborhoods,
		measurements:  measurements,
	}
}

func (s *reportService) ListNeighborhoods(ctx context.Context) ([]model.Neighborhood, error) {
	return s.neighborhoods.List(ctx)
}

func (s *reportService) ListMeasurements(ctx context.Context, name, startRaw, endRaw string) ([]model.Measurement, error) {
	neighborhood, err := s.neighborhoods.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if neighborhood == nil {
		return nil, ErrNeighborhoodNotFound
	}

	var start, end *time.Time
	if startRaw != "" {
		t, err := ParseTimestamp(startRaw)
		if err != nil {
			return nil, ErrInvalidStart
		}
		start = &t
	}
	if endRaw != "" {
		t, err := ParseTimestamp(endRaw)
		if err != nil {
			return nil, ErrInvalidEnd
		}
		end = &t
	}

	return s.measurements.ListByNeighborhood(ctx, neighborhood.ID, start, end)
}

func (s *reportService) RiskReport(ctx context.Context) (map[string]map[string]DayBucket, error) {
	neighborhoods, err := s.neighborhoods.List(ctx)
	if err != nil {
		return nil, err
	}

	report := make(map[string]map[string]DayBucket, len(neighborhoods))
	for _, n := range neighborhoods {
		measurements, err := s.measurements.ListByNeighborhood(ctx, n.ID, nil, nil)
		if err != nil {
			return nil, err
		}
		report[n.Name] = BucketByDay(measurements)
	}

	return report, nil
}

// BucketByDay folds measurements (assumed ordered by timestamp ascending) into
// per-UTC-day buckets. Climate, air and water payloads are last-write-wins
// within a day; riscos keeps the most recent non-null payload and falls back
// to the empty category set.
func BucketByDay(measurements []model.Measurement) map[string]DayBucket {
	buckets := make(map[string]DayBucket)

	for _, m := range measurements {
		day := DayKey(m.Timestamp)

		bucket := DayBucket{
			Clima:           m.Clima,
			QualidadeDoAr:   m.QualidadeDoAr,
			QualidadeDaAgua: m.QualidadeDaAgua,
			Riscos:          m.Riscos,
		}
		if bucket.Riscos == nil {
			if prev, ok := buckets[day]; ok && prev.Riscos != nil {
				bucket.Riscos = prev.Riscos
			}
		}
		buckets[day] = bucket
	}

	for day, bucket := range buckets {
		if bucket.Riscos == nil {
			bucket.Riscos = defaultRiscos
			buckets[day] = bucket
		}
	}

	return buckets
}
