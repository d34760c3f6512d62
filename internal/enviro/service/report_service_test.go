package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/service"
)

func TestBucketByDay_GroupsByUTCDay(t *testing.T) {
	measurements := []model.Measurement{
		{Timestamp: time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), Clima: json.RawMessage(`{"temp": 25}`)},
		{Timestamp: time.Date(2025, 10, 21, 9, 0, 0, 0, time.UTC), Clima: json.RawMessage(`{"temp": 30}`)},
	}

	buckets := service.BucketByDay(measurements)
	require.Len(t, buckets, 2)
	require.JSONEq(t, `{"temp": 25}`, string(buckets["2025-10-20"].Clima))
	require.JSONEq(t, `{"temp": 30}`, string(buckets["2025-10-21"].Clima))
}

func TestBucketByDay_LastWriteWinsWithinDay(t *testing.T) {
	measurements := []model.Measurement{
		{Timestamp: time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), Clima: json.RawMessage(`{"temp": 25}`)},
		{Timestamp: time.Date(2025, 10, 20, 18, 0, 0, 0, time.UTC), Clima: json.RawMessage(`{"temp": 31}`)},
	}

	buckets := service.BucketByDay(measurements)
	require.Len(t, buckets, 1)
	require.JSONEq(t, `{"temp": 31}`, string(buckets["2025-10-20"].Clima))
}

func TestBucketByDay_RiscosDefaultsToEmptyCategories(t *testing.T) {
	measurements := []model.Measurement{
		{Timestamp: time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)},
	}

	buckets := service.BucketByDay(measurements)
	require.JSONEq(t, `{"alagamentos": [], "deslizamentos": [], "queimadas": []}`, string(buckets["2025-10-20"].Riscos))
}

func TestBucketByDay_RiscosSurviveLaterMeasurementWithoutRiscos(t *testing.T) {
	measurements := []model.Measurement{
		{Timestamp: time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), Riscos: json.RawMessage(`{"alagamentos": ["rua A"]}`)},
		{Timestamp: time.Date(2025, 10, 20, 18, 0, 0, 0, time.UTC), Clima: json.RawMessage(`{"temp": 31}`)},
	}

	buckets := service.BucketByDay(measurements)
	require.JSONEq(t, `{"alagamentos": ["rua A"]}`, string(buckets["2025-10-20"].Riscos))
	require.JSONEq(t, `{"temp": 31}`, string(buckets["2025-10-20"].Clima))
}

type fakeReportNeighborhoodRepo struct {
	fakeNeighborhoodRepo
	list []model.Neighborhood
}

func (f *fakeReportNeighborhoodRepo) List(ctx context.Context) ([]model.Neighborhood, error) {
	return f.list, nil
}

func TestReportService_ListMeasurements_UnknownNeighborhood(t *testing.T) {
	neighborhoods := &fakeNeighborhoodRepo{known: map[string]int64{}}
	measurements := &fakeMeasurementRepo{}
	s := service.NewReportService(neighborhoods, measurements)

	_, err := s.ListMeasurements(context.Background(), "Nowhere", "", "")
	require.ErrorIs(t, err, service.ErrNeighborhoodNotFound)
}

func TestReportService_ListMeasurements_UnknownNeighborhoodWinsOverBadBounds(t *testing.T) {
	neighborhoods := &fakeNeighborhoodRepo{known: map[string]int64{}}
	measurements := &fakeMeasurementRepo{}
	s := service.NewReportService(neighborhoods, measurements)

	_, err := s.ListMeasurements(context.Background(), "Nowhere", "yesterday", "tomorrow")
	require.ErrorIs(t, err, service.ErrNeighborhoodNotFound)
}

func TestReportService_ListMeasurements_BadBounds(t *testing.T) {
	neighborhoods := &fakeNeighborhoodRepo{known: map[string]int64{"Centro": 1}}
	measurements := &fakeMeasurementRepo{}
	s := service.NewReportService(neighborhoods, measurements)

	_, err := s.ListMeasurements(context.Background(), "Centro", "yesterday", "")
	require.ErrorIs(t, err, service.ErrInvalidStart)

	_, err = s.ListMeasurements(context.Background(), "Centro", "", "tomorrow")
	require.ErrorIs(t, err, service.ErrInvalidEnd)
}

func TestReportService_ListMeasurements_ValidBounds(t *testing.T) {
	neighborhoods := &fakeNeighborhoodRepo{known: map[string]int64{"Centro": 1}}
	measurements := &fakeMeasurementRepo{
		stored: map[int64][]model.Measurement{
			1: {{NeighborhoodID: 1, Timestamp: time.Date(2025, 10, 20, 14, 30, 0, 0, time.UTC)}},
		},
	}
	s := service.NewReportService(neighborhoods, measurements)

	got, err := s.ListMeasurements(context.Background(), "Centro", "2025-10-20T00:00:00Z", "2025-10-21T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestReportService_RiskReport(t *testing.T) {
	neighborhoods := &fakeReportNeighborhoodRepo{
		list: []model.Neighborhood{{ID: 1, Name: "Centro"}, {ID: 2, Name: "Zumbi"}},
	}
	measurements := &fakeMeasurementRepo{
		stored: map[int64][]model.Measurement{
			1: {
				{NeighborhoodID: 1, Timestamp: time.Date(2025, 10, 20, 14, 30, 0, 0, time.UTC), Clima: json.RawMessage(`{"temp": 28}`)},
			},
		},
	}
	s := service.NewReportService(neighborhoods, measurements)

	report, err := s.RiskReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)
	require.JSONEq(t, `{"temp": 28}`, string(report["Centro"]["2025-10-20"].Clima))
	require.Empty(t, report["Zumbi"])
}
