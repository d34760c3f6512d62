package repository_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
	repo "github.com/mateussf99/sd-middleware-service/internal/enviro/repository"
)

const upsertQuery = `
		INSERT INTO measurements (neighborhood_id, ts, clima, qualidade_do_ar, qualidade_da_agua, riscos)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (neighborhood_id, ts) DO UPDATE SET
			clima = EXCLUDED.clima,
			qualidade_do_ar = EXCLUDED.qualidade_do_ar,
			qualidade_da_agua = EXCLUDED.qualidade_da_agua,
			riscos = COALESCE(EXCLUDED.riscos, measurements.riscos)
	`

func TestPostgresMeasurementRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresMeasurementRepository(sqlxDB)

	ts := time.Date(2025, 10, 20, 14, 30, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs(int64(1), ts, []byte(`{"temp": 28}`), nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = r.Upsert(context.Background(), sqlxDB, &model.Measurement{
		NeighborhoodID: 1,
		Timestamp:      ts,
		Clima:          json.RawMessage(`{"temp": 28}`),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMeasurementRepository_ListByNeighborhood_NoBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresMeasurementRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"id", "neighborhood_id", "ts"}).
		AddRow(int64(1), int64(1), time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)).
		AddRow(int64(2), int64(1), time.Date(2025, 10, 20, 18, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT id, neighborhood_id, ts, clima, qualidade_do_ar, qualidade_da_agua, riscos\s+FROM measurements\s+WHERE neighborhood_id = \$1\s+ORDER BY ts ASC`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	measurements, err := r.ListByNeighborhood(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, measurements, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMeasurementRepository_ListByNeighborhood_WithBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresMeasurementRepository(sqlxDB)

	start := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, neighborhood_id, ts, clima, qualidade_do_ar, qualidade_da_agua, riscos\s+FROM measurements\s+WHERE neighborhood_id = \$1 AND ts >= \$2 AND ts <= \$3\s+ORDER BY ts ASC`).
		WithArgs(int64(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "neighborhood_id", "ts"}))

	measurements, err := r.ListByNeighborhood(context.Background(), 1, &start, &end)
	require.NoError(t, err)
	require.NotNil(t, measurements)
	require.Empty(t, measurements)
	require.NoError(t, mock.ExpectationsWereMet())
}
