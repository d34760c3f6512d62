package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
)

type MeasurementRepository interface {
	// Upsert inserts or overwrites the measurement identified by its
	// (neighborhood_id, ts) natural key. Racing inserts on the same key are
	// resolved by the database, never by the caller.
	Upsert(ctx context.Context, q sqlx.ExtContext, m *model.Measurement) error
	// ListByNeighborhood returns measurements ordered by timestamp ascending,
	// optionally bounded by inclusive start/end instants.
	ListByNeighborhood(ctx context.Context, neighborhoodID int64, start, end *time.Time) ([]model.Measurement, error)
}

type postgresMeasurementRepository struct {
	db *sqlx.DB
}

func NewPostgresMeasurementRepository(db *sqlx.DB) MeasurementRepository {
	return &postgresMeasurementRepository{db: db}
}

func (r *postgresMeasurementRepository) Upsert(ctx context.Context, q sqlx.ExtContext, m *model.Measurement) error {
	// riscos only exists in the v2 payload; a v1 re-ingest must not erase it.
	query := `
		INSERT INTO measurements (neighborhood_id, ts, clima, qualidade_do_ar, qualidade_da_agua, riscos)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (neighborhood_id, ts) DO UPDATE SET
			clima = EXCLUDED.clima,
			qualidade_do_ar = EXCLUDED.qualidade_do_ar,
			qualidade_da_agua = EXCLUDED.qualidade_da_agua,
			riscos = COALESCE(EXCLUDED.riscos, measurements.riscos)
	`
	_, err := q.ExecContext(ctx, query,
		m.NeighborhoodID, m.Timestamp, m.Clima, m.QualidadeDoAr, m.QualidadeDaAgua, m.Riscos,
	)
	return err
}

func (r *postgresMeasurementRepository) ListByNeighborhood(ctx context.Context, neighborhoodID int64, start, end *time.Time) ([]model.Measurement, error) {
	baseQuery := `
		SELECT id, neighborhood_id, ts, clima, qualidade_do_ar, qualidade_da_agua, riscos
		FROM measurements
		WHERE neighborhood_id = $1
	`

	args := []interface{}{neighborhoodID}
	argId := 2
	if start != nil {
		baseQuery += fmt.Sprintf(" AND ts >= $%d", argId)
		args = append(args, *start)
		argId++
	}
	if end != nil {
		baseQuery += fmt.Sprintf(" AND ts <= $%d", argId)
		args = append(args, *end)
		argId++
	}

	baseQuery += " ORDER BY ts ASC"

	var measurements []model.Measurement
	err := r.db.SelectContext(ctx, &measurements, baseQuery, args...)
	if err != nil {
		return nil, err
	}

	if measurements == nil {
		measurements = []model.Measurement{}
	}

	return measurements, nil
}
