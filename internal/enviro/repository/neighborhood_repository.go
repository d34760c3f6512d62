package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/model"
)

type NeighborhoodRepository interface {
	List(ctx context.Context) ([]model.Neighborhood, error)
	FindByName(ctx context.Context, name string) (*model.Neighborhood, error)
	// GetOrCreate runs against q so ingestion can keep it inside its
	// transaction. created reports whether a new row was inserted.
	GetOrCreate(ctx context.Context, q sqlx.ExtContext, name string) (id int64, created bool, err error)
}

type postgresNeighborhoodRepository struct {
	db *sqlx.DB
}

func NewPostgresNeighborhoodRepository(db *sqlx.DB) NeighborhoodRepository {
	return &postgresNeighborhoodRepository{db: db}
}

func (r *postgresNeighborhoodRepository) List(ctx context.Context) ([]model.Neighborhood, error) {
	var neighborhoods []model.Neighborhood
	query := `SELECT id, name, created_at FROM neighborhoods ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &neighborhoods, query)

	if err != nil {
		return nil, err
	}

	if neighborhoods == nil {
		neighborhoods = []model.Neighborhood{}
	}

	return neighborhoods, nil
}

func (r *postgresNeighborhoodRepository) FindByName(ctx context.Context, name string) (*model.Neighborhood, error) {
	var neighborhood model.Neighborhood
	query := `SELECT id, name, created_at FROM neighborhoods WHERE name = $1`
	err := r.db.GetContext(ctx, &neighborhood, query, name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &neighborhood, nil
}

func (r *postgresNeighborhoodRepository) GetOrCreate(ctx context.Context, q sqlx.ExtContext, name string) (int64, bool, error) {
	var id int64
	selectQuery := `SELECT id FROM neighborhoods WHERE name = $1`
	err := sqlx.GetContext(ctx, q, &id, selectQuery, name)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	insertQuery := `INSERT INTO neighborhoods (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`
	err = sqlx.GetContext(ctx, q, &id, insertQuery, name)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	// A concurrent insert won the race; the row exists now.
	err = sqlx.GetContext(ctx, q, &id, selectQuery, name)
	if err != nil {
		return 0, false, err
	}

	return id, false, nil
}
