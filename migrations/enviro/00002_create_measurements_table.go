package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateMeasurementsTable, downCreateMeasurementsTable)
}

func upCreateMeasurementsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE measurements (
			id BIGSERIAL PRIMARY KEY,
			neighborhood_id BIGINT NOT NULL REFERENCES neighborhoods(id) ON DELETE CASCADE,
			ts TIMESTAMP WITH TIME ZONE NOT NULL,
			clima JSONB,
			qualidade_do_ar JSONB,
			qualidade_da_agua JSONB,
			riscos JSONB,
			UNIQUE (neighborhood_id, ts)
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateMeasurementsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS measurements;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
