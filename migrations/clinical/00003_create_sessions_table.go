package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessionsTable, downCreateSessionsTable)
}

func upCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE sessions (
			id BIGSERIAL PRIMARY KEY,
			doctor_id BIGINT NOT NULL REFERENCES doctors(id) ON DELETE CASCADE,
			patient_id BIGINT NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
			date TIMESTAMP WITH TIME ZONE NOT NULL,
			vital_signs_avg JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS sessions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
