package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateMovementsTable, downCreateMovementsTable)
}

func upCreateMovementsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE movements (
			id BIGSERIAL PRIMARY KEY,
			session_id BIGINT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			payload JSONB NOT NULL
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateMovementsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS movements;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
