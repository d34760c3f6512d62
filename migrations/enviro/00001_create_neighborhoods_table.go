package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateNeighborhoodsTable, downCreateNeighborhoodsTable)
}

func upCreateNeighborhoodsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE neighborhoods (
	  id BIGSERIAL PRIMARY KEY,
	  name TEXT UNIQUE NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateNeighborhoodsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS neighborhoods;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
