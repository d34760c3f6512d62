package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProfilesTables, downCreateProfilesTables)
}

func upCreateProfilesTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE doctors (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			clinic TEXT NOT NULL,
			speciality TEXT
		);

		CREATE TABLE patients (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateProfilesTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS patients;
		DROP TABLE IF EXISTS doctors;
	`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
