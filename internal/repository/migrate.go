package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "sessions table",
		sql: `
			CREATE TABLE IF NOT EXISTS sessions (
				player_id BIGINT PRIMARY KEY,
				username VARCHAR(255) NOT NULL DEFAULT '',
				balance DOUBLE PRECISION NOT NULL CHECK (balance >= 0),
				round INT NOT NULL DEFAULT 1 CHECK (round >= 1),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`,
	},
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i+1, m.name, err)
		}
		log.Info().Int("migration", i+1).Str("name", m.name).Msg("Migration applied")
	}
	return nil
}
