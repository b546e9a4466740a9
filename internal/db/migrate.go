package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS provinces (
    id bigserial PRIMARY KEY,
    province_name text NOT NULL,
    is_secondary boolean NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    email text UNIQUE,
    phone_number text NOT NULL UNIQUE,
    username text NOT NULL,
    first_name text NOT NULL,
    last_name text NOT NULL,
    hashed_password text NOT NULL,
    roles jsonb NOT NULL DEFAULT '[]'::jsonb,
    selected_province_id bigint REFERENCES provinces(id),
    register_date timestamptz NOT NULL DEFAULT NOW(),
    updated_date timestamptz NOT NULL DEFAULT NOW(),
    last_login_date timestamptz
);

CREATE INDEX IF NOT EXISTS users_username_idx ON users (username);
`

// Migrate aplica el esquema idempotente al arrancar.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
