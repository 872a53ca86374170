package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgxpool.Pool the postgres repositories use.
// *pgxpool.Pool satisfies it, as do pgxmock pools in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Foreign keys are plain columns on purpose: referential integrity is the
// service layer's job, and the in-memory backend has no way to enforce it
// either. BIGSERIAL sequences keep ids monotonic and never reused.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email         TEXT NOT NULL,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	phone         TEXT,
	role          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS properties (
	id          BIGSERIAL PRIMARY KEY,
	landlord_id BIGINT NOT NULL,
	name        TEXT NOT NULL,
	address     TEXT NOT NULL,
	city        TEXT NOT NULL,
	state       TEXT NOT NULL,
	zip         TEXT NOT NULL,
	total_units INT NOT NULL,
	is_active   BOOLEAN NOT NULL DEFAULT true,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_properties_landlord ON properties (landlord_id);

CREATE TABLE IF NOT EXISTS units (
	id           BIGSERIAL PRIMARY KEY,
	property_id  BIGINT NOT NULL,
	unit_number  TEXT NOT NULL,
	monthly_rent DOUBLE PRECISION NOT NULL,
	bedrooms     INT NOT NULL,
	bathrooms    DOUBLE PRECISION NOT NULL,
	is_occupied  BOOLEAN NOT NULL DEFAULT false,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_units_property ON units (property_id);

CREATE TABLE IF NOT EXISTS tenants (
	id               BIGSERIAL PRIMARY KEY,
	user_id          BIGINT NOT NULL,
	unit_id          BIGINT NOT NULL,
	lease_start_date TIMESTAMPTZ NOT NULL,
	lease_end_date   TIMESTAMPTZ NOT NULL,
	rent_due_day     INT NOT NULL,
	is_active        BOOLEAN NOT NULL DEFAULT true,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_tenants_user ON tenants (user_id);
CREATE INDEX IF NOT EXISTS idx_tenants_unit ON tenants (unit_id);

CREATE TABLE IF NOT EXISTS payments (
	id             BIGSERIAL PRIMARY KEY,
	tenant_id      BIGINT NOT NULL,
	amount         DOUBLE PRECISION NOT NULL,
	due_date       TIMESTAMPTZ NOT NULL,
	payment_date   TIMESTAMPTZ,
	status         TEXT NOT NULL,
	payment_method TEXT,
	notes          TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_payments_tenant ON payments (tenant_id);

CREATE TABLE IF NOT EXISTS notifications (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	message    TEXT NOT NULL,
	type       TEXT NOT NULL,
	is_read    BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// notFound translates pgx's no-rows error into the repository sentinel so
// both backends report absence the same way.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
