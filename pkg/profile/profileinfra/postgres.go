package profileinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/profile"
	"github.com/jmoiron/sqlx"
)

// Schema creates the table used by PostgresProfileRepository
const Schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
	user_id      TEXT PRIMARY KEY,
	allow_memory BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresProfileRepository stores profiles in the user_profiles table
type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

var _ profile.Repository = (*PostgresProfileRepository)(nil)

// Migrate creates the profile table if it does not exist
func (r *PostgresProfileRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return profile.ErrStoreUnavailable(err).WithDetail("operation", "migrate")
	}
	return nil
}

func (r *PostgresProfileRepository) FindByID(ctx context.Context, id kernel.UserID) (*profile.UserProfile, error) {
	query := `
		SELECT user_id, allow_memory, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1`

	var p profile.UserProfile
	err := r.db.GetContext(ctx, &p, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrProfileNotFound().WithDetail("user_id", id.String())
		}
		return nil, profile.ErrStoreUnavailable(err).WithDetail("user_id", id.String())
	}
	return &p, nil
}

// Save upserts the profile; created_at is kept from the first insert
func (r *PostgresProfileRepository) Save(ctx context.Context, p profile.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, allow_memory, created_at, updated_at)
		VALUES (:user_id, :allow_memory, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			allow_memory = EXCLUDED.allow_memory,
			updated_at   = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return profile.ErrStoreUnavailable(err).WithDetail("user_id", p.UserID.String())
	}
	return nil
}

func (r *PostgresProfileRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
