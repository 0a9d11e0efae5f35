package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id              UUID PRIMARY KEY,
	source_currency TEXT NOT NULL,
	currencies      TEXT[] NOT NULL DEFAULT '{}',
	amount          DOUBLE PRECISION NOT NULL DEFAULT 0,
	initialized     BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		db: pool,
	}
}

func InitStorage(ctx context.Context, dsn string, timeout time.Duration) (*Storage, error) {
	const op = "storage.postgres.InitStorage"

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 10 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	if _, err = pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	return NewStorage(pool), nil
}

func (s *Storage) GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	const op = "storage.postgres.GetSession"

	session := &entities.Session{ID: id}

	err := s.db.QueryRow(ctx, `
		SELECT source_currency, currencies, amount, initialized, updated_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(
		&session.Selection.Source,
		&session.Selection.Currencies,
		&session.Selection.Amount,
		&session.Initialized,
		&session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return session, nil
}

func (s *Storage) SaveSession(ctx context.Context, session *entities.Session) error {
	const op = "storage.postgres.SaveSession"

	currencies := session.Selection.Currencies
	if currencies == nil {
		currencies = []string{}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO sessions (id, source_currency, currencies, amount, initialized, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET source_currency = EXCLUDED.source_currency,
		              currencies = EXCLUDED.currencies,
		              amount = EXCLUDED.amount,
		              initialized = EXCLUDED.initialized,
		              updated_at = EXCLUDED.updated_at
	`, session.ID, session.Selection.Source, currencies, session.Selection.Amount, session.Initialized, session.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) Close() {
	s.db.Close()
}
