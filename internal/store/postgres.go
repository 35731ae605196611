package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/breakwater-app/breakwater/internal/detect"
)

//go:embed schema.sql
var schemaSQL string

// PostgresConfig holds connection settings for the Postgres-backed store.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string

	MaxPoolSize int
}

// PostgresStore implements Store on Postgres. Merges take a row lock per
// record, which serializes a recompute against a concurrent user patch on
// the same subscription.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, applies the schema, and returns the store.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = 10
	}

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxPoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

const subscriptionColumns = `id, name, normalized_key, amount, cadence, annual_cost,
	last_seen, occurrences, confidence, needs_review, category, status,
	ignore_reasons, updated_at`

func scanCandidate(row pgx.Row) (*detect.Candidate, error) {
	var c detect.Candidate
	var cadence, confidence, status string
	err := row.Scan(
		&c.ID, &c.Name, &c.NormalizedKey, &c.Amount, &cadence, &c.AnnualCost,
		&c.LastSeen, &c.Occurrences, &confidence, &c.NeedsReview, &c.Category,
		&status, &c.IgnoreReasons, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Cadence = detect.Cadence(cadence)
	c.Confidence = detect.Confidence(confidence)
	c.Status = detect.Status(status)
	return &c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*detect.Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY annual_cost DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*detect.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpsertMany(ctx context.Context, incoming []*detect.Candidate) ([]*detect.Candidate, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, c := range incoming {
		if c == nil || c.ID == "" {
			continue
		}

		var prev *detect.Candidate
		row := tx.QueryRow(ctx,
			`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1 FOR UPDATE`, c.ID)
		got, err := scanCandidate(row)
		switch {
		case err == nil:
			prev = got
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return nil, fmt.Errorf("loading subscription %s: %w", c.ID, err)
		}

		copied := *c
		if err := upsertRow(ctx, tx, merge(prev, &copied, now)); err != nil {
			return nil, fmt.Errorf("upserting subscription %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing upsert: %w", err)
	}

	return s.List(ctx)
}

func upsertRow(ctx context.Context, tx pgx.Tx, c *detect.Candidate) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			normalized_key = EXCLUDED.normalized_key,
			amount = EXCLUDED.amount,
			cadence = EXCLUDED.cadence,
			annual_cost = EXCLUDED.annual_cost,
			last_seen = EXCLUDED.last_seen,
			occurrences = EXCLUDED.occurrences,
			confidence = EXCLUDED.confidence,
			needs_review = EXCLUDED.needs_review,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			ignore_reasons = EXCLUDED.ignore_reasons,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.Name, c.NormalizedKey, c.Amount, string(c.Cadence), c.AnnualCost,
		c.LastSeen, c.Occurrences, string(c.Confidence), c.NeedsReview, c.Category,
		string(c.Status), c.IgnoreReasons, c.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch Patch) (*detect.Candidate, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1 FOR UPDATE`, id)
	prev, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading subscription %s: %w", id, err)
	}

	next := applyPatch(prev, patch, time.Now())
	if err := upsertRow(ctx, tx, next); err != nil {
		return nil, fmt.Errorf("updating subscription %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}
	return next, nil
}
