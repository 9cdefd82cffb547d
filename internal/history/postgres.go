package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS simulations (
		id UUID PRIMARY KEY,
		kind TEXT NOT NULL,
		inputs JSONB NOT NULL,
		outputs JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Connect opens a connection pool for databaseURL.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL not set")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}

// Postgres stores records in the simulations table, input and output as JSONB.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres repository.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the simulations table when it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if _, err := p.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create simulations table: %w", err)
	}
	return nil
}

// Save inserts the record.
func (p *Postgres) Save(ctx context.Context, record Record) error {
	if p.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO simulations (id, kind, inputs, outputs, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5)
	`
	_, err := p.pool.Exec(ctx, query,
		record.ID.String(), record.Kind, []byte(record.Input), []byte(record.Output), record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation: %w", err)
	}
	return nil
}

// Get returns the record with the given id.
func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	if p.pool == nil {
		return Record{}, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id::text, kind, inputs, outputs, created_at
		FROM simulations
		WHERE id = $1::uuid
	`
	record, err := scanRecord(p.pool.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load simulation %s: %w", id, err)
	}
	return record, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (p *Postgres) List(ctx context.Context, limit int) ([]Record, error) {
	if p.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id::text, kind, inputs, outputs, created_at
		FROM simulations
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read simulation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	return records, nil
}

// Storage implements Repository.
func (p *Postgres) Storage() string {
	return "postgres"
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		record  Record
		id      string
		inputs  []byte
		outputs []byte
	)
	if err := row.Scan(&id, &record.Kind, &inputs, &outputs, &record.CreatedAt); err != nil {
		return Record{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Record{}, fmt.Errorf("invalid simulation id %q: %w", id, err)
	}
	record.ID = parsed
	record.Input = inputs
	record.Output = outputs
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}
