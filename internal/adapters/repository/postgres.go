// Package repository defines the draw store interface and errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/pkg/metrics"
)

// PostgresStore is a Store implementation backed by PostgreSQL. Identity is
// enforced by a (game, draw_date) primary key; insertion order is preserved
// through a sequence column.
type PostgresStore struct {
	db *sql.DB
}

const createDrawsTable = `
CREATE TABLE IF NOT EXISTS draws (
    seq          BIGSERIAL,
    game         TEXT      NOT NULL,
    draw_date    TEXT      NOT NULL,
    numbers      INTEGER[] NOT NULL,
    special_ball INTEGER,
    PRIMARY KEY (game, draw_date)
)`

// NewPostgresStore opens a connection pool for the given DSN and ensures the
// schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createDrawsTable); err != nil {
		return fmt.Errorf("create draws table: %w", err)
	}
	return nil
}

// Append inserts a record unless one with the same game and date exists.
func (s *PostgresStore) Append(ctx context.Context, game string, draw model.RawDraw) (bool, error) {
	numbers := make([]int64, len(draw.Numbers))
	for i, n := range draw.Numbers {
		numbers[i] = int64(n)
	}

	var special sql.NullInt64
	if draw.SpecialBall != nil {
		special = sql.NullInt64{Int64: int64(*draw.SpecialBall), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO draws (game, draw_date, numbers, special_ball)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (game, draw_date) DO NOTHING`,
		game, draw.Date, pq.Array(numbers), special,
	)
	if err != nil {
		return false, fmt.Errorf("insert draw: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if count, err := s.Count(ctx, game); err == nil {
		metrics.UpdateStoredDraws(game, count)
	}
	return true, nil
}

// List returns all stored records for a game in insertion order.
func (s *PostgresStore) List(ctx context.Context, game string) ([]model.RawDraw, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT draw_date, numbers, special_ball FROM draws WHERE game = $1 ORDER BY seq`,
		game,
	)
	if err != nil {
		return nil, fmt.Errorf("list draws: %w", err)
	}
	defer rows.Close()

	var out []model.RawDraw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, draw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate draws: %w", err)
	}
	return out, nil
}

// Latest returns the record with the highest draw date. ISO-8601 dates order
// lexicographically, so ordering on the text column is chronological.
func (s *PostgresStore) Latest(ctx context.Context, game string) (model.RawDraw, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT draw_date, numbers, special_ball FROM draws
		 WHERE game = $1 ORDER BY draw_date DESC LIMIT 1`,
		game,
	)

	draw, err := scanDraw(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RawDraw{}, ErrNoDraws
	}
	if err != nil {
		return model.RawDraw{}, err
	}
	return draw, nil
}

// Count returns the number of records stored for a game.
func (s *PostgresStore) Count(ctx context.Context, game string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM draws WHERE game = $1`, game,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count draws: %w", err)
	}
	return count, nil
}

// Health verifies the database connection.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraw(row rowScanner) (model.RawDraw, error) {
	var (
		date    string
		numbers pq.Int64Array
		special sql.NullInt64
	)
	if err := row.Scan(&date, &numbers, &special); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RawDraw{}, err
		}
		return model.RawDraw{}, fmt.Errorf("scan draw: %w", err)
	}

	draw := model.RawDraw{Date: date, Numbers: make([]int, len(numbers))}
	for i, n := range numbers {
		draw.Numbers[i] = int(n)
	}
	if special.Valid {
		v := int(special.Int64)
		draw.SpecialBall = &v
	}
	return draw, nil
}
