package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnectPostgres opens and pings a pool. The caller owns Close.
func ConnectPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	logger.Info("[DB] connected to postgres",
		zap.String("host", config.ConnConfig.Host),
		zap.String("database", config.ConnConfig.Database),
	)
	return pool, nil
}

// schema is applied in order; every statement is safe to rerun.
var schema = []struct {
	name string
	sql  string
}{
	// search folds accents with unaccent(); trusted since Postgres 13
	{"unaccent", `CREATE EXTENSION IF NOT EXISTS unaccent`},
	{"cities", `
		CREATE TABLE IF NOT EXISTS cities (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) UNIQUE NOT NULL,
			description TEXT,
			restaurant_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"neighborhoods", `
		CREATE TABLE IF NOT EXISTS neighborhoods (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) UNIQUE NOT NULL,
			city_id INTEGER REFERENCES cities(id),
			restaurant_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"cuisines", `
		CREATE TABLE IF NOT EXISTS cuisines (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) UNIQUE NOT NULL,
			restaurant_count INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"restaurants", `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			address TEXT,
			phone VARCHAR(64),
			website TEXT,
			rating DOUBLE PRECISION,
			review_count INTEGER,
			price_level INTEGER CHECK (price_level BETWEEN 0 AND 4),
			cuisine_types TEXT[],
			neighborhood VARCHAR(255),
			neighborhood_slug VARCHAR(255) NOT NULL,
			city VARCHAR(255),
			city_slug VARCHAR(255),
			photos TEXT[],
			opening_hours JSONB,
			reviews JSONB,
			date_night_score INTEGER CHECK (date_night_score BETWEEN 0 AND 100),
			is_top_rated BOOLEAN DEFAULT false,
			description TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			place_id VARCHAR(255),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (neighborhood_slug, slug)
		)
	`},
	{"restaurant_cuisines", `
		CREATE TABLE IF NOT EXISTS restaurant_cuisines (
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			cuisine_id INTEGER NOT NULL REFERENCES cuisines(id) ON DELETE CASCADE,
			PRIMARY KEY (restaurant_id, cuisine_id)
		)
	`},
	{"restaurant indexes", `
		CREATE INDEX IF NOT EXISTS idx_restaurants_score ON restaurants (date_night_score DESC);
		CREATE INDEX IF NOT EXISTS idx_restaurants_neighborhood ON restaurants (neighborhood_slug)
	`},
}

// InitSchema creates the directory tables if they do not exist.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("create %s: %w", stmt.name, err)
		}
	}
	logger.Info("[DB] schema initialized", zap.Int("statements", len(schema)))
	return nil
}
