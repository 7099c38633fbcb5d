package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type migration struct {
	version int
	name    string
	up      string
}

// migrations is applied in order; applied versions are recorded in
// schema_migrations and skipped on later runs.
var migrations = []migration{
	{
		version: 1,
		name:    "create_users_table",
		up: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password BYTEA NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`,
	},
	{
		version: 2,
		name:    "create_posts_table",
		up: `
			CREATE TABLE IF NOT EXISTS posts (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				title TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				content TEXT NOT NULL,
				excerpt TEXT,
				cover_image TEXT,
				published BOOLEAN NOT NULL DEFAULT false,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				published_at TIMESTAMPTZ
			);

			CREATE INDEX IF NOT EXISTS idx_posts_published_at
			ON posts(published_at DESC NULLS LAST, created_at DESC);
		`,
	},
	{
		version: 3,
		name:    "create_collection_items_table",
		up: `
			DO $$ BEGIN
				CREATE TYPE collection_item_type AS ENUM (
					'wikipedia', 'art', 'book', 'youtube', 'product', 'music',
					'article', 'podcast', 'movie', 'github', 'other'
				);
			EXCEPTION
				WHEN duplicate_object THEN NULL;
			END $$;

			CREATE TABLE IF NOT EXISTS collection_items (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				type collection_item_type NOT NULL,
				title TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				description TEXT,
				url TEXT,
				image_url TEXT,
				thumbnail_url TEXT,
				accent_color TEXT,
				grid_size TEXT NOT NULL DEFAULT 'medium',
				display_order INTEGER NOT NULL DEFAULT 0,
				metadata JSONB,
				tags TEXT[] NOT NULL DEFAULT '{}',
				featured BOOLEAN NOT NULL DEFAULT false,
				published BOOLEAN NOT NULL DEFAULT false,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_collection_items_tags
			ON collection_items USING GIN (tags);

			CREATE INDEX IF NOT EXISTS idx_collection_items_listing
			ON collection_items(featured DESC, display_order, created_at DESC);
		`,
	},
}

// Migrate applies every pending migration, each in its own transaction.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	const op = "storage.postgresql.Migrate"

	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("%s: failed to create schema_migrations table: %w", op, err)
	}

	var current int
	err = db.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current)
	if err != nil {
		return fmt.Errorf("%s: failed to get current schema version: %w", op, err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		err := db.BeginFunc(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.up); err != nil {
				return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
			}

			_, err := tx.Exec(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)",
				m.version,
				m.name,
			)
			if err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.version, err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// Migrate runs the schema migrations on the storage pool.
func (s *Storage) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.db)
}

// Version reports the highest applied migration.
func Version(ctx context.Context, db *pgxpool.Pool) (int, error) {
	var v int
	err := db.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("storage.postgresql.Version: %w", err)
	}
	return v, nil
}
