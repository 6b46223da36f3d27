// Package sqlite provides a persistent token cache driver so sandbox tokens
// survive process restarts. Tokens are valid for an hour; redeploys should
// not burn fresh fetches against the identity provider.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, app string) (domain.CachedToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT app_name, token, expires_at FROM tokens WHERE app_name = ? AND expires_at > ?`,
		app, time.Now().UTC(),
	)

	var token domain.CachedToken
	if err := row.Scan(&token.App, &token.Value, &token.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CachedToken{}, store.ErrNotFound
		}
		return domain.CachedToken{}, err
	}
	return token, nil
}

func (s *Store) Put(ctx context.Context, token domain.CachedToken) error {
	// Single UPSERT keeps the replace atomic for concurrent refreshers.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tokens (app_name, token, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(app_name) DO UPDATE SET token = excluded.token, expires_at = excluded.expires_at`,
		token.App, token.Value, token.ExpiresAt.UTC(),
	)
	return err
}

func (s *Store) Delete(ctx context.Context, app string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE app_name = ?`, app)
	return err
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }
