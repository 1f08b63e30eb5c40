package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetCache returns the cached value for key, or nil, nil when it is missing or expired.
func (s *Store) GetCache(ctx context.Context, key string) ([]byte, error) {
	var row struct {
		Value     []byte        `db:"value"`
		ExpiresAt sql.NullInt64 `db:"expires_at"`
	}

	err := s.db.GetContext(ctx, &row, "SELECT value, expires_at FROM metadata_cache WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	if row.ExpiresAt.Valid && time.Now().UnixNano() > row.ExpiresAt.Int64 {
		return nil, nil
	}
	return row.Value, nil
}

// SetCache stores value under key. A zero ttl never expires.
func (s *Store) SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: time.Now().Add(ttl).UnixNano(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// DeleteCache removes a cached value.
func (s *Store) DeleteCache(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM metadata_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// PruneCache removes all expired entries and returns how many were removed.
func (s *Store) PruneCache(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM metadata_cache WHERE expires_at IS NOT NULL AND expires_at < ?", time.Now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}
