package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	applog "billetera/internal/log"
)

// KV is the durable local key-value store backing every wallet. Values are
// JSON or plain strings; key layout is owned by the typed stores on top.
type KV struct {
	db *sql.DB
}

func NewKV(dbPath string) (*KV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &KV{db: db}, nil
}

func (kv *KV) Close() error {
	if kv.db != nil {
		return kv.db.Close()
	}
	return nil
}

// Get returns the value for key. The second return is false when the key
// has never been written.
func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get key %s: %w", key, err)
	}
	return value, true, nil
}

// Put overwrites the value for key. The write is a single upsert statement,
// so callers never observe a partially written value.
func (kv *KV) Put(ctx context.Context, key, value string) error {
	_, err := kv.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("put key %s: %w", key, err)
	}
	slog.DebugContext(ctx, "Key written",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldKey, key, "bytes", len(value))
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys with the given prefix.
func (kv *KV) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := kv.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE key LIKE ? ORDER BY key`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list keys with prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}
