package storage

import (
	"database/sql"
	"errors"
)

// SQLite keeps values in the kv_store table created by db.ApplyMigrations.
type SQLite struct {
	db *sql.DB
}

var (
	_ Backend = (*SQLite)(nil)
	_ Lister  = (*SQLite)(nil)
)

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO kv_store(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *SQLite) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return &Error{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Keys lists stored keys with the given prefix in key order.
func (s *SQLite) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv_store WHERE substr(key, 1, length(?)) = ? ORDER BY key ASC`, prefix, prefix)
	if err != nil {
		return nil, &Error{Op: "keys", Key: prefix, Err: err}
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &Error{Op: "keys", Key: prefix, Err: err}
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "keys", Key: prefix, Err: err}
	}
	return keys, nil
}
