package repository

import (
	"database/sql"

	"github.com/pkg/errors"
)

// KVRepo persists string values by key in the kv table. It satisfies storage.KV.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

func (r *KVRepo) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed get key %s", key)
	}
	return value, true, nil
}

func (r *KVRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return errors.Wrapf(err, "failed set key %s", key)
}

func (r *KVRepo) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return errors.Wrapf(err, "failed delete key %s", key)
}

type Entry struct {
	Key       string
	Size      int
	UpdatedAt string
}

// List returns every stored key with its value size, ordered by key.
func (r *KVRepo) List() ([]Entry, error) {
	rows, err := r.db.Query("SELECT key, length(value), updated_at FROM kv ORDER BY key")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Size, &e.UpdatedAt); err != nil {
			return nil, errors.WithStack(err)
		}
		entries = append(entries, e)
	}
	return entries, errors.WithStack(rows.Err())
}
