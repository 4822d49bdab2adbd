package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SlotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Get(ctx context.Context, name string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *SlotRepository) Set(ctx context.Context, name, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO kv_slots(name,value,updated_at) VALUES(?,?,?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value, time.Now().UTC())
	return err
}

func (r *SlotRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE name = ?`, name)
	return err
}

func (r *SlotRepository) Close() error {
	return r.db.Close()
}
