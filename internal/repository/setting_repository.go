package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// SettingRepo stores key/value site options.
type SettingRepo struct {
	db *sql.DB
}

func NewSettingRepo(db *sql.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

const settingColumns = "id, `key`, value, type, created_at, updated_at"

func scanSetting(s rowScanner) (model.Setting, error) {
	var st model.Setting
	err := s.Scan(&st.ID, &st.Key, &st.Value, &st.Type, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setting{}, ErrNotFound
	}
	return st, err
}

// List returns all settings ordered by key.
func (r *SettingRepo) List(ctx context.Context) ([]model.Setting, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+settingColumns+" FROM settings ORDER BY `key` ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Setting{}
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *SettingRepo) Get(ctx context.Context, key string) (model.Setting, error) {
	return scanSetting(r.db.QueryRowContext(ctx,
		"SELECT "+settingColumns+" FROM settings WHERE `key` = ?", key))
}

// Upsert writes the value for key, creating the row on first use. The type
// defaults to "string" for new rows and is kept on existing rows when nil.
func (r *SettingRepo) Upsert(ctx context.Context, key string, in model.SettingInput) (model.Setting, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO settings (`key`, value, type) VALUES (?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE value = VALUES(value), type = COALESCE(?, type), updated_at = CURRENT_TIMESTAMP",
		key, in.Value, stringOr(in.Type, "string"), in.Type)
	if err != nil {
		return model.Setting{}, err
	}
	return r.Get(ctx, key)
}
