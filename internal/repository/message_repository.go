package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// MessageRepo stores submissions of the contact form.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = "id, name, email, subject, message, is_read, created_at"

func scanMessage(s rowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContactMessage{}, ErrNotFound
	}
	return m, err
}

func (r *MessageRepo) Create(ctx context.Context, in model.ContactInput) (model.ContactMessage, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, subject, message) VALUES (?, ?, ?, ?)",
		in.Name, in.Email, in.Subject, in.Message)
	if err != nil {
		return model.ContactMessage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactMessage{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// List returns messages newest first. A nil isRead returns all of them.
func (r *MessageRepo) List(ctx context.Context, isRead *bool) ([]model.ContactMessage, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if isRead != nil {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+messageColumns+" FROM contact_messages WHERE is_read = ? ORDER BY created_at DESC", *isRead)
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+messageColumns+" FROM contact_messages ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ContactMessage{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (model.ContactMessage, error) {
	return scanMessage(r.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM contact_messages WHERE id = ?", id))
}

// SetRead flags a message as read or unread and returns it.
func (r *MessageRepo) SetRead(ctx context.Context, id uint64, read bool) (model.ContactMessage, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE contact_messages SET is_read = ? WHERE id = ?", read, id); err != nil {
		return model.ContactMessage{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	return execDelete(ctx, r.db, "DELETE FROM contact_messages WHERE id = ?", id)
}

func (r *MessageRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE").Scan(&n)
	return n, err
}

func (r *MessageRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&n)
	return n, err
}
