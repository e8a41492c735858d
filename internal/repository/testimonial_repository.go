package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// TestimonialRepo encapsulates queries on `testimonials`.
type TestimonialRepo struct {
	db *sql.DB
}

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{db: db}
}

const testimonialColumns = `id, name, position, company, content, content_id, avatar_url,
	rating, is_visible, sort_order, created_at`

func scanTestimonial(s rowScanner) (model.Testimonial, error) {
	var t model.Testimonial
	err := s.Scan(&t.ID, &t.Name, &t.Position, &t.Company, &t.Content, &t.ContentID, &t.AvatarURL,
		&t.Rating, &t.IsVisible, &t.SortOrder, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Testimonial{}, ErrNotFound
	}
	return t, err
}

// List returns testimonials ordered for display. With visibleOnly set the
// hidden ones are left out.
func (r *TestimonialRepo) List(ctx context.Context, visibleOnly bool) ([]model.Testimonial, error) {
	q := "SELECT " + testimonialColumns + " FROM testimonials"
	if visibleOnly {
		q += " WHERE is_visible = TRUE"
	}
	q += " ORDER BY sort_order ASC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id uint64) (model.Testimonial, error) {
	return scanTestimonial(r.db.QueryRowContext(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id))
}

// Create inserts a testimonial; rating defaults to 5 and visibility to true.
func (r *TestimonialRepo) Create(ctx context.Context, in model.TestimonialInput) (model.Testimonial, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO testimonials (
			name, position, company, content, content_id, avatar_url, rating, is_visible, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stringOr(in.Name, ""), in.Position, in.Company, stringOr(in.Content, ""), in.ContentID,
		in.AvatarURL, intOr(in.Rating, 5), boolOr(in.IsVisible, true), intOr(in.SortOrder, 0))
	if err != nil {
		return model.Testimonial{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Testimonial{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *TestimonialRepo) Update(ctx context.Context, id uint64, in model.TestimonialInput) (model.Testimonial, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE testimonials SET
			name = COALESCE(?, name),
			position = COALESCE(?, position),
			company = COALESCE(?, company),
			content = COALESCE(?, content),
			content_id = COALESCE(?, content_id),
			avatar_url = COALESCE(?, avatar_url),
			rating = COALESCE(?, rating),
			is_visible = COALESCE(?, is_visible),
			sort_order = COALESCE(?, sort_order)
		WHERE id = ?`,
		in.Name, in.Position, in.Company, in.Content, in.ContentID, in.AvatarURL,
		in.Rating, in.IsVisible, in.SortOrder, id)
	if err != nil {
		return model.Testimonial{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *TestimonialRepo) Delete(ctx context.Context, id uint64) error {
	return execDelete(ctx, r.db, "DELETE FROM testimonials WHERE id = ?", id)
}
