package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// EducationRepo encapsulates queries on `education`.
type EducationRepo struct {
	db *sql.DB
}

func NewEducationRepo(db *sql.DB) *EducationRepo {
	return &EducationRepo{db: db}
}

const educationColumns = `id, institution, degree, field, description, description_id,
	start_date, end_date, is_current, institution_logo, sort_order, created_at`

func scanEducation(s rowScanner) (model.Education, error) {
	var e model.Education
	err := s.Scan(&e.ID, &e.Institution, &e.Degree, &e.Field, &e.Description, &e.DescriptionID,
		&e.StartDate, &e.EndDate, &e.IsCurrent, &e.InstitutionLogo, &e.SortOrder, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Education{}, ErrNotFound
	}
	return e, err
}

func (r *EducationRepo) query(ctx context.Context, q string) ([]model.Education, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EducationRepo) List(ctx context.Context) ([]model.Education, error) {
	return r.query(ctx, "SELECT "+educationColumns+" FROM education ORDER BY sort_order ASC, start_date DESC")
}

func (r *EducationRepo) ListPublic(ctx context.Context) ([]model.Education, error) {
	return r.query(ctx, "SELECT "+educationColumns+" FROM education ORDER BY is_current DESC, start_date DESC")
}

func (r *EducationRepo) GetByID(ctx context.Context, id uint64) (model.Education, error) {
	return scanEducation(r.db.QueryRowContext(ctx,
		"SELECT "+educationColumns+" FROM education WHERE id = ?", id))
}

func (r *EducationRepo) Create(ctx context.Context, in model.EducationInput) (model.Education, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO education (
			institution, degree, field, description, description_id,
			start_date, end_date, is_current, institution_logo, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stringOr(in.Institution, ""), in.Degree, in.Field, in.Description, in.DescriptionID,
		in.StartDate, in.EndDate, boolOr(in.IsCurrent, false), in.InstitutionLogo, intOr(in.SortOrder, 0))
	if err != nil {
		return model.Education{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Education{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update applies the non-nil fields of in; end_date is always written.
func (r *EducationRepo) Update(ctx context.Context, id uint64, in model.EducationInput) (model.Education, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE education SET
			institution = COALESCE(?, institution),
			degree = COALESCE(?, degree),
			field = COALESCE(?, field),
			description = COALESCE(?, description),
			description_id = COALESCE(?, description_id),
			start_date = COALESCE(?, start_date),
			end_date = ?,
			is_current = COALESCE(?, is_current),
			institution_logo = COALESCE(?, institution_logo),
			sort_order = COALESCE(?, sort_order)
		WHERE id = ?`,
		in.Institution, in.Degree, in.Field, in.Description, in.DescriptionID,
		in.StartDate, in.EndDate, in.IsCurrent, in.InstitutionLogo, in.SortOrder, id)
	if err != nil {
		return model.Education{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *EducationRepo) Delete(ctx context.Context, id uint64) error {
	return execDelete(ctx, r.db, "DELETE FROM education WHERE id = ?", id)
}
