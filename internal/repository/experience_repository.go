package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// ExperienceRepo encapsulates queries on `experiences`.
type ExperienceRepo struct {
	db *sql.DB
}

func NewExperienceRepo(db *sql.DB) *ExperienceRepo {
	return &ExperienceRepo{db: db}
}

const experienceColumns = `id, company, position, position_id, description, description_id, location,
	start_date, end_date, is_current, company_logo, sort_order, created_at`

func scanExperience(s rowScanner) (model.Experience, error) {
	var e model.Experience
	err := s.Scan(&e.ID, &e.Company, &e.Position, &e.PositionID, &e.Description, &e.DescriptionID,
		&e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.CompanyLogo, &e.SortOrder, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Experience{}, ErrNotFound
	}
	return e, err
}

func (r *ExperienceRepo) query(ctx context.Context, q string) ([]model.Experience, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// List returns entries in admin order.
func (r *ExperienceRepo) List(ctx context.Context) ([]model.Experience, error) {
	return r.query(ctx, "SELECT "+experienceColumns+" FROM experiences ORDER BY sort_order ASC, start_date DESC")
}

// ListPublic returns the current position first, then the most recent.
func (r *ExperienceRepo) ListPublic(ctx context.Context) ([]model.Experience, error) {
	return r.query(ctx, "SELECT "+experienceColumns+" FROM experiences ORDER BY is_current DESC, start_date DESC")
}

func (r *ExperienceRepo) GetByID(ctx context.Context, id uint64) (model.Experience, error) {
	return scanExperience(r.db.QueryRowContext(ctx,
		"SELECT "+experienceColumns+" FROM experiences WHERE id = ?", id))
}

func (r *ExperienceRepo) Create(ctx context.Context, in model.ExperienceInput) (model.Experience, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO experiences (
			company, position, position_id, description, description_id, location,
			start_date, end_date, is_current, company_logo, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stringOr(in.Company, ""), stringOr(in.Position, ""), in.PositionID, in.Description,
		in.DescriptionID, in.Location, in.StartDate, in.EndDate, boolOr(in.IsCurrent, false),
		in.CompanyLogo, intOr(in.SortOrder, 0))
	if err != nil {
		return model.Experience{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Experience{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update applies the non-nil fields of in. end_date is always written so a
// position can be reopened by sending it as null.
func (r *ExperienceRepo) Update(ctx context.Context, id uint64, in model.ExperienceInput) (model.Experience, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE experiences SET
			company = COALESCE(?, company),
			position = COALESCE(?, position),
			position_id = COALESCE(?, position_id),
			description = COALESCE(?, description),
			description_id = COALESCE(?, description_id),
			location = COALESCE(?, location),
			start_date = COALESCE(?, start_date),
			end_date = ?,
			is_current = COALESCE(?, is_current),
			company_logo = COALESCE(?, company_logo),
			sort_order = COALESCE(?, sort_order)
		WHERE id = ?`,
		in.Company, in.Position, in.PositionID, in.Description, in.DescriptionID, in.Location,
		in.StartDate, in.EndDate, in.IsCurrent, in.CompanyLogo, in.SortOrder, id)
	if err != nil {
		return model.Experience{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uint64) error {
	return execDelete(ctx, r.db, "DELETE FROM experiences WHERE id = ?", id)
}
