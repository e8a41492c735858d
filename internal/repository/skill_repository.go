package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// SkillRepo encapsulates queries on `skills`.
type SkillRepo struct {
	db *sql.DB
}

func NewSkillRepo(db *sql.DB) *SkillRepo {
	return &SkillRepo{db: db}
}

const skillColumns = "id, name, category, proficiency, icon, sort_order, created_at"

func scanSkill(s rowScanner) (model.Skill, error) {
	var k model.Skill
	err := s.Scan(&k.ID, &k.Name, &k.Category, &k.Proficiency, &k.Icon, &k.SortOrder, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Skill{}, ErrNotFound
	}
	return k, err
}

func (r *SkillRepo) query(ctx context.Context, q string, args ...any) ([]model.Skill, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Skill{}
	for rows.Next() {
		k, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// List returns every skill in admin order.
func (r *SkillRepo) List(ctx context.Context) ([]model.Skill, error) {
	return r.query(ctx, "SELECT "+skillColumns+" FROM skills ORDER BY sort_order ASC")
}

// ListPublic returns skills for the public grid, strongest first within the
// same sort order. An empty category means all categories.
func (r *SkillRepo) ListPublic(ctx context.Context, category string) ([]model.Skill, error) {
	if category != "" {
		return r.query(ctx, "SELECT "+skillColumns+
			" FROM skills WHERE category = ? ORDER BY sort_order ASC, proficiency DESC", category)
	}
	return r.query(ctx, "SELECT "+skillColumns+" FROM skills ORDER BY sort_order ASC, proficiency DESC")
}

func (r *SkillRepo) GetByID(ctx context.Context, id uint64) (model.Skill, error) {
	return scanSkill(r.db.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE id = ?", id))
}

// Create inserts a skill; proficiency defaults to 80.
func (r *SkillRepo) Create(ctx context.Context, in model.SkillInput) (model.Skill, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO skills (name, category, proficiency, icon, sort_order) VALUES (?, ?, ?, ?, ?)",
		stringOr(in.Name, ""), in.Category, intOr(in.Proficiency, 80), in.Icon, intOr(in.SortOrder, 0))
	if err != nil {
		return model.Skill{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Skill{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *SkillRepo) Update(ctx context.Context, id uint64, in model.SkillInput) (model.Skill, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE skills SET
			name = COALESCE(?, name),
			category = COALESCE(?, category),
			proficiency = COALESCE(?, proficiency),
			icon = COALESCE(?, icon),
			sort_order = COALESCE(?, sort_order)
		WHERE id = ?`,
		in.Name, in.Category, in.Proficiency, in.Icon, in.SortOrder, id)
	if err != nil {
		return model.Skill{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *SkillRepo) Delete(ctx context.Context, id uint64) error {
	return execDelete(ctx, r.db, "DELETE FROM skills WHERE id = ?", id)
}
