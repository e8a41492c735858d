package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/iliyamo/portfolio/internal/model"
)

// ProjectRepo encapsulates queries on `projects` and `project_images`.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, title, title_id, slug, description, description_id, thumbnail_url,
	live_url, github_url, technologies, category, featured, sort_order, status, created_at, updated_at`

func scanProject(s rowScanner) (model.Project, error) {
	var (
		p    model.Project
		tech []byte
	)
	err := s.Scan(&p.ID, &p.Title, &p.TitleID, &p.Slug, &p.Description, &p.DescriptionID,
		&p.ThumbnailURL, &p.LiveURL, &p.GithubURL, &tech, &p.Category, &p.Featured,
		&p.SortOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	p.Technologies = []string{}
	if len(tech) > 0 {
		if err := json.Unmarshal(tech, &p.Technologies); err != nil {
			return model.Project{}, err
		}
	}
	return p, nil
}

// encodeTechnologies turns an optional list into a JSON column value. A nil
// list stays NULL so COALESCE keeps the stored value.
func encodeTechnologies(list *[]string) (any, error) {
	if list == nil {
		return nil, nil
	}
	b, err := json.Marshal(*list)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// List returns projects matching the filter ordered by sort order, newest first.
func (r *ProjectRepo) List(ctx context.Context, f model.ProjectFilter) ([]model.Project, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString("SELECT " + projectColumns + " FROM projects WHERE status = ?")
	status := f.Status
	if status == "" {
		status = "published"
	}
	args = append(args, status)
	if f.FeaturedOnly {
		sb.WriteString(" AND featured = TRUE")
	}
	if f.Category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, f.Category)
	}
	sb.WriteString(" ORDER BY sort_order ASC, created_at DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns a project with its images.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id))
	if err != nil {
		return model.Project{}, err
	}
	return r.withImages(ctx, p)
}

// GetBySlug returns a project with its images.
func (r *ProjectRepo) GetBySlug(ctx context.Context, slug string) (model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE slug = ?", slug))
	if err != nil {
		return model.Project{}, err
	}
	return r.withImages(ctx, p)
}

func (r *ProjectRepo) withImages(ctx context.Context, p model.Project) (model.Project, error) {
	images, err := r.Images(ctx, p.ID)
	if err != nil {
		return model.Project{}, err
	}
	p.Images = images
	return p, nil
}

// Images lists the gallery of a project.
func (r *ProjectRepo) Images(ctx context.Context, projectID uint64) ([]model.ProjectImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, image_url, caption, sort_order, created_at
		 FROM project_images WHERE project_id = ? ORDER BY sort_order ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProjectImage{}
	for rows.Next() {
		var img model.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.ImageURL, &img.Caption, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

// Create inserts a project. Title and Slug must be set; the remaining
// fields fall back to column defaults. A taken slug yields ErrDuplicate.
func (r *ProjectRepo) Create(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	tech := in.Technologies
	if tech == nil {
		tech = &[]string{}
	}
	techJSON, err := encodeTechnologies(tech)
	if err != nil {
		return model.Project{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (
			title, title_id, slug, description, description_id, thumbnail_url, live_url,
			github_url, technologies, category, featured, sort_order, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.TitleID, in.Slug, in.Description, in.DescriptionID, in.ThumbnailURL, in.LiveURL,
		in.GithubURL, techJSON, in.Category, boolOr(in.Featured, false), intOr(in.SortOrder, 0),
		stringOr(in.Status, "published"))
	if err != nil {
		if isDuplicate(err) {
			return model.Project{}, ErrDuplicate
		}
		return model.Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update applies the non-nil fields of in to project id.
func (r *ProjectRepo) Update(ctx context.Context, id uint64, in model.ProjectInput) (model.Project, error) {
	techJSON, err := encodeTechnologies(in.Technologies)
	if err != nil {
		return model.Project{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE projects SET
			title = COALESCE(?, title),
			title_id = COALESCE(?, title_id),
			slug = COALESCE(?, slug),
			description = COALESCE(?, description),
			description_id = COALESCE(?, description_id),
			thumbnail_url = COALESCE(?, thumbnail_url),
			live_url = COALESCE(?, live_url),
			github_url = COALESCE(?, github_url),
			technologies = COALESCE(?, technologies),
			category = COALESCE(?, category),
			featured = COALESCE(?, featured),
			sort_order = COALESCE(?, sort_order),
			status = COALESCE(?, status),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Title, in.TitleID, in.Slug, in.Description, in.DescriptionID, in.ThumbnailURL, in.LiveURL,
		in.GithubURL, techJSON, in.Category, in.Featured, in.SortOrder, in.Status, id)
	if err != nil {
		if isDuplicate(err) {
			return model.Project{}, ErrDuplicate
		}
		return model.Project{}, err
	}
	// MySQL reports zero affected rows for a no-op update, so existence is
	// decided by reading the row back.
	return r.GetByID(ctx, id)
}

// Delete removes a project; its images go with it through the foreign key.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	return execDelete(ctx, r.db, "DELETE FROM projects WHERE id = ?", id)
}

// AddImage attaches an image to a project. ErrNotFound is returned when the
// project does not exist.
func (r *ProjectRepo) AddImage(ctx context.Context, projectID uint64, in model.ProjectImageInput) (model.ProjectImage, error) {
	var exists uint64
	if err := r.db.QueryRowContext(ctx, "SELECT id FROM projects WHERE id = ?", projectID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProjectImage{}, ErrNotFound
		}
		return model.ProjectImage{}, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO project_images (project_id, image_url, caption, sort_order) VALUES (?, ?, ?, ?)",
		projectID, in.ImageURL, in.Caption, intOr(in.SortOrder, 0))
	if err != nil {
		return model.ProjectImage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ProjectImage{}, err
	}
	var img model.ProjectImage
	err = r.db.QueryRowContext(ctx,
		"SELECT id, project_id, image_url, caption, sort_order, created_at FROM project_images WHERE id = ?", id).
		Scan(&img.ID, &img.ProjectID, &img.ImageURL, &img.Caption, &img.SortOrder, &img.CreatedAt)
	return img, err
}

// DeleteImage removes a gallery image. Deleting a missing image is not an error.
func (r *ProjectRepo) DeleteImage(ctx context.Context, imageID uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM project_images WHERE id = ?", imageID)
	return err
}

// Count returns the number of projects in any status.
func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&n)
	return n, err
}
