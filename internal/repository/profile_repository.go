package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio/internal/model"
)

// ProfileRepo reads and writes the single row of the `profile` table.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, name, title, bio, bio_id, email, phone, location, avatar_url, resume_url,
	github_url, linkedin_url, twitter_url, instagram_url, website_url, created_at, updated_at`

func scanProfile(s rowScanner) (model.Profile, error) {
	var p model.Profile
	err := s.Scan(&p.ID, &p.Name, &p.Title, &p.Bio, &p.BioID, &p.Email, &p.Phone, &p.Location,
		&p.AvatarURL, &p.ResumeURL, &p.GithubURL, &p.LinkedinURL, &p.TwitterURL, &p.InstagramURL,
		&p.WebsiteURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// Get returns the profile. ErrNotFound means it was never created.
func (r *ProfileRepo) Get(ctx context.Context) (model.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profile ORDER BY id LIMIT 1"))
}

// Upsert creates the profile when none exists, otherwise it applies the
// non-nil fields of in to the existing row.
func (r *ProfileRepo) Upsert(ctx context.Context, in model.ProfileInput) (model.Profile, error) {
	current, err := r.Get(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO profile (
				name, title, bio, bio_id, email, phone, location, avatar_url, resume_url,
				github_url, linkedin_url, twitter_url, instagram_url, website_url
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			stringOr(in.Name, ""), in.Title, in.Bio, in.BioID, in.Email, in.Phone, in.Location,
			in.AvatarURL, in.ResumeURL, in.GithubURL, in.LinkedinURL, in.TwitterURL,
			in.InstagramURL, in.WebsiteURL)
	case err != nil:
		return model.Profile{}, err
	default:
		_, err = r.db.ExecContext(ctx,
			`UPDATE profile SET
				name = COALESCE(?, name),
				title = COALESCE(?, title),
				bio = COALESCE(?, bio),
				bio_id = COALESCE(?, bio_id),
				email = COALESCE(?, email),
				phone = COALESCE(?, phone),
				location = COALESCE(?, location),
				avatar_url = COALESCE(?, avatar_url),
				resume_url = COALESCE(?, resume_url),
				github_url = COALESCE(?, github_url),
				linkedin_url = COALESCE(?, linkedin_url),
				twitter_url = COALESCE(?, twitter_url),
				instagram_url = COALESCE(?, instagram_url),
				website_url = COALESCE(?, website_url),
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			in.Name, in.Title, in.Bio, in.BioID, in.Email, in.Phone, in.Location,
			in.AvatarURL, in.ResumeURL, in.GithubURL, in.LinkedinURL, in.TwitterURL,
			in.InstagramURL, in.WebsiteURL, current.ID)
	}
	if err != nil {
		return model.Profile{}, err
	}
	return r.Get(ctx)
}
