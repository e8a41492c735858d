package model

import "time"

// Project is a portfolio entry from the `projects` table. Fields suffixed
// with _id hold the Indonesian translation shown by the localized site.
type Project struct {
	ID            uint64         `json:"id"`
	Title         string         `json:"title"`
	TitleID       *string        `json:"title_id"`
	Slug          string         `json:"slug"`
	Description   *string        `json:"description"`
	DescriptionID *string        `json:"description_id"`
	ThumbnailURL  *string        `json:"thumbnail_url"`
	LiveURL       *string        `json:"live_url"`
	GithubURL     *string        `json:"github_url"`
	Technologies  []string       `json:"technologies"`
	Category      *string        `json:"category"`
	Featured      bool           `json:"featured"`
	SortOrder     int            `json:"sort_order"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Images        []ProjectImage `json:"images,omitempty"`
}

// ProjectImage is a gallery image attached to a project.
type ProjectImage struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	ImageURL  string    `json:"image_url"`
	Caption   *string   `json:"caption"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectFilter narrows the public project listing.
type ProjectFilter struct {
	Status       string
	FeaturedOnly bool
	Category     string
}
