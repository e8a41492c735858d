package model

import "time"

// Profile is the single row describing the portfolio owner.
type Profile struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Title        *string   `json:"title"`
	Bio          *string   `json:"bio"`
	BioID        *string   `json:"bio_id"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Location     *string   `json:"location"`
	AvatarURL    *string   `json:"avatar_url"`
	ResumeURL    *string   `json:"resume_url"`
	GithubURL    *string   `json:"github_url"`
	LinkedinURL  *string   `json:"linkedin_url"`
	TwitterURL   *string   `json:"twitter_url"`
	InstagramURL *string   `json:"instagram_url"`
	WebsiteURL   *string   `json:"website_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Skill is one entry of the skills grid.
type Skill struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Category    *string   `json:"category"`
	Proficiency int       `json:"proficiency"`
	Icon        *string   `json:"icon"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// Experience is a work history entry.
type Experience struct {
	ID            uint64    `json:"id"`
	Company       string    `json:"company"`
	Position      string    `json:"position"`
	PositionID    *string   `json:"position_id"`
	Description   *string   `json:"description"`
	DescriptionID *string   `json:"description_id"`
	Location      *string   `json:"location"`
	StartDate     *Date     `json:"start_date"`
	EndDate       *Date     `json:"end_date"`
	IsCurrent     bool      `json:"is_current"`
	CompanyLogo   *string   `json:"company_logo"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}

// Education is a study history entry.
type Education struct {
	ID              uint64    `json:"id"`
	Institution     string    `json:"institution"`
	Degree          *string   `json:"degree"`
	Field           *string   `json:"field"`
	Description     *string   `json:"description"`
	DescriptionID   *string   `json:"description_id"`
	StartDate       *Date     `json:"start_date"`
	EndDate         *Date     `json:"end_date"`
	IsCurrent       bool      `json:"is_current"`
	InstitutionLogo *string   `json:"institution_logo"`
	SortOrder       int       `json:"sort_order"`
	CreatedAt       time.Time `json:"created_at"`
}

// Testimonial is a quote from a client or colleague.
type Testimonial struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Position  *string   `json:"position"`
	Company   *string   `json:"company"`
	Content   string    `json:"content"`
	ContentID *string   `json:"content_id"`
	AvatarURL *string   `json:"avatar_url"`
	Rating    int       `json:"rating"`
	IsVisible bool      `json:"is_visible"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Setting is a key/value site option edited from the admin panel.
type Setting struct {
	ID        uint64    `json:"id"`
	Key       string    `json:"key"`
	Value     *string   `json:"value"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
