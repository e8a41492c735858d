package model

// Request payloads for the admin write endpoints. Pointer fields are
// optional: on update a nil field keeps the stored value.

type ProjectInput struct {
	Title         *string   `json:"title" validate:"omitempty,min=2"`
	TitleID       *string   `json:"title_id"`
	Slug          *string   `json:"slug" validate:"omitempty,min=2"`
	Description   *string   `json:"description"`
	DescriptionID *string   `json:"description_id"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	LiveURL       *string   `json:"live_url"`
	GithubURL     *string   `json:"github_url"`
	Technologies  *[]string `json:"technologies"`
	Category      *string   `json:"category"`
	Featured      *bool     `json:"featured"`
	SortOrder     *int      `json:"sort_order"`
	Status        *string   `json:"status" validate:"omitempty,oneof=published draft archived"`
}

type ProjectImageInput struct {
	ImageURL  string  `json:"image_url" validate:"required"`
	Caption   *string `json:"caption"`
	SortOrder *int    `json:"sort_order"`
}

type ProfileInput struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Title        *string `json:"title"`
	Bio          *string `json:"bio"`
	BioID        *string `json:"bio_id"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	AvatarURL    *string `json:"avatar_url"`
	ResumeURL    *string `json:"resume_url"`
	GithubURL    *string `json:"github_url"`
	LinkedinURL  *string `json:"linkedin_url"`
	TwitterURL   *string `json:"twitter_url"`
	InstagramURL *string `json:"instagram_url"`
	WebsiteURL   *string `json:"website_url"`
}

type SkillInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Category    *string `json:"category"`
	Proficiency *int    `json:"proficiency" validate:"omitempty,gte=0,lte=100"`
	Icon        *string `json:"icon"`
	SortOrder   *int    `json:"sort_order"`
}

type ExperienceInput struct {
	Company       *string `json:"company"`
	Position      *string `json:"position"`
	PositionID    *string `json:"position_id"`
	Description   *string `json:"description"`
	DescriptionID *string `json:"description_id"`
	Location      *string `json:"location"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	IsCurrent     *bool   `json:"is_current"`
	CompanyLogo   *string `json:"company_logo"`
	SortOrder     *int    `json:"sort_order"`
}

type EducationInput struct {
	Institution     *string `json:"institution"`
	Degree          *string `json:"degree"`
	Field           *string `json:"field"`
	Description     *string `json:"description"`
	DescriptionID   *string `json:"description_id"`
	StartDate       *Date   `json:"start_date"`
	EndDate         *Date   `json:"end_date"`
	IsCurrent       *bool   `json:"is_current"`
	InstitutionLogo *string `json:"institution_logo"`
	SortOrder       *int    `json:"sort_order"`
}

type TestimonialInput struct {
	Name      *string `json:"name"`
	Position  *string `json:"position"`
	Company   *string `json:"company"`
	Content   *string `json:"content"`
	ContentID *string `json:"content_id"`
	AvatarURL *string `json:"avatar_url"`
	Rating    *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	IsVisible *bool   `json:"is_visible"`
	SortOrder *int    `json:"sort_order"`
}

type SettingInput struct {
	Value *string `json:"value"`
	Type  *string `json:"type"`
}

type ContactInput struct {
	Name    string  `json:"name" validate:"required,min=2,max=255"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject" validate:"omitempty,max=255"`
	Message string  `json:"message" validate:"required,min=10,max=5000"`
}
