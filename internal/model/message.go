package model

import "time"

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats feeds the admin dashboard counters.
type DashboardStats struct {
	TotalProjects  int64 `json:"totalProjects"`
	TotalMessages  int64 `json:"totalMessages"`
	UnreadMessages int64 `json:"unreadMessages"`
}
