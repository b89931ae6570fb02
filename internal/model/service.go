package model

// Service is an entry of the static service catalog on the landing page.
type Service struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// Landing bundles everything the public landing page renders.
type Landing struct {
	Services     []Service      `json:"services"`
	Projects     []*Project     `json:"projects"`
	Testimonials []*Testimonial `json:"testimonials"`
}

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	Projects        int `json:"projects"`
	Testimonials    int `json:"testimonials"`
	Inquiries       int `json:"inquiries"`
	UnreadInquiries int `json:"unread_inquiries"`
	LocalInquiries  int `json:"local_inquiries"`
}
