package model

import "time"

// Project is a portfolio entry shown on the landing page.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     *string   `json:"image_url"`
	Technologies []string  `json:"technologies"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProjectPatch carries a partial project update; nil fields are left untouched.
type ProjectPatch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
}

// Apply copies the non-nil fields of the patch onto p.
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.ImageURL != nil {
		if *pp.ImageURL == "" {
			p.ImageURL = nil
		} else {
			url := *pp.ImageURL
			p.ImageURL = &url
		}
	}
	if pp.Technologies != nil {
		p.Technologies = append([]string(nil), (*pp.Technologies)...)
	}
}
