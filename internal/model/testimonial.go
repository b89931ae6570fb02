package model

import "time"

// Testimonial is a client quote shown on the landing page.
type Testimonial struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Company    *string   `json:"company"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// TestimonialPatch carries a partial testimonial update.
type TestimonialPatch struct {
	ClientName *string `json:"client_name,omitempty"`
	Company    *string `json:"company,omitempty"`
	Content    *string `json:"content,omitempty"`
}

// Apply copies the non-nil fields of the patch onto t.
func (tp TestimonialPatch) Apply(t *Testimonial) {
	if tp.ClientName != nil {
		t.ClientName = *tp.ClientName
	}
	if tp.Company != nil {
		if *tp.Company == "" {
			t.Company = nil
		} else {
			c := *tp.Company
			t.Company = &c
		}
	}
	if tp.Content != nil {
		t.Content = *tp.Content
	}
}
