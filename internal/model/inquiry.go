package model

import (
	"strings"
	"time"
)

// Inquiry statuses. Local-fallback inquiries start as InquiryUnread too.
const (
	InquiryUnread = "unread"
	InquiryRead   = "read"
)

// Inquiry represents a message submitted via the contact form.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // "unread" | "read"
	CreatedAt time.Time `json:"created_at"`
}

// InquiryInput is a candidate inquiry as submitted by a visitor. ID, status
// and timestamp are assigned by whichever store accepts it.
type InquiryInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Normalize trims surrounding whitespace from name and email.
func (in *InquiryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

// ValidInquiryStatus reports whether s belongs to the inquiry status taxonomy.
func ValidInquiryStatus(s string) bool {
	return s == InquiryUnread || s == InquiryRead
}
