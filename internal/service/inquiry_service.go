package service

import (
	"context"

	"github.com/codecraft/backend/internal/model"
)

// InquiryService is the contact-inquiry façade over the remote store and the
// local-fallback list.
type InquiryService interface {
	// Submit stores the inquiry remotely, or in the local-fallback list when
	// the remote insert fails. It never reports a persistence error; the
	// returned record is nil only when both stores refused it.
	Submit(ctx context.Context, in model.InquiryInput) *model.Inquiry

	// List returns the remote inquiries (newest first) followed by the local
	// ones (append order). When the remote fetch fails the local entries are
	// still returned together with the remote error as an advisory value.
	List(ctx context.Context) ([]*model.Inquiry, error)

	// Delete removes the inquiry from whichever store holds it. Remote
	// failures are logged, and an id absent everywhere is a no-op.
	Delete(ctx context.Context, id string) error

	// SetStatus marks an inquiry read or unread.
	SetStatus(ctx context.Context, id, status string) error
}
