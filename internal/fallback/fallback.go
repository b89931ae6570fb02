// Package fallback keeps inquiries whose remote insert failed in the local
// key-value store, as one JSON-encoded list under a single key.
package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codecraft/backend/internal/kv"
	"github.com/codecraft/backend/internal/model"
	"go.uber.org/zap"
)

const (
	// InquiriesKey holds the JSON array of local-fallback inquiries.
	InquiriesKey = "inquiries_fallback"
	// LocalIDPrefix marks identifiers synthesized for local-fallback records.
	LocalIDPrefix = "local-"
)

// ErrNotFound is returned by SetStatus when no local entry has the id.
var ErrNotFound = errors.New("fallback: inquiry not found")

// IsLocalID reports whether id was synthesized by this package.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// LocalID formats the identifier for a record created at t.
func LocalID(t time.Time) string {
	return LocalIDPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// InquiryLog is the local-fallback inquiry list. Every mutation is an
// atomic read-modify-write of the whole list through kv.Store.Update.
type InquiryLog struct {
	store  kv.Store
	now    func() time.Time
	logger *zap.Logger
}

// NewInquiryLog creates an InquiryLog over store.
func NewInquiryLog(store kv.Store, logger *zap.Logger) *InquiryLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryLog{store: store, now: time.Now, logger: logger}
}

// List returns the local entries in append order. An unreadable or corrupt
// list is reported as empty; the cause is logged.
func (l *InquiryLog) List(ctx context.Context) []*model.Inquiry {
	raw, ok, err := l.store.Get(ctx, InquiriesKey)
	if err != nil {
		l.logger.Warn("fallback list unreadable, treating as empty", zap.Error(err))
		return []*model.Inquiry{}
	}
	if !ok {
		return []*model.Inquiry{}
	}
	items, err := decode(raw)
	if err != nil {
		l.logger.Warn("fallback list corrupt, treating as empty", zap.Error(err))
		return []*model.Inquiry{}
	}
	return items
}

// Append stores a new local entry built from in and returns it. The id is
// local-<epoch-millis>; on a collision with an existing entry the
// millisecond component is advanced until it is unique.
func (l *InquiryLog) Append(ctx context.Context, in model.InquiryInput) (*model.Inquiry, error) {
	now := l.now().UTC()
	rec := &model.Inquiry{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		Status:    model.InquiryUnread,
		CreatedAt: now,
	}

	err := l.store.Update(ctx, InquiriesKey, func(cur string, ok bool) (string, bool, error) {
		items := l.decodeOrEmpty(cur, ok)

		taken := make(map[string]bool, len(items))
		for _, it := range items {
			taken[it.ID] = true
		}
		stamp := now
		for taken[LocalID(stamp)] {
			stamp = stamp.Add(time.Millisecond)
		}
		rec.ID = LocalID(stamp)

		next, err := encode(append(items, rec))
		return next, false, err
	})
	if err != nil {
		return nil, fmt.Errorf("fallback: append: %w", err)
	}
	return rec, nil
}

// Remove drops every local entry whose id equals id. Removing an unknown id
// is a no-op.
func (l *InquiryLog) Remove(ctx context.Context, id string) error {
	err := l.store.Update(ctx, InquiriesKey, func(cur string, ok bool) (string, bool, error) {
		items := l.decodeOrEmpty(cur, ok)
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		next, err := encode(kept)
		return next, false, err
	})
	if err != nil {
		return fmt.Errorf("fallback: remove: %w", err)
	}
	return nil
}

// SetStatus rewrites the status of the local entry with the given id.
func (l *InquiryLog) SetStatus(ctx context.Context, id, status string) error {
	found := false
	err := l.store.Update(ctx, InquiriesKey, func(cur string, ok bool) (string, bool, error) {
		found = false
		items := l.decodeOrEmpty(cur, ok)
		for _, it := range items {
			if it.ID == id {
				it.Status = status
				found = true
			}
		}
		if !found {
			return cur, !ok, nil
		}
		next, err := encode(items)
		return next, false, err
	})
	if err != nil {
		return fmt.Errorf("fallback: set status: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of local entries.
func (l *InquiryLog) Count(ctx context.Context) int {
	return len(l.List(ctx))
}

func (l *InquiryLog) decodeOrEmpty(cur string, ok bool) []*model.Inquiry {
	if !ok {
		return nil
	}
	items, err := decode(cur)
	if err != nil {
		l.logger.Warn("fallback list corrupt, overwriting", zap.Error(err))
		return nil
	}
	return items
}

func decode(raw string) ([]*model.Inquiry, error) {
	var items []*model.Inquiry
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.Inquiry{}
	}
	return items, nil
}

func encode(items []*model.Inquiry) (string, error) {
	if items == nil {
		items = []*model.Inquiry{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
