package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory contact message store.
type Repository struct {
	mu       sync.RWMutex
	messages map[string]*domain.Message
}

func NewRepository() *Repository {
	return &Repository{messages: map[string]*domain.Message{}}
}

func (r *Repository) Create(_ context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, errors.New("message is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.messages[message.ID]; exists {
		return nil, errors.New("message id already exists")
	}
	clone := *message
	r.messages[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) (projection.Page[*domain.Message], error) {
	r.mu.RLock()
	matched := make([]*domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		if filter.UnreadOnly && m.IsRead {
			continue
		}
		clone := *m
		matched = append(matched, &clone)
	}
	r.mu.RUnlock()
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return projection.Window(matched, filter.Page), nil
}

func (r *Repository) CountUnread(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, m := range r.messages {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *Repository) MarkAsRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return ports.ErrNotFound
	}
	m.MarkAsRead()
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}
