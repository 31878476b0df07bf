package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory booking persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	bookings   map[string]*domain.Booking
	byTracking map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		bookings:   map[string]*domain.Booking{},
		byTracking: map[string]string{},
	}
}

func (r *Repository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	clone := *booking
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byTracking[clone.TrackingNumber]; taken {
		return nil, ports.ErrDuplicateTrackingNumber
	}
	if _, exists := r.bookings[clone.ID]; exists {
		return nil, errors.New("booking id already exists")
	}
	r.bookings[clone.ID] = &clone
	r.byTracking[clone.TrackingNumber] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) Save(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bookings[booking.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *booking
	clone.TrackingNumber = existing.TrackingNumber
	clone.CreatedAt = existing.CreatedAt
	r.bookings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *booking
	return &clone, nil
}

func (r *Repository) GetByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.bookings[id]
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byTracking, booking.TrackingNumber)
	delete(r.bookings, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) (projection.Page[*domain.Booking], error) {
	search := strings.ToLower(filter.Search)
	r.mu.RLock()
	matched := make([]*domain.Booking, 0, len(r.bookings))
	for _, booking := range r.bookings {
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		if search != "" && !matchesSearch(booking, search) {
			continue
		}
		clone := *booking
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

func (r *Repository) CountByStatus(_ context.Context) (map[domain.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[domain.Status]int{}
	for _, booking := range r.bookings {
		counts[booking.Status]++
	}
	return counts, nil
}

func matchesSearch(b *domain.Booking, needle string) bool {
	return strings.Contains(strings.ToLower(b.TrackingNumber), needle) ||
		strings.Contains(strings.ToLower(b.Sender.Name), needle) ||
		strings.Contains(strings.ToLower(b.Receiver.Name), needle)
}
