package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ticketdesk-backend/internal/types"
)

// MemoryStore keeps ticketing data in process. It backs local development
// and tests; production deployments use DatabaseStore.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]types.User
	events   map[string]types.Event
	bookings map[string]types.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]types.User),
		events:   make(map[string]types.Event),
		bookings: make(map[string]types.Booking),
	}
}

func (m *MemoryStore) PutUser(u types.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *MemoryStore) PutEvent(e types.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Tiers = append([]types.TicketTier(nil), e.Tiers...)
	m.events[e.ID] = e
}

func (m *MemoryStore) PutBooking(b types.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.Items = append([]types.BookingItem(nil), b.Items...)
	m.bookings[b.ID] = b
}

// DeleteBooking removes a booking; used to simulate concurrent removals.
func (m *MemoryStore) DeleteBooking(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, id)
}

func (m *MemoryStore) GetBooking(_ context.Context, id string) (*types.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	out := m.joinLocked(b, true)
	return &out, nil
}

func (m *MemoryStore) ListUserBookings(_ context.Context, userID, status string, limit int) ([]types.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, m.joinLocked(b, false))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) GetEventWithTiers(_ context.Context, id string) (*types.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	e.Tiers = append([]types.TicketTier(nil), e.Tiers...)
	sort.SliceStable(e.Tiers, func(i, j int) bool { return e.Tiers[i].Price < e.Tiers[j].Price })
	return &e, nil
}

func (m *MemoryStore) GetEventLocation(_ context.Context, id string) (*types.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	e.Tiers = nil
	return &e, nil
}

func (m *MemoryStore) ListUpcomingEvents(_ context.Context, from time.Time, limit int) ([]types.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Event, 0)
	for _, e := range m.events {
		if e.EventDate.Before(from) {
			continue
		}
		e.Tiers = nil
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].EventDate.Before(out[j].EventDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// joinLocked fills the event and tier names the way the SQL joins do.
func (m *MemoryStore) joinLocked(b types.Booking, withItems bool) types.Booking {
	ev := m.events[b.EventID]
	b.EventTitle = ev.Title
	b.EventDate = ev.EventDate
	if !withItems {
		b.Items = nil
		return b
	}
	items := make([]types.BookingItem, len(b.Items))
	for i, it := range b.Items {
		for _, tier := range ev.Tiers {
			if tier.ID == it.TierID {
				it.TierName = tier.Name
				break
			}
		}
		items[i] = it
	}
	b.Items = items
	return b
}
