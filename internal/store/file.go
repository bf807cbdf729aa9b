package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ticketdesk-backend/internal/types"
)

// Fixtures is the on-disk seed format for MemoryStore and fresh SQLite databases.
type Fixtures struct {
	Users    []types.User    `yaml:"users"`
	Events   []types.Event   `yaml:"events"`
	Bookings []types.Booking `yaml:"bookings"`
}

// ReadFixtures decodes a YAML fixtures file.
func ReadFixtures(path string) (Fixtures, error) {
	var fx Fixtures
	b, err := os.ReadFile(path)
	if err != nil {
		return fx, fmt.Errorf("read fixtures: %w", err)
	}
	if err := yaml.Unmarshal(b, &fx); err != nil {
		return fx, fmt.Errorf("decode fixtures %s: %w", path, err)
	}
	return fx, nil
}

// LoadFixtures reads a YAML fixtures file into a new MemoryStore. An empty
// path yields an empty store.
func LoadFixtures(path string) (*MemoryStore, error) {
	ms := NewMemoryStore()
	if path == "" {
		return ms, nil
	}
	fx, err := ReadFixtures(path)
	if err != nil {
		return nil, err
	}
	if err := fx.Seed(ms); err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return ms, nil
}

// Seed validates references and loads the fixtures into ms.
func (fx Fixtures) Seed(ms *MemoryStore) error {
	users := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		if u.ID == "" || u.Email == "" {
			return fmt.Errorf("user %q: id and email are required", u.ID)
		}
		users[u.ID] = true
		ms.PutUser(u)
	}
	events := make(map[string]bool, len(fx.Events))
	for _, e := range fx.Events {
		if e.ID == "" {
			return fmt.Errorf("event %q: id is required", e.Title)
		}
		events[e.ID] = true
		ms.PutEvent(e)
	}
	for _, b := range fx.Bookings {
		if !users[b.UserID] {
			return fmt.Errorf("booking %s: unknown user %q", b.ID, b.UserID)
		}
		if !events[b.EventID] {
			return fmt.Errorf("booking %s: unknown event %q", b.ID, b.EventID)
		}
		ms.PutBooking(b)
	}
	return nil
}
